package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/zeroandone/catalog-ai/internal/core/catalog"
)

// ErrEmptyQuery はクエリテキストが空の場合のエラー
var ErrEmptyQuery = errors.New("query text is required")

// Embedder はクエリテキストのEmbedding生成インターフェース
type Embedder interface {
	// Embed は単一テキストのEmbeddingを生成する
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Engine はセマンティック検索のビジネスロジックを提供する
// 検索対象（Embedding設定済みかつ在庫あり）の全行に対して総当たりで
// コサイン距離を計算し、近い順に返す。カタログが小規模である前提の設計
type Engine struct {
	repo     catalog.Repository
	embedder Embedder
	logger   *slog.Logger
}

// NewEngine は新しいEngineを作成する
func NewEngine(repo catalog.Repository, embedder Embedder, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		repo:     repo,
		embedder: embedder,
		logger:   logger,
	}
}

// Search はクエリテキストに基づいてセマンティック検索を実行する
// limit が 0 以下または DefaultLimit 超の場合は DefaultLimit に丸める。
// 候補が存在しない場合はエラーではなく空スライスを返す
func (e *Engine) Search(ctx context.Context, query string, limit int) ([]*Result, error) {
	if query == "" {
		return nil, ErrEmptyQuery
	}

	if limit <= 0 || limit > DefaultLimit {
		limit = DefaultLimit
	}

	queryVector, err := e.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	candidates, err := e.repo.ListSearchable(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list searchable products: %w", err)
	}

	results := rank(queryVector, candidates, limit)

	e.logger.Info("semantic search executed",
		slog.Int("candidates", len(candidates)),
		slog.Int("results", len(results)),
	)
	return results, nil
}

// rank は候補をコサイン距離の昇順に並べ、上位limit件を返す
// 距離が完全に一致した場合はID昇順で順序を固定する
func rank(queryVector []float32, candidates []*catalog.Product, limit int) []*Result {
	results := make([]*Result, 0, len(candidates))
	for _, p := range candidates {
		distance := CosineDistance(queryVector, p.Embedding)
		results = append(results, &Result{
			ID:              p.ID,
			Name:            p.Name,
			Description:     p.Description,
			Category:        p.Category,
			Price:           p.Price,
			Distance:        distance,
			SimilarityScore: 1 - distance,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Distance != results[j].Distance {
			return results[i].Distance < results[j].Distance
		}
		return results[i].ID < results[j].ID
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results
}
