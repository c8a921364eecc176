package classify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/zeroandone/catalog-ai/internal/core/catalog"
)

var (
	// ErrNoProductIDs は対象商品IDが指定されていない場合のエラー
	ErrNoProductIDs = errors.New("product ids are required")

	// ErrInvalidModelResponse はモデル出力が期待するJSON形式でない場合のエラー
	ErrInvalidModelResponse = errors.New("invalid model response")
)

// Completer はテキスト補完プロバイダのインターフェース
type Completer interface {
	// Complete はプロンプトに対する補完テキストを生成する
	Complete(ctx context.Context, prompt string) (string, error)
}

// Classification は1商品分の分類結果を表す
type Classification struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// Service はAIによる商品カテゴリ分類を提供する
type Service struct {
	repo      catalog.Repository
	completer Completer
	logger    *slog.Logger
}

// NewService は新しいServiceを作成する
func NewService(repo catalog.Repository, completer Completer, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:      repo,
		completer: completer,
		logger:    logger,
	}
}

// ClassifyProducts は指定IDの商品をAIで分類し、カテゴリを保存して返す
// 存在しないIDは黙ってスキップする。モデル出力のJSON検証に失敗した場合は
// 一切保存せずに ErrInvalidModelResponse を返す
func (s *Service) ClassifyProducts(ctx context.Context, productIDs []int64) ([]Classification, error) {
	if len(productIDs) == 0 {
		return nil, ErrNoProductIDs
	}

	var products []*catalog.Product
	for _, id := range productIDs {
		product, err := s.repo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, catalog.ErrProductNotFound) {
				continue
			}
			return nil, fmt.Errorf("failed to load product %d: %w", id, err)
		}
		products = append(products, product)
	}

	if len(products) == 0 {
		return []Classification{}, nil
	}

	prompt := buildPrompt(products)

	raw, err := s.completer.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("classification model call failed: %w", err)
	}

	var classifications []Classification
	if err := json.Unmarshal([]byte(raw), &classifications); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidModelResponse, err)
	}

	for _, c := range classifications {
		if c.Category == "" {
			continue
		}
		if err := s.repo.UpdateCategory(ctx, c.ID, c.Category); err != nil {
			return nil, fmt.Errorf("failed to update category for product %d: %w", c.ID, err)
		}
	}

	s.logger.Info("products classified", slog.Int("count", len(classifications)))
	return classifications, nil
}

// buildPrompt は分類プロンプトを組み立てる
// モデルには説明文なしの厳密なJSON配列のみを要求する
func buildPrompt(products []*catalog.Product) string {
	var lines []string
	for i, p := range products {
		lines = append(lines, fmt.Sprintf("%d. id: %d, name: %q", i+1, p.ID, p.Name))
	}

	return "You are a product classifier AI.\n" +
		"Given a product ID and name, classify each product into a relevant category.\n" +
		"Respond ONLY in the following JSON format:\n\n" +
		"[\n" +
		"  {\n" +
		"    \"id\": 1,\n" +
		"    \"name\": \"iPhone 14 Pro\",\n" +
		"    \"category\": \"Smartphones\"\n" +
		"  }\n" +
		"]\n\n" +
		"Do not include explanations or extra text.\n\n" +
		"Here are the products to classify:\n" + strings.Join(lines, "\n")
}
