package embedding

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/zeroandone/catalog-ai/internal/core/catalog"
)

// Embedder はテキストをベクトル表現に変換するインターフェース
type Embedder interface {
	// Embed は単一テキストのEmbeddingを生成する
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Maintenance はカタログのEmbeddingを埋めるバッチ処理を提供する
// Embedding未設定の行のみを対象とし、設定済みの行には一切触れない（冪等）
type Maintenance struct {
	repo     catalog.Repository
	embedder Embedder
	budget   *TokenBudget
	logger   *slog.Logger

	// failFast がtrueの場合、最初の行の失敗でバッチ全体を中断する
	failFast bool
}

// MaintenanceOption は Maintenance のオプション設定
type MaintenanceOption func(*Maintenance)

// WithFailFast は失敗時にバッチを即時中断する動作に切り替える
func WithFailFast() MaintenanceOption {
	return func(m *Maintenance) {
		m.failFast = true
	}
}

// WithTokenBudget はEmbedding入力のトークン上限を設定する
func WithTokenBudget(budget *TokenBudget) MaintenanceOption {
	return func(m *Maintenance) {
		m.budget = budget
	}
}

// WithLogger はロガーを差し替える
func WithLogger(logger *slog.Logger) MaintenanceOption {
	return func(m *Maintenance) {
		m.logger = logger
	}
}

// NewMaintenance は新しいMaintenanceを作成する
func NewMaintenance(repo catalog.Repository, embedder Embedder, opts ...MaintenanceOption) *Maintenance {
	m := &Maintenance{
		repo:     repo,
		embedder: embedder,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// RowFailure は1行分の失敗を表す
type RowFailure struct {
	ProductID int64  `json:"product_id"`
	Reason    string `json:"reason"`
}

// Report はバッチ実行の結果を表す
type Report struct {
	Embedded int          `json:"embedded"`
	Failed   int          `json:"failed"`
	Failures []RowFailure `json:"failures,omitempty"`
}

// Run はEmbedding未設定の全行を処理する
// 既定では行単位の失敗を記録して続行する（at-least-once、再実行で収束する）。
// failFast指定時は最初の失敗で中断し、それまでに保存した行はそのまま残る
func (m *Maintenance) Run(ctx context.Context) (*Report, error) {
	products, err := m.repo.ListMissingEmbeddings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products missing embeddings: %w", err)
	}

	m.logger.Info("embedding maintenance started", slog.Int("pending", len(products)))

	report := &Report{}
	for _, product := range products {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		// 競合する書き込みで既に埋まっていた行はスキップする
		if len(product.Embedding) > 0 {
			continue
		}

		if err := m.embedOne(ctx, product); err != nil {
			if m.failFast {
				return report, fmt.Errorf("failed to embed product %d: %w", product.ID, err)
			}
			report.Failed++
			report.Failures = append(report.Failures, RowFailure{ProductID: product.ID, Reason: err.Error()})
			m.logger.Error("failed to embed product", slog.Int64("id", product.ID), slog.String("error", err.Error()))
			continue
		}
		report.Embedded++
	}

	m.logger.Info("embedding maintenance finished",
		slog.Int("embedded", report.Embedded),
		slog.Int("failed", report.Failed),
	)
	return report, nil
}

// embedOne は1行分のEmbeddingを生成して保存する
func (m *Maintenance) embedOne(ctx context.Context, product *catalog.Product) error {
	text := BuildInput(product)
	if m.budget != nil {
		text = m.budget.Truncate(text)
	}

	vector, err := m.embedder.Embed(ctx, text)
	if err != nil {
		return fmt.Errorf("embedding provider call failed: %w", err)
	}
	if len(vector) != catalog.EmbeddingDimension {
		return fmt.Errorf("unexpected embedding dimension: want %d, got %d", catalog.EmbeddingDimension, len(vector))
	}

	product.Embedding = vector
	if err := m.repo.Save(ctx, product); err != nil {
		return fmt.Errorf("failed to save embedding: %w", err)
	}
	return nil
}
