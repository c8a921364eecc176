package translate

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/zeroandone/catalog-ai/internal/core/catalog"
)

// Translator はテキスト翻訳プロバイダのインターフェース
type Translator interface {
	// Translate はテキストをsourceLangからtargetLangへ翻訳する
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)
}

// Maintenance はローカライズ項目（アラビア語）を埋めるバッチ処理を提供する
// 未設定の項目のみ書き込み、設定済みの値は上書きしない
type Maintenance struct {
	repo       catalog.Repository
	translator Translator
	logger     *slog.Logger
	failFast   bool
}

// MaintenanceOption は Maintenance のオプション設定
type MaintenanceOption func(*Maintenance)

// WithFailFast は失敗時にバッチを即時中断する動作に切り替える
func WithFailFast() MaintenanceOption {
	return func(m *Maintenance) {
		m.failFast = true
	}
}

// WithLogger はロガーを差し替える
func WithLogger(logger *slog.Logger) MaintenanceOption {
	return func(m *Maintenance) {
		m.logger = logger
	}
}

// NewMaintenance は新しいMaintenanceを作成する
func NewMaintenance(repo catalog.Repository, translator Translator, opts ...MaintenanceOption) *Maintenance {
	m := &Maintenance{
		repo:       repo,
		translator: translator,
		logger:     slog.Default(),
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
	Translated int          `json:"translated"`
	Failed     int          `json:"failed"`
	Failures   []RowFailure `json:"failures,omitempty"`
}

const (
	sourceLang = "en"
	targetLang = "ar"
)

// Run はローカライズ項目が未設定の全行を翻訳して保存する
// 行単位でコミットするため、途中で失敗しても処理済みの行は維持され、
// 再実行すると残りだけが処理される
func (m *Maintenance) Run(ctx context.Context) (*Report, error) {
	products, err := m.repo.ListMissingTranslations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products missing translations: %w", err)
	}

	m.logger.Info("translation maintenance started", slog.Int("pending", len(products)))

	report := &Report{}
	for _, product := range products {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		if err := m.translateOne(ctx, product); err != nil {
			if m.failFast {
				return report, fmt.Errorf("failed to translate product %d: %w", product.ID, err)
			}
			report.Failed++
			report.Failures = append(report.Failures, RowFailure{ProductID: product.ID, Reason: err.Error()})
			m.logger.Error("failed to translate product", slog.Int64("id", product.ID), slog.String("error", err.Error()))
			continue
		}
		report.Translated++
	}

	m.logger.Info("translation maintenance finished",
		slog.Int("translated", report.Translated),
		slog.Int("failed", report.Failed),
	)
	return report, nil
}

// translateOne は1行分の未設定ローカライズ項目を埋めて保存する
func (m *Maintenance) translateOne(ctx context.Context, product *catalog.Product) error {
	if product.NameAr == nil {
		translated, err := m.translator.Translate(ctx, product.Name, sourceLang, targetLang)
		if err != nil {
			return fmt.Errorf("failed to translate name: %w", err)
		}
		product.NameAr = &translated
	}

	if product.DescriptionAr == nil {
		translated, err := m.translator.Translate(ctx, product.Description, sourceLang, targetLang)
		if err != nil {
			return fmt.Errorf("failed to translate description: %w", err)
		}
		product.DescriptionAr = &translated
	}

	if err := m.repo.Save(ctx, product); err != nil {
		return fmt.Errorf("failed to save translations: %w", err)
	}
	return nil
}
