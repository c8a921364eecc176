package catalog

import (
	"context"
	"fmt"
	"log/slog"
)

// Service はカタログCRUDのビジネスロジックを提供する
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService は新しいServiceを作成する
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Create は検証済みの商品を作成する
func (s *Service) Create(ctx context.Context, product *Product) (*Product, error) {
	if err := product.Validate(); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info("product created", slog.Int64("id", created.ID), slog.String("name", created.Name))
	return created, nil
}

// Get はIDで商品を取得する
func (s *Service) Get(ctx context.Context, id int64) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

// List は全商品を取得する
func (s *Service) List(ctx context.Context) ([]*Product, error) {
	return s.repo.List(ctx)
}

// Update は商品を更新する
// Embedding入力に影響するフィールドが変わった場合は保存済みEmbeddingを破棄し、
// 次回のバッチEmbeddingで再生成させる
func (s *Service) Update(ctx context.Context, product *Product) (*Product, error) {
	if err := product.Validate(); err != nil {
		return nil, err
	}

	current, err := s.repo.GetByID(ctx, product.ID)
	if err != nil {
		return nil, err
	}

	if current.TextFieldsChanged(product) {
		product.Embedding = nil
		s.logger.Info("embedding invalidated by field change", slog.Int64("id", product.ID))
	} else {
		product.Embedding = current.Embedding
	}

	updated, err := s.repo.Update(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return updated, nil
}

// Delete は商品を削除する
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("product deleted", slog.Int64("id", id))
	return nil
}
