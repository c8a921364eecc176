package catalog

import (
	"errors"
	"fmt"
	"time"
)

// EmbeddingDimension はカタログのベクトル次元数
// Bedrock Titan Embed v2 / OpenAI text-embedding-3-small（次元指定）に揃える
const EmbeddingDimension = 1024

// Product はカタログの商品を表す
type Product struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	NameAr        *string   `json:"name_ar,omitempty"`
	DescriptionAr *string   `json:"description_ar,omitempty"`
	Category      *string   `json:"category,omitempty"`
	Price         float64   `json:"price"`
	Quantity      int       `json:"quantity"`
	InStock       bool      `json:"in_stock"`
	Embedding     []float32 `json:"-"`
	CreatedAt     time.Time `json:"created_at"`
}

// Searchable はセマンティック検索の対象となる行かどうかを返す
// Embeddingが存在し、かつ在庫ありの行のみが対象になる
func (p *Product) Searchable() bool {
	return len(p.Embedding) > 0 && p.InStock
}

// Validate は商品の入力値を検証する
func (p *Product) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidProduct)
	}
	if p.Description == "" {
		return fmt.Errorf("%w: description is required", ErrInvalidProduct)
	}
	if p.Price < 0 {
		return fmt.Errorf("%w: price must be non-negative", ErrInvalidProduct)
	}
	if p.Quantity < 0 {
		return fmt.Errorf("%w: quantity must be non-negative", ErrInvalidProduct)
	}
	if len(p.Embedding) != 0 && len(p.Embedding) != EmbeddingDimension {
		return fmt.Errorf("%w: embedding must have %d dimensions, got %d", ErrInvalidProduct, EmbeddingDimension, len(p.Embedding))
	}
	return nil
}

// TextFieldsChanged はEmbedding入力に影響するフィールドが変わったかどうかを返す
// 変わった場合、保存済みEmbeddingは陳腐化しているため破棄して再生成の対象に戻す
func (p *Product) TextFieldsChanged(updated *Product) bool {
	if p.Name != updated.Name || p.Description != updated.Description || p.Price != updated.Price {
		return true
	}
	if !equalStrPtr(p.Category, updated.Category) {
		return true
	}
	if !equalStrPtr(p.NameAr, updated.NameAr) || !equalStrPtr(p.DescriptionAr, updated.DescriptionAr) {
		return true
	}
	return false
}

func equalStrPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

var (
	// ErrProductNotFound は商品が存在しない場合のエラー
	ErrProductNotFound = errors.New("product not found")

	// ErrInvalidProduct は商品の入力値が不正な場合のエラー
	ErrInvalidProduct = errors.New("invalid product")
)
