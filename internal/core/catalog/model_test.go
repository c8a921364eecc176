package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestProductValidate(t *testing.T) {
	tests := []struct {
		name    string
		product Product
		wantErr bool
	}{
		{
			name:    "有効な商品",
			product: Product{Name: "Laptop", Description: "15 inch laptop", Price: 999.99, Quantity: 3},
			wantErr: false,
		},
		{
			name:    "名前が空",
			product: Product{Description: "desc", Price: 10},
			wantErr: true,
		},
		{
			name:    "説明が空",
			product: Product{Name: "Laptop", Price: 10},
			wantErr: true,
		},
		{
			name:    "負の価格",
			product: Product{Name: "Laptop", Description: "desc", Price: -1},
			wantErr: true,
		},
		{
			name:    "負の在庫数",
			product: Product{Name: "Laptop", Description: "desc", Price: 10, Quantity: -5},
			wantErr: true,
		},
		{
			name: "Embedding次元不一致",
			product: Product{
				Name:        "Laptop",
				Description: "desc",
				Price:       10,
				Embedding:   make([]float32, 3),
			},
			wantErr: true,
		},
		{
			name: "正しい次元のEmbedding",
			product: Product{
				Name:        "Laptop",
				Description: "desc",
				Price:       10,
				Embedding:   make([]float32, EmbeddingDimension),
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.product.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidProduct)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProductSearchable(t *testing.T) {
	embedding := make([]float32, EmbeddingDimension)

	tests := []struct {
		name    string
		product Product
		want    bool
	}{
		{
			name:    "Embeddingあり・在庫あり",
			product: Product{Embedding: embedding, InStock: true},
			want:    true,
		},
		{
			name:    "Embeddingなし・在庫あり",
			product: Product{InStock: true},
			want:    false,
		},
		{
			name:    "Embeddingあり・在庫なし",
			product: Product{Embedding: embedding, InStock: false},
			want:    false,
		},
		{
			name:    "Embeddingなし・在庫なし",
			product: Product{},
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.product.Searchable())
		})
	}
}

func TestTextFieldsChanged(t *testing.T) {
	base := Product{
		Name:        "Laptop",
		Description: "15 inch laptop",
		Category:    strPtr("Electronics"),
		Price:       999.99,
		Quantity:    3,
		InStock:     true,
	}

	tests := []struct {
		name   string
		modify func(p *Product)
		want   bool
	}{
		{
			name:   "変更なし",
			modify: func(p *Product) {},
			want:   false,
		},
		{
			name:   "名前の変更",
			modify: func(p *Product) { p.Name = "Gaming Laptop" },
			want:   true,
		},
		{
			name:   "説明の変更",
			modify: func(p *Product) { p.Description = "17 inch laptop" },
			want:   true,
		},
		{
			name:   "価格の変更",
			modify: func(p *Product) { p.Price = 1099.99 },
			want:   true,
		},
		{
			name:   "カテゴリの変更",
			modify: func(p *Product) { p.Category = strPtr("Computers") },
			want:   true,
		},
		{
			name:   "カテゴリをnilへ",
			modify: func(p *Product) { p.Category = nil },
			want:   true,
		},
		{
			name:   "アラビア語名の追加",
			modify: func(p *Product) { p.NameAr = strPtr("حاسوب محمول") },
			want:   true,
		},
		{
			name:   "在庫数のみ変更",
			modify: func(p *Product) { p.Quantity = 10 },
			want:   false,
		},
		{
			name:   "在庫フラグのみ変更",
			modify: func(p *Product) { p.InStock = false },
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			updated := base
			tt.modify(&updated)
			assert.Equal(t, tt.want, base.TextFieldsChanged(&updated))
		})
	}
}
