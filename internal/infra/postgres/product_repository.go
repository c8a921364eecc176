package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"

	"github.com/zeroandone/catalog-ai/internal/core/catalog"
)

// ProductRepository は catalog.Repository を実装する PostgreSQL リポジトリ
type ProductRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository は新しいProductRepositoryを作成する
func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

var _ catalog.Repository = (*ProductRepository)(nil)

const productColumns = `id, name, description, name_ar, description_ar, category, price, quantity, in_stock, embedding, created_at`

// GetByID はIDで商品を取得する
func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*catalog.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	product, err := scanProduct(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: id %d", catalog.ErrProductNotFound, id)
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}

// List は全商品をID昇順で取得する
func (r *ProductRepository) List(ctx context.Context) ([]*catalog.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY id`
	return r.queryProducts(ctx, query)
}

// Create は商品を作成する
func (r *ProductRepository) Create(ctx context.Context, product *catalog.Product) (*catalog.Product, error) {
	query := `
		INSERT INTO products (name, description, name_ar, description_ar, category, price, quantity, in_stock, embedding)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`

	created := *product
	err := r.pool.QueryRow(ctx, query,
		product.Name,
		product.Description,
		product.NameAr,
		product.DescriptionAr,
		product.Category,
		product.Price,
		product.Quantity,
		product.InStock,
		VectorToPg(product.Embedding),
	).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return &created, nil
}

// Update は商品の全フィールドを更新する。created_atは不変
func (r *ProductRepository) Update(ctx context.Context, product *catalog.Product) (*catalog.Product, error) {
	query := `
		UPDATE products
		SET name = $2, description = $3, name_ar = $4, description_ar = $5,
		    category = $6, price = $7, quantity = $8, in_stock = $9, embedding = $10
		WHERE id = $1
		RETURNING ` + productColumns

	updated, err := scanProduct(r.pool.QueryRow(ctx, query,
		product.ID,
		product.Name,
		product.Description,
		product.NameAr,
		product.DescriptionAr,
		product.Category,
		product.Price,
		product.Quantity,
		product.InStock,
		VectorToPg(product.Embedding),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: id %d", catalog.ErrProductNotFound, product.ID)
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return updated, nil
}

// Delete は商品を削除する
func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: id %d", catalog.ErrProductNotFound, id)
	}
	return nil
}

// ListMissingEmbeddings はEmbedding未設定の行をID昇順で取得する
// 単一のバッチ実行内で順序が安定するようID順に固定している
func (r *ProductRepository) ListMissingEmbeddings(ctx context.Context) ([]*catalog.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE embedding IS NULL ORDER BY id`
	return r.queryProducts(ctx, query)
}

// ListSearchable はEmbedding設定済みかつ在庫ありの行を取得する
func (r *ProductRepository) ListSearchable(ctx context.Context) ([]*catalog.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE embedding IS NOT NULL AND in_stock ORDER BY id`
	return r.queryProducts(ctx, query)
}

// ListMissingTranslations はローカライズ項目が未設定の行をID昇順で取得する
func (r *ProductRepository) ListMissingTranslations(ctx context.Context) ([]*catalog.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE name_ar IS NULL OR description_ar IS NULL ORDER BY id`
	return r.queryProducts(ctx, query)
}

// Save は行の全状態を永続化する。行単位で即時コミットされる
func (r *ProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	query := `
		UPDATE products
		SET name = $2, description = $3, name_ar = $4, description_ar = $5,
		    category = $6, price = $7, quantity = $8, in_stock = $9, embedding = $10
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		product.ID,
		product.Name,
		product.Description,
		product.NameAr,
		product.DescriptionAr,
		product.Category,
		product.Price,
		product.Quantity,
		product.InStock,
		VectorToPg(product.Embedding),
	)
	if err != nil {
		return fmt.Errorf("failed to save product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: id %d", catalog.ErrProductNotFound, product.ID)
	}
	return nil
}

// UpdateCategory は商品のカテゴリのみを更新する
func (r *ProductRepository) UpdateCategory(ctx context.Context, id int64, category string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE products SET category = $2 WHERE id = $1`, id, category)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: id %d", catalog.ErrProductNotFound, id)
	}
	return nil
}

// queryProducts は複数行クエリを実行して商品スライスに変換する
func (r *ProductRepository) queryProducts(ctx context.Context, query string, args ...any) ([]*catalog.Product, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []*catalog.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}
	return products, nil
}

// scanProduct は1行を catalog.Product に変換する
func scanProduct(row pgx.Row) (*catalog.Product, error) {
	var (
		product   catalog.Product
		embedding *pgvector.Vector
	)
	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&product.NameAr,
		&product.DescriptionAr,
		&product.Category,
		&product.Price,
		&product.Quantity,
		&product.InStock,
		&embedding,
		&product.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	product.Embedding = PgToVector(embedding)
	return &product, nil
}
