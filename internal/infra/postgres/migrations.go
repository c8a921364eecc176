package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema はカタログのスキーマ定義
// vector拡張はEmbedding列（1024次元）に必要
const schema = `
CREATE EXTENSION IF NOT EXISTS vector;

CREATE TABLE IF NOT EXISTS products (
    id             BIGSERIAL PRIMARY KEY,
    name           VARCHAR(100) NOT NULL,
    description    VARCHAR(255) NOT NULL,
    name_ar        VARCHAR(100),
    description_ar VARCHAR(255),
    category       VARCHAR(100),
    price          DOUBLE PRECISION NOT NULL,
    quantity       INTEGER NOT NULL DEFAULT 0,
    in_stock       BOOLEAN NOT NULL DEFAULT TRUE,
    embedding      vector(1024),
    created_at     TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// EnsureSchema はカタログのスキーマを冪等に適用する
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
