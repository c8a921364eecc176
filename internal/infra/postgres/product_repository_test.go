package postgres

import (
	"context"
	"strconv"
	"testing"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeroandone/catalog-ai/internal/core/catalog"
	"github.com/zeroandone/catalog-ai/pkg/db"
)

// setupDatabase はpgvector入りPostgreSQLコンテナを起動し、スキーマ適用済みのDBを返す
// Dockerが利用できない環境ではテストをスキップする
func setupDatabase(t *testing.T) *db.DB {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("docker not available: %v", err)
	}
	if err := pool.Client.Ping(); err != nil {
		t.Skipf("docker not available: %v", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "pgvector/pgvector",
		Tag:        "pg16",
		Env: []string{
			"POSTGRES_USER=catalog",
			"POSTGRES_PASSWORD=catalog",
			"POSTGRES_DB=catalog",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = pool.Purge(resource) })
	_ = resource.Expire(180)

	port, err := strconv.Atoi(resource.GetPort("5432/tcp"))
	require.NoError(t, err)

	var database *db.DB
	require.NoError(t, pool.Retry(func() error {
		var err error
		database, err = db.New(context.Background(), db.ConnectionParams{
			Host:     "localhost",
			Port:     port,
			User:     "catalog",
			Password: "catalog",
			DBName:   "catalog",
			SSLMode:  "disable",
		})
		return err
	}))
	t.Cleanup(database.Close)

	require.NoError(t, EnsureSchema(context.Background(), database.Pool))
	return database
}

func embeddingOf(first float32) []float32 {
	v := make([]float32, catalog.EmbeddingDimension)
	v[0] = first
	return v
}

func strPtr(s string) *string { return &s }

func TestProductRepository(t *testing.T) {
	database := setupDatabase(t)
	repo := NewProductRepository(database.Pool)
	ctx := context.Background()

	t.Run("CreateとGetByID", func(t *testing.T) {
		created, err := repo.Create(ctx, &catalog.Product{
			Name:        "Laptop",
			Description: "15 inch laptop",
			Category:    strPtr("Electronics"),
			Price:       999.99,
			Quantity:    3,
			InStock:     true,
		})
		require.NoError(t, err)
		assert.NotZero(t, created.ID)
		assert.False(t, created.CreatedAt.IsZero())

		got, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Laptop", got.Name)
		assert.Equal(t, "Electronics", *got.Category)
		assert.Nil(t, got.Embedding)
	})

	t.Run("GetByIDで存在しないID", func(t *testing.T) {
		_, err := repo.GetByID(ctx, 999999)
		assert.ErrorIs(t, err, catalog.ErrProductNotFound)
	})

	t.Run("SaveでEmbeddingを永続化してGetByIDで復元", func(t *testing.T) {
		created, err := repo.Create(ctx, &catalog.Product{
			Name:        "Keyboard",
			Description: "mechanical keyboard",
			Price:       120,
			InStock:     true,
		})
		require.NoError(t, err)

		created.Embedding = embeddingOf(0.5)
		require.NoError(t, repo.Save(ctx, created))

		got, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		require.Len(t, got.Embedding, catalog.EmbeddingDimension)
		assert.InDelta(t, 0.5, got.Embedding[0], 1e-6)
	})

	t.Run("ListSearchableはEmbedding済みかつ在庫ありのみ", func(t *testing.T) {
		withEmbedding, err := repo.Create(ctx, &catalog.Product{
			Name: "InStock", Description: "d", Price: 1, InStock: true,
			Embedding: embeddingOf(0.1),
		})
		require.NoError(t, err)

		outOfStock, err := repo.Create(ctx, &catalog.Product{
			Name: "OutOfStock", Description: "d", Price: 1, InStock: false,
			Embedding: embeddingOf(0.2),
		})
		require.NoError(t, err)

		noEmbedding, err := repo.Create(ctx, &catalog.Product{
			Name: "NoEmbedding", Description: "d", Price: 1, InStock: true,
		})
		require.NoError(t, err)

		searchable, err := repo.ListSearchable(ctx)
		require.NoError(t, err)

		ids := map[int64]bool{}
		for _, p := range searchable {
			ids[p.ID] = true
		}
		assert.True(t, ids[withEmbedding.ID])
		assert.False(t, ids[outOfStock.ID])
		assert.False(t, ids[noEmbedding.ID])
	})

	t.Run("削除済みの行は検索対象から消える", func(t *testing.T) {
		created, err := repo.Create(ctx, &catalog.Product{
			Name: "Doomed", Description: "d", Price: 1, InStock: true,
			Embedding: embeddingOf(0.3),
		})
		require.NoError(t, err)
		require.NoError(t, repo.Delete(ctx, created.ID))

		searchable, err := repo.ListSearchable(ctx)
		require.NoError(t, err)
		for _, p := range searchable {
			assert.NotEqual(t, created.ID, p.ID)
		}

		assert.ErrorIs(t, repo.Delete(ctx, created.ID), catalog.ErrProductNotFound)
	})

	t.Run("ListMissingEmbeddingsはID昇順", func(t *testing.T) {
		missing, err := repo.ListMissingEmbeddings(ctx)
		require.NoError(t, err)
		for i := 1; i < len(missing); i++ {
			assert.Less(t, missing[i-1].ID, missing[i].ID)
		}
		for _, p := range missing {
			assert.Nil(t, p.Embedding)
		}
	})

	t.Run("ListMissingTranslationsはローカライズ未設定のみ", func(t *testing.T) {
		translated, err := repo.Create(ctx, &catalog.Product{
			Name: "Done", Description: "d", Price: 1, InStock: true,
			NameAr: strPtr("تم"), DescriptionAr: strPtr("وصف"),
		})
		require.NoError(t, err)

		pending, err := repo.Create(ctx, &catalog.Product{
			Name: "Pending", Description: "d", Price: 1, InStock: true,
			NameAr: strPtr("قيد الانتظار"),
		})
		require.NoError(t, err)

		missing, err := repo.ListMissingTranslations(ctx)
		require.NoError(t, err)

		ids := map[int64]bool{}
		for _, p := range missing {
			ids[p.ID] = true
		}
		assert.False(t, ids[translated.ID])
		assert.True(t, ids[pending.ID])
	})

	t.Run("UpdateCategory", func(t *testing.T) {
		created, err := repo.Create(ctx, &catalog.Product{
			Name: "Uncategorized", Description: "d", Price: 1, InStock: true,
		})
		require.NoError(t, err)

		require.NoError(t, repo.UpdateCategory(ctx, created.ID, "Accessories"))

		got, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		require.NotNil(t, got.Category)
		assert.Equal(t, "Accessories", *got.Category)

		assert.ErrorIs(t, repo.UpdateCategory(ctx, 999999, "X"), catalog.ErrProductNotFound)
	})

	t.Run("UpdateはEmbeddingのnil化を反映する", func(t *testing.T) {
		created, err := repo.Create(ctx, &catalog.Product{
			Name: "Mutable", Description: "d", Price: 1, InStock: true,
			Embedding: embeddingOf(0.9),
		})
		require.NoError(t, err)

		created.Name = "Renamed"
		created.Embedding = nil
		updated, err := repo.Update(ctx, created)
		require.NoError(t, err)
		assert.Equal(t, "Renamed", updated.Name)
		assert.Nil(t, updated.Embedding)
	})
}
