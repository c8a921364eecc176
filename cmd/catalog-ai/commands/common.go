package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/zeroandone/catalog-ai/internal/core/catalog"
	"github.com/zeroandone/catalog-ai/internal/core/classify"
	"github.com/zeroandone/catalog-ai/internal/core/docextract"
	"github.com/zeroandone/catalog-ai/internal/core/embedding"
	"github.com/zeroandone/catalog-ai/internal/core/search"
	"github.com/zeroandone/catalog-ai/internal/core/translate"
	"github.com/zeroandone/catalog-ai/internal/infra/awsx"
	"github.com/zeroandone/catalog-ai/internal/infra/bedrock"
	"github.com/zeroandone/catalog-ai/internal/infra/openai"
	"github.com/zeroandone/catalog-ai/internal/infra/postgres"
	"github.com/zeroandone/catalog-ai/internal/platform/config"
	"github.com/zeroandone/catalog-ai/internal/platform/logger"
	"github.com/zeroandone/catalog-ai/pkg/db"
)

// AppContext はコマンド実行に必要な共通コンテキストを保持する
type AppContext struct {
	Config      *config.Config
	Logger      *slog.Logger
	Database    *db.DB
	Repo        *postgres.ProductRepository
	Embedder    embedding.Embedder
	Translator  *awsx.Translator
	TokenBudget *embedding.TokenBudget

	Catalog    *catalog.Service
	Search     *search.Engine
	Classify   *classify.Service
	DocExtract *docextract.Service
}

// NewAppContext は設定を読み込み、DBと外部サービスに接続して AppContext を作成する
func NewAppContext(ctx context.Context, envFile string) (*AppContext, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	appLogger := logger.New(logger.DefaultConfig())

	database, err := db.New(ctx, db.ConnectionParams{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := postgres.EnsureSchema(ctx, database.Pool); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}

	repo := postgres.NewProductRepository(database.Pool)

	// Completer（分類・文書構造化）は常にBedrockを使う
	bedrockClient, err := bedrock.NewClient(ctx, cfg.AWS.Region)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create bedrock client: %w", err)
	}
	completer := bedrock.NewCompleter(bedrockClient, cfg.AWS.CompletionModelID)

	// Embeddingプロバイダの選択
	var embedder embedding.Embedder
	switch cfg.Embedding.Provider {
	case "openai":
		embedder = openai.NewEmbedder(cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.Embedding.Dimension)
	default:
		embedder = bedrock.NewEmbedder(bedrockClient, cfg.AWS.EmbeddingModelID, cfg.Embedding.Dimension)
	}

	awsClients, err := awsx.NewClients(ctx, cfg.AWS.Region)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create aws clients: %w", err)
	}

	budget, err := embedding.NewTokenBudget(cfg.Embedding.TokenBudget)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to initialize token budget: %w", err)
	}

	return &AppContext{
		Config:      cfg,
		Logger:      appLogger,
		Database:    database,
		Repo:        repo,
		Embedder:    embedder,
		Translator:  awsx.NewTranslator(awsClients.Translate),
		TokenBudget: budget,
		Catalog:     catalog.NewService(repo, appLogger),
		Search:      search.NewEngine(repo, embedder, appLogger),
		Classify:    classify.NewService(repo, completer, appLogger),
		DocExtract: docextract.NewService(
			awsx.NewStorage(awsClients.S3, appLogger),
			awsx.NewExtractor(awsClients.Textract),
			completer,
			appLogger,
		),
	}, nil
}

// EmbeddingMaintenance は指定オプションでEmbeddingバッチ処理を組み立てる
func (ac *AppContext) EmbeddingMaintenance(failFast bool) *embedding.Maintenance {
	opts := []embedding.MaintenanceOption{
		embedding.WithLogger(ac.Logger),
		embedding.WithTokenBudget(ac.TokenBudget),
	}
	if failFast {
		opts = append(opts, embedding.WithFailFast())
	}
	return embedding.NewMaintenance(ac.Repo, ac.Embedder, opts...)
}

// TranslationMaintenance は指定オプションで翻訳バッチ処理を組み立てる
func (ac *AppContext) TranslationMaintenance(failFast bool) *translate.Maintenance {
	opts := []translate.MaintenanceOption{
		translate.WithLogger(ac.Logger),
	}
	if failFast {
		opts = append(opts, translate.WithFailFast())
	}
	return translate.NewMaintenance(ac.Repo, ac.Translator, opts...)
}

// Close はAppContextが保持するリソースをクリーンアップする
func (ac *AppContext) Close() {
	if ac.Database != nil {
		ac.Database.Close()
	}
}
