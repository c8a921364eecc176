package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config はアプリケーション全体の設定を保持します
type Config struct {
	// Database設定
	Database DatabaseConfig

	// HTTPサーバ設定
	HTTP HTTPConfig

	// AWS設定（Bedrock / Translate / S3 / Textract）
	AWS AWSConfig

	// Embedding設定
	Embedding EmbeddingConfig

	// OpenAI設定（代替Embeddingプロバイダ用）
	OpenAI OpenAIConfig
}

// DatabaseConfig はデータベース接続設定
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// HTTPConfig はHTTPサーバ設定
type HTTPConfig struct {
	Port int
}

// AWSConfig はAWSサービス共通の設定
type AWSConfig struct {
	Region string

	// CompletionModelID は分類・構造化に使うBedrockモデルID
	CompletionModelID string

	// EmbeddingModelID はBedrock EmbeddingモデルID
	EmbeddingModelID string
}

// EmbeddingConfig はEmbedding生成の共通設定
type EmbeddingConfig struct {
	// Provider は "bedrock" または "openai"
	Provider string

	// Dimension はカタログのベクトル次元数
	Dimension int

	// TokenBudget はEmbedding入力テキストの最大トークン数
	TokenBudget int
}

// OpenAIConfig はOpenAI API設定
type OpenAIConfig struct {
	APIKey string
	Model  string
}

// Load は環境変数または.envファイルから設定を読み込みます
func Load(envFilePath string) (*Config, error) {
	// .envファイルが存在する場合は読み込む
	if envFilePath != "" {
		if err := godotenv.Load(envFilePath); err != nil {
			// ファイルが存在しない場合はエラーとしない（環境変数のみで動作可能）
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to load .env file: %w", err)
			}
		}
	}

	cfg := &Config{
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "catalog"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "catalog"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		HTTP: HTTPConfig{
			Port: getEnvAsInt("HTTP_PORT", 8080),
		},
		AWS: AWSConfig{
			Region:            getEnv("AWS_REGION", "us-east-1"),
			CompletionModelID: getEnv("BEDROCK_COMPLETION_MODEL_ID", "anthropic.claude-3-5-sonnet-20240620-v1:0"),
			EmbeddingModelID:  getEnv("BEDROCK_EMBEDDING_MODEL_ID", "amazon.titan-embed-text-v2:0"),
		},
		Embedding: EmbeddingConfig{
			Provider:    getEnv("EMBEDDING_PROVIDER", "bedrock"),
			Dimension:   getEnvAsInt("EMBEDDING_DIMENSION", 1024),
			TokenBudget: getEnvAsInt("EMBEDDING_TOKEN_BUDGET", 8000),
		},
		OpenAI: OpenAIConfig{
			APIKey: getEnv("OPENAI_API_KEY", ""),
			Model:  getEnv("OPENAI_EMBEDDING_MODEL", "text-embedding-3-small"),
		},
	}

	return cfg, nil
}

// getEnv は環境変数を取得し、存在しない場合はデフォルト値を返します
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt は環境変数を整数として取得します
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
