package openai

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/zeroandone/catalog-ai/internal/core/embedding"
	"github.com/zeroandone/catalog-ai/internal/core/search"
)

// DefaultEmbeddingModel はモデル未指定時のデフォルトモデル
const DefaultEmbeddingModel = "text-embedding-3-small"

// Embedder は OpenAI API を使用してテキストをベクトルに変換する
// 代替Embeddingプロバイダ。次元数はカタログのベクトル次元に固定する
type Embedder struct {
	client    openai.Client
	model     string
	dimension int
}

// NewEmbedder は新しい Embedder を作成する
func NewEmbedder(apiKey, model string, dimension int) *Embedder {
	if model == "" {
		model = DefaultEmbeddingModel
	}
	return &Embedder{
		client: openai.NewClient(
			option.WithAPIKey(apiKey),
		),
		model:     model,
		dimension: dimension,
	}
}

// Embed は単一テキストの Embedding を生成する
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	params := openai.EmbeddingNewParams{
		Model: openai.EmbeddingModel(e.model),
		Input: openai.EmbeddingNewParamsInputUnion{
			OfString: openai.String(text),
		},
	}
	if e.dimension > 0 {
		params.Dimensions = openai.Int(int64(e.dimension))
	}

	resp, err := e.client.Embeddings.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("no embeddings generated")
	}

	vector := make([]float32, len(resp.Data[0].Embedding))
	for i, v := range resp.Data[0].Embedding {
		vector[i] = float32(v)
	}
	return vector, nil
}

// ModelName はモデル名を返す
func (e *Embedder) ModelName() string {
	return e.model
}

// インターフェース実装の確認
var (
	_ embedding.Embedder = (*Embedder)(nil)
	_ search.Embedder    = (*Embedder)(nil)
)
