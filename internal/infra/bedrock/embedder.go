package bedrock

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"

	"github.com/zeroandone/catalog-ai/internal/core/embedding"
	"github.com/zeroandone/catalog-ai/internal/core/search"
)

// DefaultEmbeddingModelID はモデル未指定時のデフォルトEmbeddingモデル
const DefaultEmbeddingModelID = "amazon.titan-embed-text-v2:0"

// ErrMissingEmbedding はプロバイダ応答に embedding フィールドが無い場合のエラー
// 応答形状の崩れであり、呼び出しは成功扱いにしない
var ErrMissingEmbedding = errors.New("provider response is missing embedding field")

// Embedder は Bedrock Titan Embed を使用してテキストをベクトルに変換する
type Embedder struct {
	api       InvokeModelAPI
	modelID   string
	dimension int
}

// NewEmbedder は新しいEmbedderを作成する
func NewEmbedder(api InvokeModelAPI, modelID string, dimension int) *Embedder {
	if modelID == "" {
		modelID = DefaultEmbeddingModelID
	}
	return &Embedder{
		api:       api,
		modelID:   modelID,
		dimension: dimension,
	}
}

// titanEmbedRequest は Titan Embed モデルへのリクエストボディ
type titanEmbedRequest struct {
	InputText  string `json:"inputText"`
	Dimensions int    `json:"dimensions,omitempty"`
}

// titanEmbedResponse は Titan Embed モデルの応答ボディ
type titanEmbedResponse struct {
	Embedding           []float32 `json:"embedding"`
	InputTextTokenCount int       `json:"inputTextTokenCount"`
}

// Embed は単一テキストのEmbeddingを生成する
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	body, err := json.Marshal(titanEmbedRequest{
		InputText:  text,
		Dimensions: e.dimension,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal embedding request: %w", err)
	}

	out, err := e.api.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(e.modelID),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        body,
	})
	if err != nil {
		return nil, fmt.Errorf("bedrock invoke failed for model %s: %w", e.modelID, err)
	}

	var resp titanEmbedResponse
	if err := json.Unmarshal(out.Body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode embedding response: %w", err)
	}
	if resp.Embedding == nil {
		return nil, ErrMissingEmbedding
	}

	return resp.Embedding, nil
}

// ModelID はモデルIDを返す
func (e *Embedder) ModelID() string {
	return e.modelID
}

// インターフェース実装の確認
var (
	_ embedding.Embedder = (*Embedder)(nil)
	_ search.Embedder    = (*Embedder)(nil)
)
