package bedrock

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"

	"github.com/zeroandone/catalog-ai/internal/core/classify"
	"github.com/zeroandone/catalog-ai/internal/core/docextract"
)

const (
	// DefaultCompletionModelID はモデル未指定時のデフォルト補完モデル
	DefaultCompletionModelID = "anthropic.claude-3-5-sonnet-20240620-v1:0"

	// anthropicVersion はBedrock上のAnthropicメッセージAPIのバージョン
	anthropicVersion = "bedrock-2023-05-31"

	defaultMaxTokens   = 512
	defaultTemperature = 0.5
)

// ErrEmptyCompletion はモデル応答にテキストコンテンツが無い場合のエラー
var ErrEmptyCompletion = errors.New("provider response contains no text content")

// Completer は Bedrock 上の Anthropic メッセージAPIでテキスト補完を行う
type Completer struct {
	api         InvokeModelAPI
	modelID     string
	maxTokens   int
	temperature float64
}

// NewCompleter は新しいCompleterを作成する
func NewCompleter(api InvokeModelAPI, modelID string) *Completer {
	if modelID == "" {
		modelID = DefaultCompletionModelID
	}
	return &Completer{
		api:         api,
		modelID:     modelID,
		maxTokens:   defaultMaxTokens,
		temperature: defaultTemperature,
	}
}

// anthropicRequest は AnthropicメッセージAPIのリクエストボディ
type anthropicRequest struct {
	AnthropicVersion string             `json:"anthropic_version"`
	MaxTokens        int                `json:"max_tokens"`
	Temperature      float64            `json:"temperature"`
	Messages         []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string             `json:"role"`
	Content []anthropicContent `json:"content"`
}

type anthropicContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// anthropicResponse は AnthropicメッセージAPIの応答ボディ
type anthropicResponse struct {
	Content []anthropicContent `json:"content"`
}

// Complete はプロンプトに対する補完テキストを生成する
func (c *Completer) Complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(anthropicRequest{
		AnthropicVersion: anthropicVersion,
		MaxTokens:        c.maxTokens,
		Temperature:      c.temperature,
		Messages: []anthropicMessage{
			{
				Role:    "user",
				Content: []anthropicContent{{Type: "text", Text: prompt}},
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal completion request: %w", err)
	}

	out, err := c.api.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(c.modelID),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        body,
	})
	if err != nil {
		return "", fmt.Errorf("bedrock invoke failed for model %s: %w", c.modelID, err)
	}

	var resp anthropicResponse
	if err := json.Unmarshal(out.Body, &resp); err != nil {
		return "", fmt.Errorf("failed to decode completion response: %w", err)
	}
	if len(resp.Content) == 0 || resp.Content[0].Text == "" {
		return "", ErrEmptyCompletion
	}

	return resp.Content[0].Text, nil
}

// インターフェース実装の確認
var (
	_ classify.Completer   = (*Completer)(nil)
	_ docextract.Completer = (*Completer)(nil)
)
