package bedrock

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompleterComplete(t *testing.T) {
	api := &stubInvokeAPI{
		response: []byte(`{"content":[{"type":"text","text":"[{\"id\":1,\"category\":\"Books\"}]"}]}`),
	}
	completer := NewCompleter(api, "")

	text, err := completer.Complete(context.Background(), "classify this")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1,"category":"Books"}]`, text)

	require.NotNil(t, api.input)
	assert.Equal(t, DefaultCompletionModelID, *api.input.ModelId)

	var req anthropicRequest
	require.NoError(t, json.Unmarshal(api.input.Body, &req))
	assert.Equal(t, anthropicVersion, req.AnthropicVersion)
	assert.Equal(t, defaultMaxTokens, req.MaxTokens)
	require.Len(t, req.Messages, 1)
	assert.Equal(t, "user", req.Messages[0].Role)
	require.Len(t, req.Messages[0].Content, 1)
	assert.Equal(t, "classify this", req.Messages[0].Content[0].Text)
}

func TestCompleterComplete_EmptyContent(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{
			name:     "contentが空配列",
			response: `{"content":[]}`,
		},
		{
			name:     "テキストが空",
			response: `{"content":[{"type":"text","text":""}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &stubInvokeAPI{response: []byte(tt.response)}
			completer := NewCompleter(api, "")

			_, err := completer.Complete(context.Background(), "prompt")
			assert.ErrorIs(t, err, ErrEmptyCompletion)
		})
	}
}
