package awsx

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/translate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTranslateAPI struct {
	translated string
	err        error
	input      *translate.TranslateTextInput
}

func (s *stubTranslateAPI) TranslateText(ctx context.Context, params *translate.TranslateTextInput, optFns ...func(*translate.Options)) (*translate.TranslateTextOutput, error) {
	s.input = params
	if s.err != nil {
		return nil, s.err
	}
	return &translate.TranslateTextOutput{TranslatedText: aws.String(s.translated)}, nil
}

func TestTranslatorTranslate(t *testing.T) {
	api := &stubTranslateAPI{translated: "حاسوب محمول"}
	translator := NewTranslator(api)

	result, err := translator.Translate(context.Background(), "Laptop", "en", "ar")
	require.NoError(t, err)
	assert.Equal(t, "حاسوب محمول", result)

	require.NotNil(t, api.input)
	assert.Equal(t, "Laptop", aws.ToString(api.input.Text))
	assert.Equal(t, "en", aws.ToString(api.input.SourceLanguageCode))
	assert.Equal(t, "ar", aws.ToString(api.input.TargetLanguageCode))
}

func TestTranslatorTranslate_Failure(t *testing.T) {
	apiErr := errors.New("unsupported language pair")
	translator := NewTranslator(&stubTranslateAPI{err: apiErr})

	_, err := translator.Translate(context.Background(), "Laptop", "en", "xx")
	assert.ErrorIs(t, err, apiErr)
}
