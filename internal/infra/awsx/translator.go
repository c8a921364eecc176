package awsx

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/translate"

	coretranslate "github.com/zeroandone/catalog-ai/internal/core/translate"
)

// TranslateTextAPI は AWS Translate のテキスト翻訳呼び出しを抽象化する
type TranslateTextAPI interface {
	TranslateText(ctx context.Context, params *translate.TranslateTextInput, optFns ...func(*translate.Options)) (*translate.TranslateTextOutput, error)
}

// Translator は AWS Translate によるテキスト翻訳を提供する
type Translator struct {
	api TranslateTextAPI
}

// NewTranslator は新しいTranslatorを作成する
func NewTranslator(api TranslateTextAPI) *Translator {
	return &Translator{api: api}
}

// Translate はテキストをsourceLangからtargetLangへ翻訳する
func (t *Translator) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	out, err := t.api.TranslateText(ctx, &translate.TranslateTextInput{
		Text:               aws.String(text),
		SourceLanguageCode: aws.String(sourceLang),
		TargetLanguageCode: aws.String(targetLang),
	})
	if err != nil {
		return "", fmt.Errorf("translate call failed: %w", err)
	}

	return aws.ToString(out.TranslatedText), nil
}

// インターフェース実装の確認
var _ coretranslate.Translator = (*Translator)(nil)
