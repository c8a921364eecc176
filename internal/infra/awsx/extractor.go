package awsx

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/textract"
	textracttypes "github.com/aws/aws-sdk-go-v2/service/textract/types"

	"github.com/zeroandone/catalog-ai/internal/core/docextract"
)

// DetectDocumentTextAPI は Textract のテキスト検出呼び出しを抽象化する
type DetectDocumentTextAPI interface {
	DetectDocumentText(ctx context.Context, params *textract.DetectDocumentTextInput, optFns ...func(*textract.Options)) (*textract.DetectDocumentTextOutput, error)
}

// Extractor は Textract によるドキュメントからのテキスト抽出を提供する
type Extractor struct {
	api DetectDocumentTextAPI
}

// NewExtractor は新しいExtractorを作成する
func NewExtractor(api DetectDocumentTextAPI) *Extractor {
	return &Extractor{api: api}
}

// ExtractText はドキュメントバイト列からLINEブロックのテキストを抽出し、改行で連結して返す
func (e *Extractor) ExtractText(ctx context.Context, document []byte) (string, error) {
	out, err := e.api.DetectDocumentText(ctx, &textract.DetectDocumentTextInput{
		Document: &textracttypes.Document{
			Bytes: document,
		},
	})
	if err != nil {
		return "", fmt.Errorf("textract call failed: %w", err)
	}

	var lines []string
	for _, block := range out.Blocks {
		if block.BlockType == textracttypes.BlockTypeLine {
			lines = append(lines, aws.ToString(block.Text))
		}
	}

	return strings.Join(lines, "\n"), nil
}

// インターフェース実装の確認
var _ docextract.TextExtractor = (*Extractor)(nil)
