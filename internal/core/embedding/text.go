package embedding

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkoukk/tiktoken-go"

	"github.com/zeroandone/catalog-ai/internal/core/catalog"
)

// BuildInput は商品からEmbedding入力テキストを合成する
// フィールドは固定順（name, description, category, price, name_ar, description_ar）で
// 単一スペース区切りに連結し、未設定の項目は空文字列として扱う
func BuildInput(p *catalog.Product) string {
	parts := []string{
		p.Name,
		p.Description,
		strOrEmpty(p.Category),
		strconv.FormatFloat(p.Price, 'f', -1, 64),
		strOrEmpty(p.NameAr),
		strOrEmpty(p.DescriptionAr),
	}
	return strings.Join(parts, " ")
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// TokenBudget はEmbedding入力のトークン数を上限内に切り詰める
// Embeddingモデルの入力トークン上限を超えるとプロバイダ呼び出しが失敗するため、
// 送信前にこちらで切り詰める
type TokenBudget struct {
	encoding *tiktoken.Tiktoken
	limit    int
}

// NewTokenBudget は新しいTokenBudgetを作成する
// cl100k_baseエンコーディングを使用する
func NewTokenBudget(limit int) (*TokenBudget, error) {
	encoding, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		return nil, fmt.Errorf("failed to get tiktoken encoding: %w", err)
	}

	return &TokenBudget{
		encoding: encoding,
		limit:    limit,
	}, nil
}

// CountTokens はテキストのトークン数をカウントする
func (b *TokenBudget) CountTokens(text string) int {
	tokens := b.encoding.Encode(text, nil, nil)
	return len(tokens)
}

// Truncate はテキストを上限トークン数以内に切り詰める
func (b *TokenBudget) Truncate(text string) string {
	if b.limit <= 0 {
		return text
	}

	tokens := b.encoding.Encode(text, nil, nil)
	if len(tokens) <= b.limit {
		return text
	}
	return b.encoding.Decode(tokens[:b.limit])
}
