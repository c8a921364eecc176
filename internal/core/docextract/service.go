package docextract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

var (
	// ErrObjectNotFound はバケットまたはオブジェクトが存在しない場合のエラー
	ErrObjectNotFound = errors.New("storage object not found")

	// ErrAccessDenied はバケットへのアクセスが拒否された場合のエラー
	ErrAccessDenied = errors.New("storage access denied")
)

// ObjectStorage はオブジェクトストレージからのファイル取得インターフェース
type ObjectStorage interface {
	// Fetch はオブジェクトの中身を取得する
	// バケット不在・アクセス拒否は ErrObjectNotFound / ErrAccessDenied にマップされる
	Fetch(ctx context.Context, bucket, key string) ([]byte, error)
}

// TextExtractor はドキュメントバイト列からのテキスト抽出（OCR）インターフェース
type TextExtractor interface {
	ExtractText(ctx context.Context, document []byte) (string, error)
}

// Completer は抽出テキストの構造化に使うテキスト補完インターフェース
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Service はストレージ上のドキュメントからの構造化テキスト抽出を提供する
// このパイプラインの出力はEmbeddingや検索ランキングには流れない
type Service struct {
	storage   ObjectStorage
	extractor TextExtractor
	completer Completer
	logger    *slog.Logger
}

// NewService は新しいServiceを作成する
func NewService(storage ObjectStorage, extractor TextExtractor, completer Completer, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		storage:   storage,
		extractor: extractor,
		completer: completer,
		logger:    logger,
	}
}

// ExtractFromStorage はストレージ取得 -> OCR -> 構造化の順でドキュメントを処理する
func (s *Service) ExtractFromStorage(ctx context.Context, bucket, key string) (string, error) {
	document, err := s.storage.Fetch(ctx, bucket, key)
	if err != nil {
		return "", fmt.Errorf("failed to fetch document: %w", err)
	}

	s.logger.Info("document fetched", slog.String("bucket", bucket), slog.String("key", key), slog.Int("bytes", len(document)))

	text, err := s.extractor.ExtractText(ctx, document)
	if err != nil {
		return "", fmt.Errorf("failed to extract text: %w", err)
	}

	structured, err := s.completer.Complete(ctx, buildStructuringPrompt(text))
	if err != nil {
		return "", fmt.Errorf("failed to structure text: %w", err)
	}

	return structured, nil
}

// buildStructuringPrompt は抽出テキストをJSONに構造化するプロンプトを組み立てる
func buildStructuringPrompt(text string) string {
	return "Given the following document text, extract structured data into a JSON format:\n\n" +
		"-----\n" + text + "\n-----\n\n" +
		"Return a well-formatted JSON."
}
