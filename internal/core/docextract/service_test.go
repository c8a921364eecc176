package docextract

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStorage struct {
	data   []byte
	err    error
	bucket string
	key    string
}

func (s *stubStorage) Fetch(ctx context.Context, bucket, key string) ([]byte, error) {
	s.bucket = bucket
	s.key = key
	return s.data, s.err
}

type stubExtractor struct {
	text     string
	err      error
	received []byte
}

func (e *stubExtractor) ExtractText(ctx context.Context, document []byte) (string, error) {
	e.received = document
	return e.text, e.err
}

type stubCompleter struct {
	response string
	err      error
	prompt   string
}

func (c *stubCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	c.prompt = prompt
	return c.response, c.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestExtractFromStorage_Pipeline(t *testing.T) {
	storage := &stubStorage{data: []byte("pdf-bytes")}
	extractor := &stubExtractor{text: "Invoice #42\nTotal: $10"}
	completer := &stubCompleter{response: `{"invoice":42,"total":10}`}
	svc := NewService(storage, extractor, completer, testLogger())

	result, err := svc.ExtractFromStorage(context.Background(), "docs", "invoice.pdf")
	require.NoError(t, err)
	assert.Equal(t, `{"invoice":42,"total":10}`, result)

	assert.Equal(t, "docs", storage.bucket)
	assert.Equal(t, "invoice.pdf", storage.key)
	assert.Equal(t, []byte("pdf-bytes"), extractor.received)
	assert.Contains(t, completer.prompt, "Invoice #42")
	assert.Contains(t, completer.prompt, "extract structured data into a JSON format")
}

func TestExtractFromStorage_StorageFailure(t *testing.T) {
	svc := NewService(&stubStorage{err: ErrObjectNotFound}, &stubExtractor{}, &stubCompleter{}, testLogger())

	_, err := svc.ExtractFromStorage(context.Background(), "docs", "missing.pdf")
	assert.ErrorIs(t, err, ErrObjectNotFound)
}

func TestExtractFromStorage_ExtractorFailure(t *testing.T) {
	ocrErr := errors.New("unsupported document format")
	svc := NewService(&stubStorage{data: []byte("x")}, &stubExtractor{err: ocrErr}, &stubCompleter{}, testLogger())

	_, err := svc.ExtractFromStorage(context.Background(), "docs", "bad.bin")
	assert.ErrorIs(t, err, ocrErr)
}

func TestExtractFromStorage_CompleterFailure(t *testing.T) {
	modelErr := errors.New("model unavailable")
	svc := NewService(&stubStorage{data: []byte("x")}, &stubExtractor{text: "text"}, &stubCompleter{err: modelErr}, testLogger())

	_, err := svc.ExtractFromStorage(context.Background(), "docs", "doc.pdf")
	assert.ErrorIs(t, err, modelErr)
}
