package awsx

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeroandone/catalog-ai/internal/core/docextract"
)

type stubS3API struct {
	headErr error
	getErr  error
	data    []byte
}

func (s *stubS3API) HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	if s.headErr != nil {
		return nil, s.headErr
	}
	return &s3.HeadBucketOutput{}, nil
}

func (s *stubS3API) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(s.data))}, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestStorageFetch(t *testing.T) {
	storage := NewStorage(&stubS3API{data: []byte("document bytes")}, testLogger())

	data, err := storage.Fetch(context.Background(), "docs", "invoice.pdf")
	require.NoError(t, err)
	assert.Equal(t, []byte("document bytes"), data)
}

func TestStorageFetch_BucketErrors(t *testing.T) {
	tests := []struct {
		name    string
		headErr error
		wantErr error
	}{
		{
			name:    "バケット不在",
			headErr: &smithy.GenericAPIError{Code: "NotFound", Message: "Not Found"},
			wantErr: docextract.ErrObjectNotFound,
		},
		{
			name:    "NoSuchBucket",
			headErr: &smithy.GenericAPIError{Code: "NoSuchBucket", Message: "bucket does not exist"},
			wantErr: docextract.ErrObjectNotFound,
		},
		{
			name:    "アクセス拒否",
			headErr: &smithy.GenericAPIError{Code: "Forbidden", Message: "Forbidden"},
			wantErr: docextract.ErrAccessDenied,
		},
		{
			name:    "AccessDenied",
			headErr: &smithy.GenericAPIError{Code: "AccessDenied", Message: "Access Denied"},
			wantErr: docextract.ErrAccessDenied,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage := NewStorage(&stubS3API{headErr: tt.headErr}, testLogger())

			_, err := storage.Fetch(context.Background(), "docs", "key")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestStorageFetch_ObjectNotFound(t *testing.T) {
	storage := NewStorage(&stubS3API{getErr: &s3types.NoSuchKey{}}, testLogger())

	_, err := storage.Fetch(context.Background(), "docs", "missing.pdf")
	assert.ErrorIs(t, err, docextract.ErrObjectNotFound)
}

func TestStorageFetch_UnknownError(t *testing.T) {
	// マップ対象外のエラーはそのままラップして返す
	netErr := errors.New("connection reset")
	storage := NewStorage(&stubS3API{headErr: netErr}, testLogger())

	_, err := storage.Fetch(context.Background(), "docs", "key")
	require.Error(t, err)
	assert.NotErrorIs(t, err, docextract.ErrObjectNotFound)
	assert.NotErrorIs(t, err, docextract.ErrAccessDenied)
}
