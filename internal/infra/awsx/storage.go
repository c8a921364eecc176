package awsx

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/zeroandone/catalog-ai/internal/core/docextract"
)

// ObjectStorageAPI は S3 のオブジェクト取得・バケット確認呼び出しを抽象化する
type ObjectStorageAPI interface {
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Storage は S3 からのドキュメント取得を提供する
type Storage struct {
	api    ObjectStorageAPI
	logger *slog.Logger
}

// NewStorage は新しいStorageを作成する
func NewStorage(api ObjectStorageAPI, logger *slog.Logger) *Storage {
	if logger == nil {
		logger = slog.Default()
	}
	return &Storage{api: api, logger: logger}
}

// Fetch はオブジェクトの中身を取得する
// バケットの存在確認を先に行い、不在・アクセス拒否を名前付きエラーにマップする
func (s *Storage) Fetch(ctx context.Context, bucket, key string) ([]byte, error) {
	if err := s.checkBucket(ctx, bucket); err != nil {
		return nil, err
	}

	out, err := s.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noSuchKey *s3types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, fmt.Errorf("%w: object %q in bucket %q", docextract.ErrObjectNotFound, key, bucket)
		}
		return nil, fmt.Errorf("failed to get object: %w", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read object body: %w", err)
	}

	s.logger.Info("object fetched", slog.String("bucket", bucket), slog.String("key", key), slog.Int("bytes", len(data)))
	return data, nil
}

// checkBucket はバケットの存在とアクセス可否を確認する
func (s *Storage) checkBucket(ctx context.Context, bucket string) error {
	_, err := s.api.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(bucket)})
	if err == nil {
		return nil
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NotFound", "NoSuchBucket":
			return fmt.Errorf("%w: bucket %q", docextract.ErrObjectNotFound, bucket)
		case "Forbidden", "AccessDenied":
			return fmt.Errorf("%w: bucket %q", docextract.ErrAccessDenied, bucket)
		}
	}
	return fmt.Errorf("failed to check bucket: %w", err)
}

// インターフェース実装の確認
var _ docextract.ObjectStorage = (*Storage)(nil)
