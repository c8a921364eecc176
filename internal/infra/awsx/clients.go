// Package awsx は AWS Translate / S3 / Textract の薄いアダプタを提供する
// いずれも外部コラボレータであり、ドメイン層には型付きの小さなインターフェース越しに見せる
package awsx

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/textract"
	"github.com/aws/aws-sdk-go-v2/service/translate"
)

// Clients はこのアプリが使うAWSサービスクライアント一式を保持する
type Clients struct {
	Translate *translate.Client
	S3        *s3.Client
	Textract  *textract.Client
}

// NewClients はリージョンを指定して各サービスクライアントを作成する
func NewClients(ctx context.Context, region string) (*Clients, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &Clients{
		Translate: translate.NewFromConfig(cfg),
		S3:        s3.NewFromConfig(cfg),
		Textract:  textract.NewFromConfig(cfg),
	}, nil
}
