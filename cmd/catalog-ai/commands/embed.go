package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// EmbedRunAction はEmbedding未生成の商品を一括処理する
func EmbedRunAction(ctx context.Context, cmd *cli.Command) error {
	envFile := cmd.String("env")
	failFast := cmd.Bool("fail-fast")

	appCtx, err := NewAppContext(ctx, envFile)
	if err != nil {
		return err
	}
	defer appCtx.Close()

	report, err := appCtx.EmbeddingMaintenance(failFast).Run(ctx)
	if err != nil {
		return fmt.Errorf("embedding batch failed: %w", err)
	}

	fmt.Printf("Embedded: %d\n", report.Embedded)
	fmt.Printf("Failed:   %d\n", report.Failed)
	for _, f := range report.Failures {
		fmt.Printf("  - product %d: %s\n", f.ProductID, f.Reason)
	}

	return nil
}
