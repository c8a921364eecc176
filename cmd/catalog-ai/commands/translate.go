package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// TranslateRunAction はアラビア語訳が欠けている商品を一括翻訳する
func TranslateRunAction(ctx context.Context, cmd *cli.Command) error {
	envFile := cmd.String("env")
	failFast := cmd.Bool("fail-fast")

	appCtx, err := NewAppContext(ctx, envFile)
	if err != nil {
		return err
	}
	defer appCtx.Close()

	report, err := appCtx.TranslationMaintenance(failFast).Run(ctx)
	if err != nil {
		return fmt.Errorf("translation batch failed: %w", err)
	}

	fmt.Printf("Translated: %d\n", report.Translated)
	fmt.Printf("Failed:     %d\n", report.Failed)
	for _, f := range report.Failures {
		fmt.Printf("  - product %d: %s\n", f.ProductID, f.Reason)
	}

	return nil
}
