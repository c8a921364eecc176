package commands

import (
	"context"

	"github.com/urfave/cli/v3"
	httpiface "github.com/zeroandone/catalog-ai/internal/interface/http"
)

// ServerStartAction はHTTPサーバを起動する
func ServerStartAction(ctx context.Context, cmd *cli.Command) error {
	envFile := cmd.String("env")

	appCtx, err := NewAppContext(ctx, envFile)
	if err != nil {
		return err
	}
	defer appCtx.Close()

	port := appCtx.Config.HTTP.Port
	if cmd.IsSet("port") {
		port = cmd.Int("port")
	}

	handler := httpiface.NewHandler(
		appCtx.Catalog,
		appCtx.Search,
		appCtx.EmbeddingMaintenance(false),
		appCtx.TranslationMaintenance(false),
		appCtx.Classify,
		appCtx.DocExtract,
		appCtx.Logger,
	)

	server := httpiface.NewServer(port, handler, appCtx.Logger)
	return server.Run(ctx)
}
