package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
	"github.com/zeroandone/catalog-ai/cmd/catalog-ai/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &cli.Command{
		Name:  "catalog-ai",
		Usage: "セマンティック検索対応の商品カタログバックエンド",
		Commands: []*cli.Command{
			{
				Name:  "server",
				Usage: "サーバ関連コマンド",
				Commands: []*cli.Command{
					{
						Name:  "start",
						Usage: "HTTPサーバを起動",
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:  "env",
								Usage: "環境変数ファイルパス",
								Value: ".env",
							},
							&cli.IntFlag{
								Name:  "port",
								Usage: "HTTPポート（省略時は環境変数またはデフォルトの8080）",
							},
						},
						Action: commands.ServerStartAction,
					},
				},
			},
			{
				Name:  "embed",
				Usage: "Embedding管理コマンド",
				Commands: []*cli.Command{
					{
						Name:  "run",
						Usage: "Embedding未生成の商品を一括処理",
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:  "env",
								Usage: "環境変数ファイルパス",
								Value: ".env",
							},
							&cli.BoolFlag{
								Name:  "fail-fast",
								Usage: "最初の失敗でバッチを中断",
							},
						},
						Action: commands.EmbedRunAction,
					},
				},
			},
			{
				Name:  "translate",
				Usage: "翻訳管理コマンド",
				Commands: []*cli.Command{
					{
						Name:  "run",
						Usage: "アラビア語訳が欠けている商品を一括翻訳",
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:  "env",
								Usage: "環境変数ファイルパス",
								Value: ".env",
							},
							&cli.BoolFlag{
								Name:  "fail-fast",
								Usage: "最初の失敗でバッチを中断",
							},
						},
						Action: commands.TranslateRunAction,
					},
				},
			},
		},
	}

	if err := app.Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}
