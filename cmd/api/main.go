package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sand-hq/campaign-api/internal/config"
	mongodoc "github.com/sand-hq/campaign-api/internal/infrastructure/mongo"
	"github.com/sand-hq/campaign-api/internal/server"
)

var cfg config.Config

var rootCmd = &cobra.Command{
	Use:           "campaign-api",
	Short:         "Campaign management HTTP API",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if cfg.Logger != nil {
			_ = cfg.Logger.Sync()
		}
	},
	RunE: serve,
}

var indexesCmd = &cobra.Command{
	Use:   "indexes",
	Short: "Create the MongoDB indexes and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		client, err := mongodoc.Connect(ctx, cfg.MongoURI, cfg.Timeout)
		if err != nil {
			return err
		}
		defer client.Disconnect(context.Background())

		if err := mongodoc.EnsureIndexes(ctx, client.Database(cfg.MongoDatabase), server.Collections(cfg)); err != nil {
			return err
		}
		cfg.Logger.Info("indexes ensured", zap.String("database", cfg.MongoDatabase))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(indexesCmd)
}

func serve(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	client, err := mongodoc.Connect(ctx, cfg.MongoURI, cfg.Timeout)
	if err != nil {
		return fmt.Errorf("MongoDB 接続に失敗しました: %w", err)
	}

	app, err := server.New(ctx, cfg, client)
	if err != nil {
		_ = client.Disconnect(context.Background())
		return err
	}
	return app.Run(ctx)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
