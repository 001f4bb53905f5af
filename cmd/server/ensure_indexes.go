package main

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kawsar-hussain/server-A11/internal/infrastructure/database"
)

func ensureIndexesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ensure-indexes",
		Short: "Create the document store indexes and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			cfg, log, client, err := bootstrap(ctx)
			if err != nil {
				return err
			}
			defer log.Sync()
			defer func() {
				if err := database.Close(context.Background(), client, log); err != nil {
					log.Error("Failed to close database connection", zap.Error(err))
				}
			}()

			if err := database.EnsureIndexes(ctx, client.Database(cfg.Mongo.Database), log); err != nil {
				return err
			}
			log.Info("Indexes are up to date")
			return nil
		},
	}
}
