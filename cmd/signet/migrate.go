package main

import (
	"github.com/spf13/cobra"

	"github.com/dropDatabas3/signet/internal/config"
	"github.com/dropDatabas3/signet/internal/observability/logger"
	"github.com/dropDatabas3/signet/internal/store/pg"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the embedded database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			logger.Init(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, ServiceName: "signet"})
			defer logger.Sync()

			if err := pg.RunMigrations(cmd.Context(), cfg.Storage.DSN); err != nil {
				return err
			}
			logger.L().Info("migrations applied")
			return nil
		},
	}
}
