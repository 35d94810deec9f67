package main

import (
	"fmt"

	"github.com/Dosada05/sinuca-cup/config"
	"github.com/Dosada05/sinuca-cup/db"
	"github.com/spf13/cobra"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(config.LoadOptions{})
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			logger := newLogger(cfg.LogLevel)

			dbConn, err := db.Connect(cmd.Context(), cfg.DatabaseURL, db.DefaultConnectOptions(), logger)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer dbConn.Close()

			return db.Migrate(dbConn, logger)
		},
	}
}
