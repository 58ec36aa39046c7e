package cmd

import (
	"eventhub_backend/pkg/database"
	"eventhub_backend/pkg/logger"
	"fmt"

	"github.com/spf13/cobra"
)

func newMigrateCommand(load configLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Migrate the database schema and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load(cmd)
			if err != nil {
				return err
			}
			cfg.MigrateOnly = true

			logger.InitLogger(cfg)
			defer logger.Sync()

			db, err := database.InitDB(cfg)
			if err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Database migration completed")
			return nil
		},
	}
}
