package cmd

import (
	"eventhub_backend/internal/repository"
	"eventhub_backend/internal/service"
	"eventhub_backend/pkg/database"
	"eventhub_backend/pkg/logger"
	"fmt"

	"github.com/spf13/cobra"
)

func newTagEventsCommand(load configLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "tag-events",
		Short: "Tag one batch of uncategorized events now",
		Long: `Run the auto-tagging job once instead of waiting for the daily run,
for example right after a bulk import of events.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load(cmd)
			if err != nil {
				return err
			}

			logger.InitLogger(cfg)
			defer logger.Sync()

			db, err := database.InitDB(cfg)
			if err != nil {
				return fmt.Errorf("connect database: %w", err)
			}
			defer func() {
				if sqlDB, err := db.DB(); err == nil {
					_ = sqlDB.Close()
				}
			}()

			tagging := service.NewAutoTaggingService(repository.NewEventCategoryRepository(db))
			tagged, err := tagging.RunAutoTagging(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Tagged %d events\n", tagged)
			return nil
		},
	}
}
