package cmd

import (
	"eventhub_backend/internal/app"
	"eventhub_backend/pkg/logger"

	"github.com/spf13/cobra"
)

func newServeCommand(load configLoader) *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long: `Start the HTTP server and the background jobs.

The server will:
- Load configs/config.yaml, then .env and environment overrides
- Migrate the schema outside release mode, or always with --migrate
- Tag uncategorized events once a day
- Reload CORS, rate limit and log level when config.yaml changes
- Shut down gracefully on SIGINT/SIGTERM

Examples:
  # Start with the default config directory
  eventhub serve

  # Release build that migrates before serving
  SERVER_MODE=release eventhub serve --migrate`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load(cmd)
			if err != nil {
				return err
			}
			cfg.ForceMigrate = migrate

			application := app.NewApp(cfg)
			defer logger.Sync()

			return application.Run()
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "migrate the schema on startup even in release mode")

	return cmd
}
