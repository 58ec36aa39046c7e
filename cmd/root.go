package cmd

import (
	"eventhub_backend/internal/config"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const defaultConfigDir = "configs"

// newRootCommand builds the command tree. Tests call it directly so flag
// state never leaks between runs.
func newRootCommand() *cobra.Command {
	var configDir string

	root := &cobra.Command{
		Use:   "eventhub",
		Short: "EventHub backend - events, tickets and social features",
		Long: `EventHub backend serves the HTTP API for hosts publishing events and users
discovering, buying tickets for and talking about them.

Without a subcommand the HTTP server is started.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configDir, "config", defaultConfigDir, "directory holding config.yaml")

	load := func(cmd *cobra.Command) (*config.Config, error) {
		cfg, err := config.LoadConfig(configDir)
		if err != nil {
			return nil, fmt.Errorf("config error: %w", err)
		}
		return cfg, nil
	}

	serve := newServeCommand(load)
	root.RunE = serve.RunE
	root.Flags().AddFlagSet(serve.Flags())

	root.AddCommand(serve)
	root.AddCommand(newMigrateCommand(load))
	root.AddCommand(newTagEventsCommand(load))

	return root
}

type configLoader func(cmd *cobra.Command) (*config.Config, error)

// Execute runs the command line. It is called once from main.
func Execute() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
