package main

import (
	"os"

	"github.com/spf13/cobra"

	"ecotrack/internal/app"
	"ecotrack/internal/config"
	"ecotrack/internal/logging"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:           "ecotrack",
	Short:         "EcoTrack maintenance commands",
	Long:          "Database migration, admin bootstrap and feed ingestion for EcoTrack. Connection settings come from the environment or a .env file.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// openApp loads configuration and connects to the database.
func openApp(cmd *cobra.Command) (*app.App, error) {
	cfg := config.Load()
	logger := logging.Init(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	return app.Open(cmd.Context(), cfg, logger)
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(bootstrapAdminCmd)
	rootCmd.AddCommand(ingestCmd)
}
