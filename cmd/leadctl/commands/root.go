package commands

import (
	"fmt"

	"leadboard/internal/config"
	"leadboard/internal/logging"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "leadctl",
	Short: "leadctl - operator tool for the lead pipeline board",
	Long: `leadctl inspects the lead pipeline board and manages its database schema.

Configuration is read from the environment and an optional .env file, the same
way the board service reads it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
	FParseErrWhitelist: cobra.FParseErrWhitelist{},
}

// Execute runs the root command.
func Execute() error {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	return rootCmd.Execute()
}

func SetVersionInfo(v, c string) {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s)", v, c)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override LOG_LEVEL")
}

// loadConfig reads configuration and builds the logger used by subcommands.
func loadConfig() (*config.Config, *log.Logger) {
	cfg := config.Load()
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	return cfg, logging.New(cfg.LogLevel, cfg.LogFormat)
}
