package cmd

import (
	"fmt"
	"log/slog"

	"github.com/pvpfilter/cardcatalog/catalog"
	"github.com/spf13/cobra"
)

var (
	configPath string
	version    = "dev"
	commit     = "unknown"
	logLevel   *slog.LevelVar
)

var rootCmd = &cobra.Command{
	Use:           "cardcatalog",
	Short:         "PvP card catalog server, Discord bot and tools",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.toml", "path to config")
}

// Execute runs the root command. level is raised or lowered to the configured log level.
func Execute(buildVersion, buildCommit string, level *slog.LevelVar) error {
	version = buildVersion
	commit = buildCommit
	logLevel = level
	rootCmd.Version = fmt.Sprintf("%s (%s)", version, commit)
	return rootCmd.Execute()
}

func loadConfig() (*catalog.Config, error) {
	cfg, err := catalog.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if logLevel != nil {
		logLevel.Set(cfg.Log.Level)
	}
	slog.Info("Configuration loaded successfully",
		slog.String("type", "sys"),
		slog.String("path", configPath),
		slog.String("backend", cfg.Store.Backend))
	return cfg, nil
}
