package main

import (
	"log/slog"
	"os"

	"github.com/pvpfilter/cardcatalog/catalog/logger"
	"github.com/pvpfilter/cardcatalog/cmd"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	level := new(slog.LevelVar)
	slog.SetDefault(slog.New(logger.NewHandler("catalog", level)))

	if err := cmd.Execute(version, commit, level); err != nil {
		slog.Error("Command failed", slog.Any("error", err))
		os.Exit(1)
	}
}
