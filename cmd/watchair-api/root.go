package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/watchair/watchair/internal/config"
	"github.com/watchair/watchair/pkg/log"
)

var rootCmd = &cobra.Command{
	Use:          "watchair-api",
	Short:        "Conference review workbook ingestion and metrics service",
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(runCmd)
}

// setup reads the configuration and installs the global logger. The returned
// function flushes and restores the previous logger.
func setup() (*config.Config, func(), error) {
	cfg, err := config.New()
	if err != nil {
		return nil, nil, err
	}

	logger, err := log.InitLog(log.Options{
		Level:   cfg.Service.LogLevel,
		Format:  cfg.Service.LogFormat,
		Service: rootCmd.Use,
	})
	if err != nil {
		return nil, nil, err
	}
	undo := zap.ReplaceGlobals(logger)

	return cfg, func() {
		_ = logger.Sync()
		undo()
	}, nil
}
