package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/f1r3sky/wallet-backend/internal/adapter/repository/postgres"
	"github.com/f1r3sky/wallet-backend/internal/config"
)

const (
	connectAttempts = 5
	connectDelay    = 2 * time.Second
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "wallet",
		Short:        "F1R3Sky wallet backend",
		Long:         `Validates and submits transfers and boosts, and serves wallet balance graphs and history over gRPC.`,
		SilenceUsage: true,
	}

	root.AddCommand(newServeCmd(), newGraphCmd(), newDeriveCmd())
	return root
}

// newLogger builds the process logger from LOG_LEVEL and LOG_FORMAT
func newLogger(w io.Writer, cfg *config.Config) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "wallet",
	})

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", cfg.LogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)

	if cfg.LogFormat == "json" {
		logger.SetFormatter(log.JSONFormatter)
	}

	for _, warning := range cfg.Warnings {
		logger.Warn("config", "detail", warning)
	}

	return logger
}

// setup loads the configuration and builds the logger shared by every command
func setup(cmd *cobra.Command) (*config.Config, *log.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, newLogger(cmd.ErrOrStderr(), cfg), nil
}

// connect opens the database, retrying while Postgres starts up
func connect(cfg *config.Config, logger *log.Logger) (*postgres.DB, error) {
	var lastErr error
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		db, err := postgres.NewDB(cfg.DatabaseConnString())
		if err == nil {
			return db, nil
		}
		lastErr = err
		logger.Warn("database not ready", "attempt", attempt, "err", err)
		time.Sleep(connectDelay)
	}
	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", connectAttempts, lastErr)
}
