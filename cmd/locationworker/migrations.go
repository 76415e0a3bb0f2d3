package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/screenomics/locationworker/internal/config"
	"github.com/screenomics/locationworker/internal/platform/postgres"
)

// slogGooseLogger adapts the goose logger interface to slog
type slogGooseLogger struct {
	logger *slog.Logger
}

// Printf forwards goose progress messages at INFO level
func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, v...))
}

// Fatalf forwards goose errors at ERROR level. It does not exit; the error
// is returned to main.
func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, v...))
}

// runMigrations executes a goose command against the configured database
// using the migrations embedded in the postgres package.
func runMigrations(ctx context.Context, cfg *config.Config, command string, logger *slog.Logger) error {
	log := logger.With(
		"correlation_id", uuid.New().String(),
		"component", "migrations",
		"command", command,
	)
	start := time.Now()

	if err := postgres.ConfigureGoose(&slogGooseLogger{logger: log}); err != nil {
		return err
	}

	db, err := setupAppDatabase(cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("error closing database connection", "error", err)
		}
	}()

	if err := postgres.Migrate(ctx, db, command); err != nil {
		return err
	}

	log.Info("migration command executed successfully",
		"duration_ms", time.Since(start).Milliseconds())
	return nil
}
