package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/screenomics/locationworker/internal/config"
	"github.com/screenomics/locationworker/internal/redact"
)

// setupAppDatabase opens and pings the Postgres database.
func setupAppDatabase(cfg *config.Config, logger *slog.Logger) (*sql.DB, error) {
	if cfg.Database.URL == "" {
		return nil, errors.New("database.url is not configured")
	}

	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %s", redact.Error(err))
	}

	logger.Info("database connection established")
	return db, nil
}

// openDatabaseIfNeeded connects only when grants are read from Postgres.
func openDatabaseIfNeeded(cfg *config.Config, logger *slog.Logger) (*sql.DB, error) {
	if cfg.Permission.Source != permissionSourcePostgres {
		return nil, nil
	}
	return setupAppDatabase(cfg, logger)
}
