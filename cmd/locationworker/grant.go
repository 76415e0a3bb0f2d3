package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/screenomics/locationworker/internal/config"
	"github.com/screenomics/locationworker/internal/permission"
	"github.com/screenomics/locationworker/internal/platform/postgres"
	"github.com/screenomics/locationworker/internal/service/auth"
)

// runGrant records the coarse-location grant, standing in for the consent
// flow that normally owns this write.
func runGrant(ctx context.Context, cfg *config.Config, granted bool, logger *slog.Logger) error {
	db, err := setupAppDatabase(cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	store := postgres.NewPostgresGrantStore(db, logger)
	previous, err := store.Set(ctx, permission.CoarseLocation, granted)
	if err != nil {
		return fmt.Errorf("failed to record %s grant: %w", permission.CoarseLocation, err)
	}

	logger.Info("grant updated",
		"capability", permission.CoarseLocation,
		"granted", granted,
		"previous", previous)
	return nil
}

// mintToken signs a trigger token for subject with the configured secret.
func mintToken(ctx context.Context, cfg *config.Config, subject string) (string, error) {
	svc, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return "", fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	return svc.GenerateToken(ctx, subject)
}
