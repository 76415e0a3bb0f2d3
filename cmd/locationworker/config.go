package main

import (
	"fmt"
	"log/slog"

	"github.com/screenomics/locationworker/internal/config"
)

// loadAppConfig loads the configuration from environment variables and the
// given config file, or ./config.yaml when path is empty.
func loadAppConfig(path string) (*config.Config, error) {
	cfg, err := config.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	slog.Debug("configuration loaded",
		"port", cfg.Server.Port,
		"worker", cfg.Worker.Name,
		"permission_source", cfg.Permission.Source,
		"location_provider", cfg.Location.Provider,
		"database_url_present", cfg.Database.URL != "",
		"jwt_secret_present", cfg.Auth.JWTSecret != "")

	return cfg, nil
}
