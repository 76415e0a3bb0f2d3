package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/screenomics/locationworker/internal/config"
	"github.com/screenomics/locationworker/internal/platform/logger"
)

// setupAppLogger configures the application logger from config settings.
func setupAppLogger(cfg *config.Config, out io.Writer) (*slog.Logger, error) {
	l, err := logger.Setup(logger.LoggerConfig{
		Level:  cfg.Server.LogLevel,
		Output: out,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}
	return l, nil
}
