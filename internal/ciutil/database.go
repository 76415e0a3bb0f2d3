package ciutil

import (
	"log/slog"
	"net/url"

	"github.com/screenomics/locationworker/internal/redact"
)

// CI services expose postgres with these credentials.
const (
	StandardCIUser     = "postgres"
	StandardCIPassword = "postgres"
)

// GetTestDatabaseURL returns the database URL for integration tests, or ""
// when none is configured. LOCWORKER_TEST_DB_URL takes precedence over
// DATABASE_URL. Under CI the credentials are replaced with the standard
// service credentials.
func GetTestDatabaseURL(logger *slog.Logger) string {
	dbURL := GetEnvWithFallbacks([]string{EnvTestDBURL, EnvDatabaseURL}, "", logger)
	if dbURL == "" {
		return ""
	}

	if !IsCI() {
		return dbURL
	}

	standardized, err := standardizeDatabaseURL(dbURL)
	if err != nil {
		if logger != nil {
			logger.Warn("could not standardize database URL",
				"url", redact.String(dbURL),
				"error", err)
		}
		return dbURL
	}
	return standardized
}

func standardizeDatabaseURL(dbURL string) (string, error) {
	u, err := url.Parse(dbURL)
	if err != nil {
		return "", err
	}
	u.User = url.UserPassword(StandardCIUser, StandardCIPassword)
	return u.String(), nil
}
