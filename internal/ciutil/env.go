package ciutil

import (
	"log/slog"
	"os"
)

// Environment variables consulted by the helpers in this package.
const (
	EnvCI            = "CI"
	EnvGitHubActions = "GITHUB_ACTIONS"
	EnvGitLabCI      = "GITLAB_CI"
	EnvJenkinsURL    = "JENKINS_URL"

	// EnvTestDBURL is the preferred name for the integration test database
	EnvTestDBURL = "LOCWORKER_TEST_DB_URL"

	// EnvDatabaseURL is the conventional fallback
	EnvDatabaseURL = "DATABASE_URL"
)

// IsCI reports whether the process runs under a known CI provider.
func IsCI() bool {
	return os.Getenv(EnvCI) != "" ||
		os.Getenv(EnvGitHubActions) != "" ||
		os.Getenv(EnvGitLabCI) != "" ||
		os.Getenv(EnvJenkinsURL) != ""
}

// GetEnvWithFallbacks returns the value of the first variable in envVars
// that is set, or defaultValue.
func GetEnvWithFallbacks(envVars []string, defaultValue string, logger *slog.Logger) string {
	for _, name := range envVars {
		if val := os.Getenv(name); val != "" {
			if logger != nil {
				logger.Debug("using environment variable", "var", name)
			}
			return val
		}
	}
	return defaultValue
}
