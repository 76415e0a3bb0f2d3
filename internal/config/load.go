package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable read by Load.
const EnvPrefix = "LOCWORKER"

// ErrInvalidConfig wraps every validation failure returned by Load.
var ErrInvalidConfig = errors.New("config validation failed")

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")

	v.SetDefault("database.url", "")
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_lifetime_minutes", 60)

	v.SetDefault("worker.name", "ScreenomicsLocationWorker")
	v.SetDefault("worker.interval", 15*time.Minute)
	v.SetDefault("worker.initial_delay", time.Minute)
	v.SetDefault("worker.policy", "keep")
	v.SetDefault("worker.worker_count", 1)
	v.SetDefault("worker.queue_size", 10)
	v.SetDefault("worker.once_grace_period", 10*time.Second)

	v.SetDefault("location.priority", "balanced")
	v.SetDefault("location.provider", "static")
	v.SetDefault("location.has_fix", false)
	v.SetDefault("location.latitude", 0.0)
	v.SetDefault("location.longitude", 0.0)
	v.SetDefault("location.http_endpoint", "")
	v.SetDefault("location.timeout", 30*time.Second)

	v.SetDefault("permission.source", "static")
	v.SetDefault("permission.granted", false)
	v.SetDefault("permission.lookup_timeout", 2*time.Second)
}

// Load configuration from environment variables and optionally a config file.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile behaves like Load but reads the given config file instead of
// searching for config.yaml in the working directory. An empty path searches.
func LoadFile(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate runs struct validation plus the rules that span config groups.
func Validate(cfg *Config) error {
	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if cfg.Permission.Source == "postgres" && cfg.Database.URL == "" {
		return fmt.Errorf("%w: database.url is required when permission.source is postgres", ErrInvalidConfig)
	}

	if cfg.Location.Provider == "http" && cfg.Location.HTTPEndpoint == "" {
		return fmt.Errorf("%w: location.http_endpoint is required when location.provider is http", ErrInvalidConfig)
	}

	return nil
}
