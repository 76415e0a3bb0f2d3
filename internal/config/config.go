package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"     validate:"required"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Worker     WorkerConfig     `mapstructure:"worker"     validate:"required"`
	Location   LocationConfig   `mapstructure:"location"   validate:"required"`
	Permission PermissionConfig `mapstructure:"permission" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
// The database is only needed when permission grants are read from Postgres.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"omitempty,url"`
}

// AuthConfig contains the settings for authenticating scheduler calls to the
// HTTP trigger. An empty secret leaves the /api routes unauthenticated.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret" validate:"omitempty,min=32"`

	// TokenLifetimeMinutes is the lifetime of tokens minted with the -token flag
	TokenLifetimeMinutes int `mapstructure:"token_lifetime_minutes" validate:"gt=0,lt=525600"`
}

// WorkerConfig describes how the location task is registered with the scheduler.
type WorkerConfig struct {
	// Name is the process-wide unique registration name
	Name string `mapstructure:"name" validate:"required"`

	// Interval between invocations
	Interval time.Duration `mapstructure:"interval" validate:"gt=0"`

	// InitialDelay before the first invocation
	InitialDelay time.Duration `mapstructure:"initial_delay" validate:"gte=0"`

	// Policy applied when the name is already registered: keep or replace
	Policy string `mapstructure:"policy" validate:"required,oneof=keep replace"`

	WorkerCount int `mapstructure:"worker_count" validate:"gt=0"`
	QueueSize   int `mapstructure:"queue_size"   validate:"gt=0"`

	// OnceGracePeriod is how long a single -once invocation waits for the
	// asynchronous sample to be emitted before the process exits
	OnceGracePeriod time.Duration `mapstructure:"once_grace_period" validate:"gte=0"`
}

// LocationConfig selects and configures the positioning provider.
type LocationConfig struct {
	Priority string `mapstructure:"priority" validate:"required,oneof=high_accuracy balanced low_power passive"`
	Provider string `mapstructure:"provider" validate:"required,oneof=static http"`

	// Static provider settings. HasFix=false simulates "no fix available".
	HasFix    bool    `mapstructure:"has_fix"`
	Latitude  float64 `mapstructure:"latitude"  validate:"gte=-90,lte=90"`
	Longitude float64 `mapstructure:"longitude" validate:"gte=-180,lte=180"`

	// HTTP provider settings
	HTTPEndpoint string        `mapstructure:"http_endpoint" validate:"omitempty,url"`
	Timeout      time.Duration `mapstructure:"timeout"       validate:"gt=0"`
}

// PermissionConfig selects where the coarse-location grant is read from.
type PermissionConfig struct {
	Source        string        `mapstructure:"source"         validate:"required,oneof=static postgres"`
	Granted       bool          `mapstructure:"granted"`
	LookupTimeout time.Duration `mapstructure:"lookup_timeout" validate:"gt=0"`
}
