package config

import "time"

// Config holds all configuration for a test bootstrap that drives the fixture.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Fixture  FixtureConfig  `mapstructure:"fixture" validate:"required"`
	Log      LogConfig      `mapstructure:"log" validate:"required"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
	// Driver is derived from the URL scheme when left empty.
	Driver       string `mapstructure:"driver" validate:"required,oneof=pgx sqlite"`
	MaxOpenConns int    `mapstructure:"max_open_conns" validate:"gte=0"`
	// MigrationsDir is optional; when set, the bootstrap applies goose migrations from it.
	MigrationsDir string `mapstructure:"migrations_dir"`
}

// FixtureConfig contains the settings of the transactional test fixture.
type FixtureConfig struct {
	Dialect             string        `mapstructure:"dialect" validate:"required,oneof=postgres sqlite mysql"`
	QueryTimeout        time.Duration `mapstructure:"query_timeout" validate:"gt=0"`
	ValidateIdentifiers bool          `mapstructure:"validate_identifiers"`
	IsolationLevel      string        `mapstructure:"isolation_level" validate:"required,oneof=default read_committed repeatable_read serializable"`
	ReadOnly            bool          `mapstructure:"read_only"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=json ci"`
}
