package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of every environment variable read by Load.
const EnvPrefix = "DBFIXTURE"

// EnvConfigFile names an optional config file (yaml, toml or json).
const EnvConfigFile = "DBFIXTURE_CONFIG_FILE"

// Load configuration from environment variables and optionally a config file.
// Environment variables take precedence over values from the config file.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	// DBFIXTURE_DATABASE_URL -> database.url
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only resolves keys viper already knows about, so every key
	// that has no default must be bound explicitly for Unmarshal to see it.
	for _, key := range []string{"database.url", "database.driver", "database.migrations_dir", "fixture.dialect"} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable for %s: %w", key, err)
		}
	}

	if path := v.GetString("config_file"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Database.Driver == "" {
		cfg.Database.Driver = DriverForURL(cfg.Database.URL)
	}
	if cfg.Fixture.Dialect == "" {
		cfg.Fixture.Dialect = dialectForDriver(cfg.Database.Driver)
	}

	if err := validator.New().Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return nil, fmt.Errorf("config validation failed: %w", verrs)
		}
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("config_file", "")
	v.SetDefault("database.max_open_conns", 0)
	v.SetDefault("fixture.query_timeout", "5s")
	v.SetDefault("fixture.validate_identifiers", true)
	v.SetDefault("fixture.isolation_level", "default")
	v.SetDefault("fixture.read_only", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// DriverForURL returns the database/sql driver name for a connection URL:
// "pgx" for postgres URLs, "sqlite" for sqlite, file and in-memory URLs.
// It returns "" when the scheme is not recognized.
func DriverForURL(url string) string {
	switch {
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return "pgx"
	case strings.HasPrefix(url, "sqlite://"), strings.HasPrefix(url, "file:"), url == ":memory:":
		return "sqlite"
	default:
		return ""
	}
}

// dialectForDriver picks the SQL dialect when none is configured.
func dialectForDriver(driver string) string {
	if driver == "sqlite" {
		return "sqlite"
	}
	return "postgres"
}
