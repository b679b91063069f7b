package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Config holds the configuration for the journal service.
// Environment variables are parsed from the JOURNAL_BACKEND_ prefix.
type Config struct {
	// Store driver: memory (default, fixture-backed), sqlite, postgres.
	StoreDriver string `envconfig:"STORE_DRIVER" default:"memory"`

	// SQLite file path; derived from the state dir when empty.
	SQLitePath string `envconfig:"SQLITE_PATH" default:""`

	// Postgres DSN, required when STORE_DRIVER=postgres.
	PostgresDSN string `envconfig:"POSTGRES_DSN" default:""`

	// HTTP Configuration
	HTTPPort int `envconfig:"HTTP_PORT" default:"8080"`

	// SeedFixtures loads the demo dataset at startup.
	SeedFixtures bool `envconfig:"SEED_FIXTURES" default:"true"`

	// Health checking
	HealthIntervalSeconds     int `envconfig:"HEALTH_INTERVAL_SECONDS" default:"30"`
	HealthProbeTimeoutSeconds int `envconfig:"HEALTH_PROBE_TIMEOUT_SECONDS" default:"2"`
}

// ResolveDefaults validates the store driver and its required settings.
func (c *Config) ResolveDefaults() error {
	switch c.StoreDriver {
	case "memory", "sqlite":
	case "postgres":
		if c.PostgresDSN == "" {
			return fmt.Errorf("STORE_DRIVER=postgres requires POSTGRES_DSN")
		}
	default:
		return fmt.Errorf("unsupported STORE_DRIVER: %s", c.StoreDriver)
	}
	return nil
}

// New creates a Config by parsing environment variables.
// Example: JOURNAL_BACKEND_HTTP_PORT, JOURNAL_BACKEND_STORE_DRIVER.
func New() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("JOURNAL_BACKEND", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}

	log.Info().
		Str("store_driver", cfg.StoreDriver).
		Int("port", cfg.HTTPPort).
		Bool("seed_fixtures", cfg.SeedFixtures).
		Str("postgres_dsn_present", func() string {
			if cfg.PostgresDSN != "" {
				return "true"
			}
			return "false"
		}()).
		Msg("Configuration loaded")

	return &cfg, nil
}

// GetHTTPAddr returns the HTTP server address.
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}
