package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// ServerConfig is read from the environment by the serve command.
type ServerConfig struct {
	Port             int           `env:"MAJEL_PORT"              envDefault:"8080"`
	DatabaseURL      string        `env:"DATABASE_URL"`
	BundlePath       string        `env:"MAJEL_BUNDLE_PATH"`
	RosterPath       string        `env:"MAJEL_ROSTER_PATH"`
	ReservationsPath string        `env:"MAJEL_RESERVATIONS_PATH"`
	DefaultLimit     int           `env:"MAJEL_DEFAULT_LIMIT"     envDefault:"10"`
	LogLevel         string        `env:"MAJEL_LOG_LEVEL"         envDefault:"info"`
	ShutdownTimeout  time.Duration `env:"MAJEL_SHUTDOWN_TIMEOUT"  envDefault:"30s"`
	CORSOrigins      []string      `env:"MAJEL_CORS_ORIGINS"      envSeparator:"," envDefault:"*"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadServerConfig parses and validates the server environment.
func LoadServerConfig() (*ServerConfig, error) {
	var cfg ServerConfig
	if err := ParseEnv(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks ranges and that a catalog source is configured.
func (c *ServerConfig) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config error: MAJEL_PORT must be between 1 and 65535, got %d", c.Port)
	}
	if c.DefaultLimit <= 0 {
		return fmt.Errorf("config error: MAJEL_DEFAULT_LIMIT must be positive, got %d", c.DefaultLimit)
	}
	if c.DatabaseURL == "" && c.BundlePath == "" {
		return fmt.Errorf("config error: one of DATABASE_URL or MAJEL_BUNDLE_PATH is required")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config error: MAJEL_LOG_LEVEL must be debug, info, warn or error, got %q", c.LogLevel)
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
