// Package config provides configuration loading and validation for the CLI and the server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/majel/internal/types"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Inputs
	Bundle       string `json:"bundle,omitempty"`       // Path to effect bundle (JSON or YAML)
	Roster       string `json:"roster,omitempty"`       // Path to roster (JSON or CSV)
	Reservations string `json:"reservations,omitempty"` // Path to reservations (JSON or YAML)
	DatabaseURL  string `json:"database_url,omitempty"` // PostgreSQL connection URL, used instead of files

	// Request
	Intent  string `json:"intent,omitempty"`  // Planning intent key
	Captain string `json:"captain,omitempty"` // Preferred captain id
	Limit   int    `json:"limit,omitempty"`   // Maximum number of trios

	// Output
	Out     string `json:"out,omitempty"`     // Output file for JSON results
	Verbose bool   `json:"verbose,omitempty"` // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.Limit < 0 {
		return fmt.Errorf("config error: 'limit' must be non-negative")
	}
	if c.Limit > types.MaxRecommendationLimit {
		return fmt.Errorf("config error: 'limit' must be at most %d", types.MaxRecommendationLimit)
	}

	// Database and files are mutually exclusive sources for the catalog
	if c.DatabaseURL != "" && c.Bundle != "" {
		return fmt.Errorf("config error: 'database_url' and 'bundle' are mutually exclusive")
	}

	// Validate file paths exist (if specified)
	for name, path := range map[string]string{
		"bundle":       c.Bundle,
		"roster":       c.Roster,
		"reservations": c.Reservations,
	} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return fmt.Errorf("config error: %s file not found: %s", name, path)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Bundle == "" {
		result.Bundle = defaults.Bundle
	}
	if result.Roster == "" {
		result.Roster = defaults.Roster
	}
	if result.Reservations == "" {
		result.Reservations = defaults.Reservations
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.Intent == "" {
		result.Intent = defaults.Intent
	}
	if result.Captain == "" {
		result.Captain = defaults.Captain
	}
	if result.Out == "" {
		result.Out = defaults.Out
	}

	// Int fields: use default if zero
	if result.Limit == 0 {
		result.Limit = defaults.Limit
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
