// Package config provides configuration for the tabula demo binary. Settings
// come from environment variables, with a .env file loaded first when
// present, and fall back to sensible defaults.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all demo settings.
type Config struct {
	// Source is the CSV path or URL of the dataset (TABULA_SOURCE).
	Source string
	// DBPath is the SQLite database file for persisted frames (TABULA_DB).
	DBPath string
	// LogLevel selects the zap level: debug, info, warn or error (TABULA_LOG_LEVEL).
	LogLevel string
}

// Load reads configuration from the environment. A missing .env file is not
// an error; a malformed one is.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	cfg := &Config{
		Source:   envOr("TABULA_SOURCE", "testdata/gapminder.csv"),
		DBPath:   envOr("TABULA_DB", "tabula.db"),
		LogLevel: envOr("TABULA_LOG_LEVEL", "info"),
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid TABULA_LOG_LEVEL %q", cfg.LogLevel)
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
