// Package config loads environment-based configuration for the dataroom
// client.
package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all environment-based configuration for the dataroom client.
type Config struct {
	// Remote store endpoint and credential (both required).
	APIBaseURL string `env:"DATAROOM_API_URL"`
	APIToken   string `env:"DATAROOM_API_TOKEN"`

	// Path of the local state database. Defaults to
	// ~/.dataroom/state.db when empty.
	StateDBPath string `env:"DATAROOM_STATE_DB"`

	// Environment controls log format
	Environment string `env:"ENVIRONMENT" envDefault:"development"`

	// How long the upload success notice stays visible.
	UploadNoticeDelay time.Duration `env:"DATAROOM_UPLOAD_NOTICE_DELAY" envDefault:"3s"`

	// Per-request timeout for remote store calls.
	RequestTimeout time.Duration `env:"DATAROOM_REQUEST_TIMEOUT" envDefault:"30s"`
}

// warnInsecureEnvFile checks whether the .env file (if present) has
// overly permissive permissions. On Unix systems, group or world
// readable files risk exposing the API token to other users.
func warnInsecureEnvFile() {
	if runtime.GOOS == "windows" {
		return
	}

	info, err := os.Stat(".env")
	if err != nil {
		return // file does not exist, nothing to check
	}

	mode := info.Mode().Perm()
	if mode&0o077 != 0 {
		log.Printf("WARNING: .env file has insecure permissions %04o; recommended 0600", mode)
	}
}

// Load reads configuration from environment variables.
// It first attempts to load a .env file if present, then parses env vars.
func Load() (*Config, error) {
	_ = godotenv.Load()

	warnInsecureEnvFile()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.StateDBPath == "" {
		path, err := defaultStateDBPath()
		if err != nil {
			return nil, err
		}

		cfg.StateDBPath = path
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("DATAROOM_API_URL is required")
	}

	if c.APIToken == "" {
		return fmt.Errorf("DATAROOM_API_TOKEN is required")
	}

	if c.RequestTimeout <= 0 {
		return fmt.Errorf("DATAROOM_REQUEST_TIMEOUT must be positive")
	}

	return nil
}

func defaultStateDBPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("determining home directory: %w", err)
	}

	return filepath.Join(home, ".dataroom", "state.db"), nil
}

// IsProduction returns true when the environment is set to production.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
