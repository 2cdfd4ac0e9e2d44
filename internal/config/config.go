// Package config loads the registrar credentials and endpoint selection from
// the environment, once, at startup. A .env file in the working directory is
// honored but never overrides real environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	APIKey    string        `env:"GODADDY_API_KEY"`
	APISecret string        `env:"GODADDY_API_SECRET"`
	BaseURL   string        `env:"GODADDY_API_URL" envDefault:"https://api.godaddy.com"`
	Sandbox   bool          `env:"GODADDY_SANDBOX" envDefault:"false"`
	Timeout   time.Duration `env:"GODADDY_TIMEOUT" envDefault:"30s"`
}

// Load parses the environment into a Config. Missing credentials are a fatal
// startup condition reported to the caller; nothing prompts for them.
func Load() (Config, error) {
	// Best effort: absence of a .env file is not an error.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}

	if cfg.APIKey == "" || cfg.APISecret == "" {
		return Config{}, fmt.Errorf("config: missing registrar credentials (set GODADDY_API_KEY and GODADDY_API_SECRET)")
	}

	// The sandbox switch only applies when no explicit URL was given.
	if cfg.Sandbox && cfg.BaseURL == "https://api.godaddy.com" {
		cfg.BaseURL = "https://api.ote-godaddy.com"
	}

	return cfg, nil
}
