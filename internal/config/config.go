// Package config loads the service configuration from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds everything the proxy server needs. The API key stays
// server-side only; it is never echoed back to clients.
type Config struct {
	APIKey       string `env:"API_KEY"`
	Port         int    `env:"PORT" envDefault:"8080"`
	Model        string `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash"`
	DataDir      string `env:"DATA_DIR" envDefault:"./data"`
	StoreBackend string `env:"STORE_BACKEND" envDefault:"file"`
	JobsAPIURL   string `env:"JOBS_API_URL" envDefault:"https://brainyscout.com"`
	ProxyURL     string `env:"PROXY_URL" envDefault:"http://localhost:8080/api/generate"`
}

// Load parses the environment and validates the result.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the configuration has valid values. A missing API key
// is allowed; the generate endpoint reports it per-request instead.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config error: PORT must be between 1 and 65535, got %d", c.Port)
	}
	if c.StoreBackend != "file" && c.StoreBackend != "sqlite" {
		return fmt.Errorf("config error: STORE_BACKEND must be 'file' or 'sqlite', got %q", c.StoreBackend)
	}
	if c.Model == "" {
		return fmt.Errorf("config error: GEMINI_MODEL must not be empty")
	}
	return nil
}
