// ABOUTME: Environment-based configuration for the coroshub CLI.
// ABOUTME: Credentials are required; endpoint and paging have defaults.

package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
)

// Config holds everything the CLI reads from the environment.
// Credentials are deliberately env-only so they never end up in shell
// history or config files.
type Config struct {
	// Email is the Training Hub account (email address or phone number).
	Email string `env:"COROS_EMAIL"`

	// Password is the account password in the clear; the API client
	// hashes it before it leaves the process.
	Password string `env:"COROS_PASSWORD"`

	// BaseURL overrides the production API endpoint, mainly for tests.
	BaseURL string `env:"COROS_BASE_URL" envDefault:"https://teamapi.coros.com"`

	// Timeout bounds each individual HTTP request.
	Timeout time.Duration `env:"COROS_TIMEOUT" envDefault:"30s"`

	// PageSize is the activity listing page size, capped at 200 by the API.
	PageSize int `env:"COROS_PAGE_SIZE" envDefault:"200"`
}

// ErrMissingCredentials is returned when COROS_EMAIL or COROS_PASSWORD
// is not set.
var ErrMissingCredentials = errors.New("COROS_EMAIL and COROS_PASSWORD must be set")

// Load parses configuration from the process environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that required settings are present and sane.
func (c *Config) Validate() error {
	if c.Email == "" || c.Password == "" {
		return ErrMissingCredentials
	}
	if c.PageSize < 1 {
		return fmt.Errorf("COROS_PAGE_SIZE must be positive, got %d", c.PageSize)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("COROS_TIMEOUT must be positive, got %s", c.Timeout)
	}
	return nil
}
