package client

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/docker/go-units"
)

// Default values applied by Finalize.
const (
	DefaultBaseURL = "http://localhost:8080/api"
	DefaultTimeout = "10s"
)

// Config contains request client configuration.
type Config struct {
	BaseURL string `toml:"base_url"`
	Timeout string `toml:"timeout"`

	// MaxResponseSize bounds response bodies (e.g. "10MB").
	// Empty means unlimited.
	MaxResponseSize    string `toml:"max_response_size"`
	maxResponseSizeVal int64
}

// Env maps environment variable names for client configuration.
type Env struct {
	BaseURL         string
	Timeout         string
	MaxResponseSize string
}

// TimeoutDuration parses and returns the request timeout as a time.Duration.
func (c *Config) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// MaxResponseSizeBytes returns the parsed response size limit. Zero means unlimited.
func (c *Config) MaxResponseSizeBytes() int64 {
	return c.maxResponseSizeVal
}

// Finalize applies defaults, loads environment overrides, and validates the configuration.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *Config) Merge(overlay *Config) {
	if overlay.BaseURL != "" {
		c.BaseURL = overlay.BaseURL
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
	if overlay.MaxResponseSize != "" {
		c.MaxResponseSize = overlay.MaxResponseSize
	}
}

func (c *Config) loadDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Timeout == "" {
		c.Timeout = DefaultTimeout
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.BaseURL != "" {
		if v := os.Getenv(env.BaseURL); v != "" {
			c.BaseURL = v
		}
	}
	if env.Timeout != "" {
		if v := os.Getenv(env.Timeout); v != "" {
			c.Timeout = v
		}
	}
	if env.MaxResponseSize != "" {
		if v := os.Getenv(env.MaxResponseSize); v != "" {
			c.MaxResponseSize = v
		}
	}
}

func (c *Config) validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base_url: %w", err)
	}
	if !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("invalid base_url: %s (must be absolute)", c.BaseURL)
	}

	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	if d <= 0 {
		return fmt.Errorf("timeout must be positive")
	}

	c.maxResponseSizeVal = 0
	if c.MaxResponseSize != "" {
		size, err := units.FromHumanSize(c.MaxResponseSize)
		if err != nil {
			return fmt.Errorf("invalid max_response_size: %w", err)
		}
		if size <= 0 {
			return fmt.Errorf("max_response_size must be positive")
		}
		c.maxResponseSizeVal = size
	}

	return nil
}
