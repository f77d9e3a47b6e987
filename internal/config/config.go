// Package config provides configuration loading and validation for the CLI and API server.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"
)

// Default endpoints match the local development setup: the profile API on :5000 and the
// resume parsing service on :5002.
const (
	DefaultProfileAPIURL = "http://localhost:5000/api/profile"
	DefaultAutofillURL   = "http://localhost:5002/api/auto-fill-resume"
	DefaultPort          = 5000
	DefaultTimeout       = 60 * time.Second
)

// Config represents the configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Endpoints
	ProfileAPIURL string `json:"profile_api_url,omitempty"` // POST target for finished profiles
	AutofillURL   string `json:"autofill_url,omitempty"`    // Resume parsing service

	// Server
	Port        int    `json:"port,omitempty"`         // API server listen port
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	CORSOrigin  string `json:"cors_origin,omitempty"`  // Access-Control-Allow-Origin value

	// Behavior
	TimeoutSeconds int  `json:"timeout_seconds,omitempty"` // HTTP client timeout
	Verbose        bool `json:"verbose,omitempty"`         // Development logging
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		ProfileAPIURL:  DefaultProfileAPIURL,
		AutofillURL:    DefaultAutofillURL,
		Port:           DefaultPort,
		CORSOrigin:     "*",
		TimeoutSeconds: int(DefaultTimeout / time.Second),
	}
}

// FromEnv returns a Config populated from PROFILE_API_URL, AUTOFILL_URL and DATABASE_URL.
// Unset variables leave fields empty so they can be merged with other sources.
func FromEnv() Config {
	return Config{
		ProfileAPIURL: os.Getenv("PROFILE_API_URL"),
		AutofillURL:   os.Getenv("AUTOFILL_URL"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		CORSOrigin:    os.Getenv("CORS_ORIGIN"),
	}
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
// Empty fields are accepted; they are filled by MergeWithDefaults.
func (c *Config) Validate() error {
	for name, raw := range map[string]string{
		"profile_api_url": c.ProfileAPIURL,
		"autofill_url":    c.AutofillURL,
	} {
		if raw == "" {
			continue
		}
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("config error: '%s' must be an absolute http(s) URL, got %q", name, raw)
		}
	}

	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' out of range: %d", c.Port)
	}
	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'timeout_seconds' must be non-negative")
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to layer flags over env over the config file over built-in defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.ProfileAPIURL == "" {
		result.ProfileAPIURL = defaults.ProfileAPIURL
	}
	if result.AutofillURL == "" {
		result.AutofillURL = defaults.AutofillURL
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.CORSOrigin == "" {
		result.CORSOrigin = defaults.CORSOrigin
	}

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.TimeoutSeconds == 0 {
		result.TimeoutSeconds = defaults.TimeoutSeconds
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// Timeout returns the HTTP client timeout, falling back to DefaultTimeout.
func (c *Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return DefaultTimeout
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}
