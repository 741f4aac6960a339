// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Default values applied by Defaults.
const (
	DefaultPort        = 8080
	DefaultBrandName   = "Leadership Compass"
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "auto"
	DefaultConcurrency = 4
)

// Config represents the configuration that can be loaded from a JSON file.
// All fields are optional; missing values come from the environment or defaults.
type Config struct {
	// Server
	Port           int    `json:"port,omitempty"`            // HTTP listen port
	AllowedOrigins string `json:"allowed_origins,omitempty"` // Comma-separated CORS origins, "*" for any

	// Report
	BrandName string `json:"brand_name,omitempty"` // Printed in headers and footers
	CallURL   string `json:"call_url,omitempty"`   // Booking link on the last page

	// Behavior
	APIKey      string `json:"api_key,omitempty"`      // Gemini API key
	Model       string `json:"model,omitempty"`        // Overrides the advanced-tier model
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	LogLevel    string `json:"log_level,omitempty"`    // debug, info, warn, error
	LogFormat   string `json:"log_format,omitempty"`   // json, console, auto
	Concurrency int    `json:"concurrency,omitempty"`  // Parallel renders for batch runs
	Verbose     bool   `json:"verbose,omitempty"`      // Print detailed debug information

	RateLimit RateLimit `json:"-"` // filled by Load from the environment
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

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Port:        DefaultPort,
		BrandName:   DefaultBrandName,
		LogLevel:    DefaultLogLevel,
		LogFormat:   DefaultLogFormat,
		Concurrency: DefaultConcurrency,
	}
}

// FromEnv reads the environment fallbacks. Unset variables leave fields empty.
func FromEnv() Config {
	cfg := Config{
		APIKey:         os.Getenv("GEMINI_API_KEY"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		LogLevel:       os.Getenv("LOG_LEVEL"),
		LogFormat:      os.Getenv("LOG_FORMAT"),
		AllowedOrigins: os.Getenv("ALLOWED_ORIGINS"),
		CallURL:        os.Getenv("CALL_URL"),
	}
	if port, err := strconv.Atoi(os.Getenv("PORT")); err == nil {
		cfg.Port = port
	}
	return cfg
}

// Load resolves the effective configuration: the optional file at path,
// then environment fallbacks, then defaults. The result is validated.
func Load(path string) (Config, error) {
	var cfg Config
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return Config{}, err
		}
		cfg = *loaded
	}
	cfg = cfg.MergeWithDefaults(FromEnv())
	cfg = cfg.MergeWithDefaults(Defaults())
	cfg.RateLimit = RateLimitFromEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("config error: 'concurrency' must be non-negative")
	}

	switch strings.ToLower(c.LogFormat) {
	case "", "json", "console", "auto":
	default:
		return fmt.Errorf("config error: unknown 'log_format' %q", c.LogFormat)
	}

	if c.CallURL != "" {
		u, err := url.Parse(c.CallURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("config error: 'call_url' must be an absolute http(s) URL")
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.AllowedOrigins == "" {
		result.AllowedOrigins = defaults.AllowedOrigins
	}
	if result.BrandName == "" {
		result.BrandName = defaults.BrandName
	}
	if result.CallURL == "" {
		result.CallURL = defaults.CallURL
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}

	// Int fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.Concurrency == 0 {
		result.Concurrency = defaults.Concurrency
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// Origins splits AllowedOrigins into trimmed, non-empty entries.
func (c *Config) Origins() []string {
	return splitList(c.AllowedOrigins)
}
