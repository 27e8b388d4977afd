// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the application configuration that can be loaded from a
// JSON file. All fields are optional; missing values use defaults or must be
// provided via CLI flags or environment variables.
type Config struct {
	// Connections
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	APIKey      string `json:"api_key,omitempty"`      // Model provider API key
	Provider    string `json:"provider,omitempty"`     // Model provider: gemini, openai or mock

	// Server
	Port int `json:"port,omitempty"` // HTTP listen port

	// Engine behavior
	RoadmapEvery   int  `json:"roadmap_every,omitempty"`   // Regenerate the roadmap every N responses
	ReadinessEvery int  `json:"readiness_every,omitempty"` // Refresh readiness every N responses
	Verbose        bool `json:"verbose,omitempty"`         // Print detailed debug information
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

// FromEnv builds a configuration from environment variables. Unset
// variables leave the zero value in place so file and flag values can fill
// them in.
func FromEnv() Config {
	return Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		APIKey:      firstNonEmpty(os.Getenv("LLM_API_KEY"), os.Getenv("GEMINI_API_KEY"), os.Getenv("OPENAI_API_KEY")),
		Provider:    os.Getenv("LLM_PROVIDER"),
	}
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	switch c.Provider {
	case "", "gemini", "openai", "mock":
	default:
		return fmt.Errorf("config error: 'provider' must be gemini, openai or mock, got %q", c.Provider)
	}

	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.RoadmapEvery < 0 {
		return fmt.Errorf("config error: 'roadmap_every' must be non-negative")
	}
	if c.ReadinessEvery < 0 {
		return fmt.Errorf("config error: 'readiness_every' must be non-negative")
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. This is used to apply config file values as defaults for CLI
// flags and environment variables.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.Provider == "" {
		result.Provider = defaults.Provider
	}

	// Int fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.RoadmapEvery == 0 {
		result.RoadmapEvery = defaults.RoadmapEvery
	}
	if result.ReadinessEvery == 0 {
		result.ReadinessEvery = defaults.ReadinessEvery
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
