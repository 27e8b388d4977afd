package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	// Create temp config file
	content := `{
		"database_url": "postgres://localhost:5432/interview_prep",
		"provider": "gemini",
		"port": 8080,
		"roadmap_every": 3,
		"verbose": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "postgres://localhost:5432/interview_prep", cfg.DatabaseURL)
	assert.Equal(t, "gemini", cfg.Provider)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 3, cfg.RoadmapEvery)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	content := `{ invalid json }`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestValidate_UnknownProvider(t *testing.T) {
	cfg := &Config{
		Provider: "claude",
	}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "provider")
}

func TestValidate_NegativeValues(t *testing.T) {
	cfg := &Config{
		RoadmapEvery: -1,
	}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "roadmap_every")
}

func TestValidate_PortRange(t *testing.T) {
	cfg := &Config{
		Port: 70000,
	}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "port")
}

func TestValidate_ValidConfig(t *testing.T) {
	cfg := &Config{
		Provider:       "mock",
		Port:           8080,
		RoadmapEvery:   5,
		ReadinessEvery: 3,
	}

	err := cfg.Validate()
	assert.NoError(t, err)
}

func TestMergeWithDefaults(t *testing.T) {
	defaults := Config{
		DatabaseURL:  "postgres://localhost:5432/default",
		Provider:     "gemini",
		Port:         8080,
		RoadmapEvery: 5,
	}

	partial := Config{
		Provider: "openai",
		APIKey:   "sk-custom",
	}

	merged := partial.MergeWithDefaults(defaults)

	// Custom values should be preserved
	assert.Equal(t, "openai", merged.Provider)
	assert.Equal(t, "sk-custom", merged.APIKey)

	// Default values should fill in empty fields
	assert.Equal(t, "postgres://localhost:5432/default", merged.DatabaseURL)
	assert.Equal(t, 8080, merged.Port)
	assert.Equal(t, 5, merged.RoadmapEvery)
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := Config{
		Provider: "mock",
		Port:     9090,
	}

	merged := cfg.MergeWithDefaults(Config{})

	assert.Equal(t, "mock", merged.Provider)
	assert.Equal(t, 9090, merged.Port)
}

func TestFromEnv_APIKeyPrecedence(t *testing.T) {
	t.Setenv("LLM_API_KEY", "primary")
	t.Setenv("GEMINI_API_KEY", "gemini-key")
	t.Setenv("OPENAI_API_KEY", "openai-key")

	cfg := FromEnv()
	assert.Equal(t, "primary", cfg.APIKey)

	t.Setenv("LLM_API_KEY", "")
	cfg = FromEnv()
	assert.Equal(t, "gemini-key", cfg.APIKey)
}
