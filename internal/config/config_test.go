package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pointConfigAt isolates tests from any real user config file
func pointConfigAt(t *testing.T, path string) {
	t.Helper()
	t.Setenv("NOTIONCTL_CONFIG", path)
}

func TestLoadConfigDefaults(t *testing.T) {
	pointConfigAt(t, filepath.Join(t.TempDir(), "missing.json"))

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "https://api.notion.com/v1", cfg.API.BaseURL)
	assert.Equal(t, "2025-09-03", cfg.API.Version)
	assert.Equal(t, "30s", cfg.API.Timeout)
	assert.Equal(t, 100, cfg.API.PageSize)
	assert.Equal(t, 3, cfg.Retry.MaxAttempts)
	assert.Equal(t, "1s", cfg.Retry.BaseDelay)
	assert.True(t, cfg.Retry.Jitter)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "table", cfg.Output.Format)
	assert.True(t, cfg.Output.Spinner)
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	pointConfigAt(t, filepath.Join(t.TempDir(), "missing.json"))
	t.Setenv("NOTIONCTL_TOKEN", "secret-token")
	t.Setenv("NOTIONCTL_PAGE_SIZE", "25")
	t.Setenv("NOTIONCTL_LOG_LEVEL", "debug")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "secret-token", cfg.API.Token)
	assert.Equal(t, 25, cfg.API.PageSize)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	pointConfigAt(t, path)

	fileConfig := map[string]interface{}{
		"api":    map[string]interface{}{"page_size": 10},
		"output": map[string]interface{}{"format": "long"},
	}

	data, err := json.Marshal(fileConfig)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0600))

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.API.PageSize)
	assert.Equal(t, "long", cfg.Output.Format)

	// Unset fields still get their defaults
	assert.Equal(t, "https://api.notion.com/v1", cfg.API.BaseURL)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	pointConfigAt(t, path)

	require.NoError(t, os.WriteFile(path, []byte(`{"api":{"page_size":10}}`), 0600))
	t.Setenv("NOTIONCTL_PAGE_SIZE", "50")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 50, cfg.API.PageSize)
}

func TestLoadConfigWithOverrides(t *testing.T) {
	pointConfigAt(t, filepath.Join(t.TempDir(), "missing.json"))

	cfg, err := LoadConfigWithOverrides(map[string]interface{}{
		"token":     "flag-token",
		"format":    "json",
		"log-level": "debug",
	})
	require.NoError(t, err)

	assert.Equal(t, "flag-token", cfg.API.Token)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestFlagOverridesIgnoreEmptyValues(t *testing.T) {
	pointConfigAt(t, filepath.Join(t.TempDir(), "missing.json"))
	t.Setenv("NOTIONCTL_TOKEN", "env-token")

	cfg, err := LoadConfigWithOverrides(map[string]interface{}{"token": ""})
	require.NoError(t, err)

	assert.Equal(t, "env-token", cfg.API.Token)
}

func TestValidateConfig(t *testing.T) {
	pointConfigAt(t, filepath.Join(t.TempDir(), "missing.json"))

	tests := []struct {
		name   string
		envKey string
		envVal string
	}{
		{name: "bad log level", envKey: "NOTIONCTL_LOG_LEVEL", envVal: "loud"},
		{name: "bad log format", envKey: "NOTIONCTL_LOG_FORMAT", envVal: "xml"},
		{name: "bad log output", envKey: "NOTIONCTL_LOG_OUTPUT", envVal: "syslog"},
		{name: "bad timeout", envKey: "NOTIONCTL_API_TIMEOUT", envVal: "fast"},
		{name: "bad retry delay", envKey: "NOTIONCTL_RETRY_BASE_DELAY", envVal: "soon"},
		{name: "zero page size", envKey: "NOTIONCTL_PAGE_SIZE", envVal: "0"},
		{name: "oversized page size", envKey: "NOTIONCTL_PAGE_SIZE", envVal: "500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.envKey, tt.envVal)

			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}

func TestMergeConfigs(t *testing.T) {
	target := &Config{}
	target.API.BaseURL = "https://api.notion.com/v1"
	target.API.PageSize = 100

	source := &Config{}
	source.API.PageSize = 10

	mergeConfigs(target, source)

	assert.Equal(t, 10, target.API.PageSize)
	assert.Equal(t, "https://api.notion.com/v1", target.API.BaseURL)
}

func TestAPITimeout(t *testing.T) {
	cfg := &Config{}
	cfg.API.Timeout = "45s"
	assert.Equal(t, 45*time.Second, cfg.APITimeout())

	cfg.API.Timeout = "garbage"
	assert.Equal(t, 30*time.Second, cfg.APITimeout())
}

func TestRetryBaseDelay(t *testing.T) {
	cfg := &Config{}
	cfg.Retry.BaseDelay = "250ms"
	assert.Equal(t, 250*time.Millisecond, cfg.RetryBaseDelay())

	cfg.Retry.BaseDelay = "garbage"
	assert.Equal(t, time.Second, cfg.RetryBaseDelay())
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "x"), expandPath("~/x"))
	assert.Equal(t, home, expandPath("~"))
	assert.Equal(t, "/absolute/path", expandPath("/absolute/path"))
	assert.Equal(t, "relative/path", expandPath("relative/path"))
}

func TestTokenNeverSerializes(t *testing.T) {
	cfg := &Config{}
	cfg.API.Token = "secret"

	data, err := json.Marshal(cfg)
	require.NoError(t, err)

	assert.NotContains(t, string(data), "secret")
}
