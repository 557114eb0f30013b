package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config represents the application configuration
type Config struct {
	API     APIConfig     `json:"api"`
	Retry   RetryConfig   `json:"retry"`
	Cache   CacheConfig   `json:"cache"`
	Logging LoggingConfig `json:"logging"`
	Output  OutputConfig  `json:"output"`
}

// APIConfig holds connection settings for the remote document store
type APIConfig struct {
	Token    string `json:"-"         env:"TOKEN"`
	BaseURL  string `json:"base_url"  env:"BASE_URL"  envDefault:"https://api.notion.com/v1"`
	Version  string `json:"version"   env:"API_VERSION" envDefault:"2025-09-03"`
	Timeout  string `json:"timeout"   env:"API_TIMEOUT" envDefault:"30s"`
	PageSize int    `json:"page_size" env:"PAGE_SIZE"   envDefault:"100"`
}

// RetryConfig holds the rate-limit retry policy
type RetryConfig struct {
	MaxAttempts int    `json:"max_attempts"  env:"RETRY_MAX_ATTEMPTS" envDefault:"3"`
	BaseDelay   string `json:"base_delay"    env:"RETRY_BASE_DELAY"   envDefault:"1s"`
	Jitter      bool   `json:"jitter"        env:"RETRY_JITTER"       envDefault:"true"`
}

// CacheConfig represents schema response caching configuration
type CacheConfig struct {
	Enabled    bool   `json:"enabled"      env:"CACHE_ENABLED"     envDefault:"false"`
	Directory  string `json:"directory"    env:"CACHE_DIR"         envDefault:"~/.cache/notionctl"`
	TTLMinutes int    `json:"ttl_minutes"  env:"CACHE_TTL_MINUTES" envDefault:"10"`
	MaxSizeMB  int    `json:"max_size_mb"  env:"CACHE_MAX_SIZE_MB" envDefault:"50"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level  string `json:"level"  env:"LOG_LEVEL"  envDefault:"warn"`                       // debug, info, warn, error
	Format string `json:"format" env:"LOG_FORMAT" envDefault:"text"`                       // text, json
	Output string `json:"output" env:"LOG_OUTPUT" envDefault:"stderr"`                     // stdout, stderr, file
	File   string `json:"file"   env:"LOG_FILE"   envDefault:"~/.config/notionctl/cli.log"` // log file path when output is file
}

// OutputConfig represents default display settings
type OutputConfig struct {
	Format  string `json:"format"  env:"OUTPUT_FORMAT" envDefault:"table"` // table, json
	Spinner bool   `json:"spinner" env:"SPINNER"       envDefault:"true"`
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig() (*Config, error) {
	return LoadConfigWithOverrides(nil)
}

// LoadConfigWithOverrides loads configuration with optional command-line flag overrides
func LoadConfigWithOverrides(flagOverrides map[string]interface{}) (*Config, error) {
	config := &Config{}

	// Load from config file if it exists
	configPath := getConfigPath()
	if _, err := os.Stat(configPath); err == nil {
		if err := loadConfigFromFile(config, configPath); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	// Apply environment variable overrides using env library (also sets defaults)
	if err := env.ParseWithOptions(config, env.Options{
		Prefix: "NOTIONCTL_",
	}); err != nil {
		return nil, fmt.Errorf("failed to parse environment variables: %w", err)
	}

	if flagOverrides != nil {
		applyFlagOverrides(config, flagOverrides)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// loadConfigFromFile loads configuration from a JSON file
func loadConfigFromFile(config *Config, configPath string) error {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var fileConfig Config
	if err := json.Unmarshal(data, &fileConfig); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	mergeConfigs(config, &fileConfig)

	return nil
}

// applyFlagOverrides applies command-line flag overrides to configuration
func applyFlagOverrides(config *Config, overrides map[string]interface{}) {
	for key, value := range overrides {
		switch key {
		case "token":
			if str, ok := value.(string); ok && str != "" {
				config.API.Token = str
			}
		case "format":
			if str, ok := value.(string); ok && str != "" {
				config.Output.Format = str
			}
		case "log-level":
			if str, ok := value.(string); ok && str != "" {
				config.Logging.Level = str
			}
		case "no-spinner":
			if b, ok := value.(bool); ok && b {
				config.Output.Spinner = false
			}
		}
	}
}

// mergeConfigs merges source configuration into target configuration
func mergeConfigs(target, source *Config) {
	var mergeValues func(t, s reflect.Value)
	mergeValues = func(t, s reflect.Value) {
		if t.Kind() != s.Kind() {
			return
		}

		if t.Kind() == reflect.Struct {
			for i := 0; i < s.NumField(); i++ {
				mergeValues(t.Field(i), s.Field(i))
			}
		} else if s.Kind() == reflect.Bool {
			t.Set(s)
		} else if !s.IsZero() {
			t.Set(s)
		}
	}

	mergeValues(reflect.ValueOf(target).Elem(), reflect.ValueOf(source).Elem())
}

// validateConfig validates the configuration for common errors
func validateConfig(config *Config) error {
	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[strings.ToLower(config.Logging.Level)] {
		return fmt.Errorf(
			"invalid log level: %s (must be debug, info, warn, or error)",
			config.Logging.Level,
		)
	}

	validLogFormats := map[string]bool{
		"text": true, "json": true,
	}
	if !validLogFormats[strings.ToLower(config.Logging.Format)] {
		return fmt.Errorf("invalid log format: %s (must be text or json)", config.Logging.Format)
	}

	validLogOutputs := map[string]bool{
		"stdout": true, "stderr": true, "file": true,
	}
	if !validLogOutputs[strings.ToLower(config.Logging.Output)] {
		return fmt.Errorf(
			"invalid log output: %s (must be stdout, stderr, or file)",
			config.Logging.Output,
		)
	}

	if _, err := time.ParseDuration(config.API.Timeout); err != nil {
		return fmt.Errorf("invalid API timeout: %s", config.API.Timeout)
	}

	if _, err := time.ParseDuration(config.Retry.BaseDelay); err != nil {
		return fmt.Errorf("invalid retry base delay: %s", config.Retry.BaseDelay)
	}

	if config.Retry.MaxAttempts <= 0 {
		return fmt.Errorf("retry max attempts must be positive: %d", config.Retry.MaxAttempts)
	}

	if config.API.PageSize <= 0 || config.API.PageSize > 100 {
		return fmt.Errorf("page size must be between 1 and 100: %d", config.API.PageSize)
	}

	return nil
}

// APITimeout returns the parsed API timeout duration
func (c *Config) APITimeout() time.Duration {
	d, err := time.ParseDuration(c.API.Timeout)
	if err != nil {
		return 30 * time.Second
	}

	return d
}

// RetryBaseDelay returns the parsed retry base delay
func (c *Config) RetryBaseDelay() time.Duration {
	d, err := time.ParseDuration(c.Retry.BaseDelay)
	if err != nil {
		return time.Second
	}

	return d
}

// SaveConfig saves configuration to file
func SaveConfig(config *Config) error {
	configPath := getConfigPath()

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// getConfigPath returns the path to the configuration file
func getConfigPath() string {
	if configPath := os.Getenv("NOTIONCTL_CONFIG"); configPath != "" {
		return expandPath(configPath)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./config.json"
	}

	return filepath.Join(homeDir, ".config", "notionctl", "config.json")
}

// expandPath expands ~ to home directory in file paths
func expandPath(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	if path == "~" {
		return homeDir
	}

	if strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir, path[2:])
	}

	return path
}

// ExpandAllPaths expands all paths in the configuration
func (c *Config) ExpandAllPaths() {
	c.Cache.Directory = expandPath(c.Cache.Directory)
	c.Logging.File = expandPath(c.Logging.File)
}

// GetConfigDir returns the configuration directory
func GetConfigDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".config/notionctl"
	}

	return filepath.Join(homeDir, ".config", "notionctl")
}
