package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Display the active configuration",
	Long: `Show the current active configuration including all settings from the
config file, environment variables, and command-line flags. The API token
is redacted.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runConfigShow()
	},
}

func runConfigShow() error {
	if cfg.Output.Format == "json" {
		// Token carries json:"-" so it never appears here
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal config to JSON: %w", err)
		}

		fmt.Println(string(data))

		return nil
	}

	fmt.Println("Active Configuration:")

	fmt.Println("\nAPI:")
	fmt.Printf("  Token: %s\n", redactToken(cfg.API.Token))
	fmt.Printf("  Base URL: %s\n", cfg.API.BaseURL)
	fmt.Printf("  Version: %s\n", cfg.API.Version)
	fmt.Printf("  Timeout: %s\n", cfg.API.Timeout)
	fmt.Printf("  Page Size: %d\n", cfg.API.PageSize)

	fmt.Println("\nRetry:")
	fmt.Printf("  Max Attempts: %d\n", cfg.Retry.MaxAttempts)
	fmt.Printf("  Base Delay: %s\n", cfg.Retry.BaseDelay)
	fmt.Printf("  Jitter: %t\n", cfg.Retry.Jitter)

	fmt.Println("\nCache:")
	fmt.Printf("  Enabled: %t\n", cfg.Cache.Enabled)

	if cfg.Cache.Enabled {
		fmt.Printf("  Directory: %s\n", cfg.Cache.Directory)
		fmt.Printf("  TTL: %d minutes\n", cfg.Cache.TTLMinutes)
		fmt.Printf("  Max Size: %d MB\n", cfg.Cache.MaxSizeMB)
	}

	fmt.Println("\nLogging:")
	fmt.Printf("  Level: %s\n", cfg.Logging.Level)
	fmt.Printf("  Format: %s\n", cfg.Logging.Format)
	fmt.Printf("  Output: %s\n", cfg.Logging.Output)

	if cfg.Logging.Output == "file" {
		fmt.Printf("  File: %s\n", cfg.Logging.File)
	}

	fmt.Println("\nOutput:")
	fmt.Printf("  Format: %s\n", cfg.Output.Format)
	fmt.Printf("  Spinner: %t\n", cfg.Output.Spinner)

	return nil
}

func redactToken(token string) string {
	if token == "" {
		return "(not set)"
	}

	if len(token) <= 8 {
		return "********"
	}

	return token[:4] + "..." + token[len(token)-4:]
}
