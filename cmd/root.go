package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/klynch/notionctl/internal/config"
	"github.com/klynch/notionctl/internal/logging"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "notionctl",
	Short: "Work with Notion pages, data sources, and blocks from the terminal",
	Long: `notionctl maps human-friendly commands onto the Notion API. It resolves
data source schemas so filters and property values can be written as plain
key=value strings, converts page content between markdown and blocks, and
handles pagination and rate-limit retries transparently.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		overrides := map[string]interface{}{}

		if token, err := cmd.Flags().GetString("token"); err == nil {
			overrides["token"] = token
		}

		if format, err := cmd.Flags().GetString("format"); err == nil {
			overrides["format"] = format
		}

		if verbose, err := cmd.Flags().GetBool("verbose"); err == nil && verbose {
			overrides["log-level"] = "debug"
		}

		loaded, err := config.LoadConfigWithOverrides(overrides)
		if err != nil {
			return err
		}

		loaded.ExpandAllPaths()
		cfg = loaded

		if err := logging.InitializeLogger(cfg.Logging); err != nil {
			logging.SetupFallbackLogger()
			logging.Warnf("falling back to basic logging: %v", err)
		}

		return nil
	},
}

// Execute runs the root command, printing any surfaced error with its
// suggestions before exiting.
func Execute() error {
	ctx := context.Background()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		printError(err)
	}

	return err
}

func printError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)

	for _, suggestion := range suggestionsFor(err) {
		fmt.Fprintf(os.Stderr, "  hint: %s\n", suggestion)
	}
}

func init() {
	rootCmd.PersistentFlags().String("token", "", "API token (overrides NOTIONCTL_TOKEN)")
	rootCmd.PersistentFlags().StringP("format", "f", "", "Output format (table, long, json)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(pageCmd)
	rootCmd.AddCommand(blocksCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(usersCmd)
	rootCmd.AddCommand(commentsCmd)
	rootCmd.AddCommand(configCmd)
}
