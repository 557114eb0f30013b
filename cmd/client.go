package cmd

import (
	stderrors "errors"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/mattn/go-isatty"

	"github.com/klynch/notionctl/internal/cache"
	"github.com/klynch/notionctl/internal/config"
	"github.com/klynch/notionctl/internal/errors"
	"github.com/klynch/notionctl/internal/formatter"
	"github.com/klynch/notionctl/internal/logging"
	"github.com/klynch/notionctl/internal/notion"
)

// newClient assembles the client stack: HTTP transport, retry decorator,
// and the schema cache when enabled.
func newClient(cfg *config.Config) (notion.Client, error) {
	if cfg.API.Token == "" {
		return nil, errors.NewAuthError("no API token configured")
	}

	base, err := notion.NewClient(notion.ClientOptions{
		Token:   cfg.API.Token,
		BaseURL: cfg.API.BaseURL,
		Version: cfg.API.Version,
		Timeout: cfg.APITimeout(),
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrTypeConfig, "failed to create API client")
	}

	client := notion.NewRetryClient(base, notion.RetryOptions{
		MaxAttempts: cfg.Retry.MaxAttempts,
		BaseDelay:   cfg.RetryBaseDelay(),
		Jitter:      cfg.Retry.Jitter,
	})

	if cfg.Cache.Enabled {
		store, err := cache.NewFileCache(
			cfg.Cache.Directory,
			time.Duration(cfg.Cache.TTLMinutes)*time.Minute,
		)
		if err != nil {
			logging.Warnf("schema cache disabled: %v", err)
			return client, nil
		}

		client = notion.NewCachedClient(client, store, 0)
	}

	return client, nil
}

// withSpinner shows a progress spinner around fn when the terminal
// allows it
func withSpinner(cfg *config.Config, message string, fn func() error) error {
	if !cfg.Output.Spinner || !isatty.IsTerminal(os.Stderr.Fd()) {
		return fn()
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " " + message
	s.Start()

	defer s.Stop()

	return fn()
}

// outputFormat resolves the effective output format for a command
func outputFormat(cfg *config.Config) formatter.OutputFormat {
	switch cfg.Output.Format {
	case "json":
		return formatter.FormatJSON
	case "long":
		return formatter.FormatLong
	default:
		return formatter.FormatTable
	}
}

// suggestionsFor extracts resolution hints from structured errors
func suggestionsFor(err error) []string {
	var structErr *errors.Error
	if stderrors.As(err, &structErr) {
		return structErr.Suggestions
	}

	return nil
}
