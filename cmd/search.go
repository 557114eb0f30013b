package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/klynch/notionctl/internal/formatter"
	"github.com/klynch/notionctl/internal/notion"
	"github.com/klynch/notionctl/internal/pagination"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search pages and data sources across the workspace",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := ""
		if len(args) > 0 {
			query = args[0]
		}

		return runSearch(cmd.Context(), cmd, query)
	},
}

func init() {
	searchCmd.Flags().String("filter", "", "Restrict results to one object kind (page, data_source)")
	searchCmd.Flags().IntP("limit", "l", 0, "Maximum number of results (0 = all)")
}

func runSearch(ctx context.Context, cmd *cobra.Command, query string) error {
	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	var objectFilter *notion.SearchFilter

	if kind, _ := cmd.Flags().GetString("filter"); kind != "" {
		objectFilter = &notion.SearchFilter{Property: "object", Value: kind}
	}

	limit, _ := cmd.Flags().GetInt("limit")

	var result pagination.Result[notion.Page]

	fetchErr := withSpinner(cfg, "searching...", func() error {
		var err error

		result, err = pagination.Collect(ctx, func(ctx context.Context, cursor string, pageSize int) (pagination.Page[notion.Page], error) {
			envelope, err := client.Search(ctx, &notion.SearchRequest{
				Query:       query,
				Filter:      objectFilter,
				StartCursor: cursor,
				PageSize:    pageSize,
			})
			if err != nil {
				return pagination.Page[notion.Page]{}, err
			}

			return pagination.Page[notion.Page]{
				Results:    envelope.Results,
				HasMore:    envelope.HasMore,
				NextCursor: envelope.NextCursor,
			}, nil
		}, pagination.Options{Limit: limit, PageSize: cfg.API.PageSize})

		return err
	})
	if fetchErr != nil {
		return fetchErr
	}

	out, err := formatter.NewFormatter().FormatPages(result.Results, outputFormat(cfg))
	if err != nil {
		return err
	}

	fmt.Println(out)

	if result.Truncated {
		fmt.Printf("(truncated to %d results; more are available)\n", len(result.Results))
	}

	return nil
}
