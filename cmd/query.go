package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/klynch/notionctl/internal/formatter"
	"github.com/klynch/notionctl/internal/notion"
	"github.com/klynch/notionctl/internal/pagination"
	"github.com/klynch/notionctl/internal/query"
	"github.com/klynch/notionctl/internal/schema"
)

var queryCmd = &cobra.Command{
	Use:   "query <data-source-id>",
	Short: "Query rows of a data source",
	Long: `Query a data source with schema-aware filters. Filters are written as
key<op>value strings using =, !=, >, <, >=, or <=; the property's declared
type decides how each operator translates. Date values accept keywords like
today, yesterday, and next_week.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuery(cmd.Context(), cmd, args[0])
	},
}

func init() {
	queryCmd.Flags().StringArrayP("filter", "F", nil, "Filter as key<op>value (repeatable, AND-combined)")
	queryCmd.Flags().StringP("sort", "s", "", "Sort as property:asc or property:desc")
	queryCmd.Flags().IntP("limit", "l", 0, "Maximum number of rows to return (0 = all)")
}

func runQuery(ctx context.Context, cmd *cobra.Command, dataSourceID string) error {
	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	id, err := notion.NormalizeID(dataSourceID)
	if err != nil {
		return err
	}

	sm, err := schema.Resolve(ctx, client, id)
	if err != nil {
		return err
	}

	filterStrings, _ := cmd.Flags().GetStringArray("filter")

	var filter *query.Filter

	if len(filterStrings) > 0 {
		filter, err = query.Build(sm, filterStrings)
		if err != nil {
			return err
		}
	}

	sorts, err := parseSort(cmd, sm)
	if err != nil {
		return err
	}

	limit, _ := cmd.Flags().GetInt("limit")

	var result pagination.Result[notion.Page]

	fetchErr := withSpinner(cfg, "querying...", func() error {
		var err error

		result, err = pagination.Collect(ctx, func(ctx context.Context, cursor string, pageSize int) (pagination.Page[notion.Page], error) {
			req := &notion.QueryRequest{
				Sorts:       sorts,
				StartCursor: cursor,
				PageSize:    pageSize,
			}
			if filter != nil {
				req.Filter = filter
			}

			envelope, err := client.QueryDataSource(ctx, id, req)
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

	output, err := formatter.NewFormatter().FormatPages(result.Results, outputFormat(cfg))
	if err != nil {
		return err
	}

	fmt.Println(output)

	if result.Truncated {
		fmt.Printf("(truncated to %d rows; more are available)\n", len(result.Results))
	}

	return nil
}

// parseSort translates property:direction into a sort clause, resolving
// the property name through the schema.
func parseSort(cmd *cobra.Command, sm schema.Map) ([]notion.Sort, error) {
	raw, _ := cmd.Flags().GetString("sort")
	if raw == "" {
		return nil, nil
	}

	name, direction := raw, "ascending"

	if prop, dir, found := strings.Cut(raw, ":"); found {
		name = prop

		switch strings.ToLower(dir) {
		case "asc", "ascending":
			direction = "ascending"
		case "desc", "descending":
			direction = "descending"
		default:
			return nil, fmt.Errorf("invalid sort direction %q: expected asc or desc", dir)
		}
	}

	entry, ok := sm.Lookup(name)
	if !ok {
		return nil, &query.UnknownPropertyError{Key: name, Available: sm.Names()}
	}

	return []notion.Sort{{Property: entry.Name, Direction: direction}}, nil
}
