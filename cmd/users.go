package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/klynch/notionctl/internal/formatter"
	"github.com/klynch/notionctl/internal/notion"
	"github.com/klynch/notionctl/internal/pagination"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List workspace users",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runUsers(cmd.Context(), cmd)
	},
}

var usersGetCmd = &cobra.Command{
	Use:   "get <user-id>",
	Short: "Show a single user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUsersGet(cmd.Context(), args[0])
	},
}

func init() {
	usersCmd.Flags().IntP("limit", "l", 0, "Maximum number of users (0 = all)")
	usersCmd.AddCommand(usersGetCmd)
}

func runUsers(ctx context.Context, cmd *cobra.Command) error {
	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	limit, _ := cmd.Flags().GetInt("limit")

	var result pagination.Result[notion.User]

	fetchErr := withSpinner(cfg, "fetching users...", func() error {
		var err error

		result, err = pagination.Collect(ctx, func(ctx context.Context, cursor string, pageSize int) (pagination.Page[notion.User], error) {
			envelope, err := client.ListUsers(ctx, cursor, pageSize)
			if err != nil {
				return pagination.Page[notion.User]{}, err
			}

			return pagination.Page[notion.User]{
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

	out, err := formatter.NewFormatter().FormatUsers(result.Results, outputFormat(cfg))
	if err != nil {
		return err
	}

	fmt.Println(out)

	if result.Truncated {
		fmt.Printf("(truncated to %d users; more are available)\n", len(result.Results))
	}

	return nil
}

func runUsersGet(ctx context.Context, userID string) error {
	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	id, err := notion.NormalizeID(userID)
	if err != nil {
		return err
	}

	user, err := client.RetrieveUser(ctx, id)
	if err != nil {
		return err
	}

	out, err := formatter.NewFormatter().FormatUsers([]notion.User{*user}, outputFormat(cfg))
	if err != nil {
		return err
	}

	fmt.Println(out)

	return nil
}
