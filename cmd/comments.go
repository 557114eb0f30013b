package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/klynch/notionctl/internal/formatter"
	"github.com/klynch/notionctl/internal/notion"
	"github.com/klynch/notionctl/internal/pagination"
)

var commentsCmd = &cobra.Command{
	Use:   "comments",
	Short: "Read and add page comments",
}

var commentsListCmd = &cobra.Command{
	Use:   "list <page-or-block-id>",
	Short: "List comments on a page or block",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCommentsList(cmd.Context(), cmd, args[0])
	},
}

var commentsAddCmd = &cobra.Command{
	Use:   "add <page-id> <text>",
	Short: "Add a comment to a page",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCommentsAdd(cmd.Context(), cmd, args[0], args[1])
	},
}

func init() {
	commentsListCmd.Flags().IntP("limit", "l", 0, "Maximum number of comments (0 = all)")
	commentsAddCmd.Flags().String("discussion", "", "Reply to an existing discussion thread")

	commentsCmd.AddCommand(commentsListCmd)
	commentsCmd.AddCommand(commentsAddCmd)
}

func runCommentsList(ctx context.Context, cmd *cobra.Command, blockID string) error {
	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	id, err := notion.NormalizeID(blockID)
	if err != nil {
		return err
	}

	limit, _ := cmd.Flags().GetInt("limit")

	var result pagination.Result[notion.Comment]

	fetchErr := withSpinner(cfg, "fetching comments...", func() error {
		var err error

		result, err = pagination.Collect(ctx, func(ctx context.Context, cursor string, pageSize int) (pagination.Page[notion.Comment], error) {
			envelope, err := client.ListComments(ctx, id, cursor, pageSize)
			if err != nil {
				return pagination.Page[notion.Comment]{}, err
			}

			return pagination.Page[notion.Comment]{
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

	out, err := formatter.NewFormatter().FormatComments(result.Results, outputFormat(cfg))
	if err != nil {
		return err
	}

	fmt.Println(out)

	if result.Truncated {
		fmt.Printf("(truncated to %d comments; more are available)\n", len(result.Results))
	}

	return nil
}

func runCommentsAdd(ctx context.Context, cmd *cobra.Command, pageID, text string) error {
	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	id, err := notion.NormalizeID(pageID)
	if err != nil {
		return err
	}

	req := &notion.CreateCommentRequest{
		RichText: []notion.RichText{notion.NewText(text)},
	}

	if discussion, _ := cmd.Flags().GetString("discussion"); discussion != "" {
		req.DiscussionID = discussion
	} else {
		req.Parent = &notion.Parent{Type: "page_id", PageID: id}
	}

	comment, err := client.CreateComment(ctx, req)
	if err != nil {
		return err
	}

	fmt.Printf("Added comment %s\n", comment.ID)

	return nil
}
