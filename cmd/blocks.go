package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/klynch/notionctl/internal/markdown"
	"github.com/klynch/notionctl/internal/notion"
	"github.com/klynch/notionctl/internal/pagination"
)

var blocksCmd = &cobra.Command{
	Use:   "blocks",
	Short: "Read and write page content as markdown",
}

var blocksGetCmd = &cobra.Command{
	Use:   "get <page-or-block-id>",
	Short: "Fetch a block's children and render them as markdown",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBlocksGet(cmd.Context(), cmd, args[0])
	},
}

var blocksAppendCmd = &cobra.Command{
	Use:   "append <page-or-block-id>",
	Short: "Append markdown content to a page or block",
	Long: `Parse markdown from --text, --file, or stdin into blocks and append
them to the target. Headings, lists, todos, quotes, fenced code, and
dividers are recognized; anything else becomes a paragraph.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBlocksAppend(cmd.Context(), cmd, args[0])
	},
}

var blocksDeleteCmd = &cobra.Command{
	Use:   "delete <block-id>",
	Short: "Delete (archive) a block",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBlocksDelete(cmd.Context(), args[0])
	},
}

func init() {
	blocksGetCmd.Flags().IntP("limit", "l", 0, "Maximum number of blocks to fetch (0 = all)")
	blocksAppendCmd.Flags().StringP("text", "t", "", "Markdown text to append")
	blocksAppendCmd.Flags().String("file", "", "Read markdown from a file instead of stdin")

	blocksCmd.AddCommand(blocksGetCmd)
	blocksCmd.AddCommand(blocksAppendCmd)
	blocksCmd.AddCommand(blocksDeleteCmd)
}

func runBlocksGet(ctx context.Context, cmd *cobra.Command, blockID string) error {
	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	id, err := notion.NormalizeID(blockID)
	if err != nil {
		return err
	}

	limit, _ := cmd.Flags().GetInt("limit")

	var result pagination.Result[notion.Block]

	fetchErr := withSpinner(cfg, "fetching blocks...", func() error {
		var err error

		result, err = pagination.Collect(ctx, func(ctx context.Context, cursor string, pageSize int) (pagination.Page[notion.Block], error) {
			envelope, err := client.ListBlockChildren(ctx, id, cursor, pageSize)
			if err != nil {
				return pagination.Page[notion.Block]{}, err
			}

			return pagination.Page[notion.Block]{
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

	if cfg.Output.Format == "json" {
		data, err := json.MarshalIndent(result.Results, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode blocks: %w", err)
		}

		fmt.Println(string(data))
	} else {
		fmt.Println(markdown.RenderBlocks(result.Results))
	}

	if result.Truncated {
		fmt.Printf("(truncated to %d blocks; more are available)\n", len(result.Results))
	}

	return nil
}

func runBlocksAppend(ctx context.Context, cmd *cobra.Command, blockID string) error {
	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	id, err := notion.NormalizeID(blockID)
	if err != nil {
		return err
	}

	text, err := readMarkdownInput(cmd)
	if err != nil {
		return err
	}

	blocks := markdown.ParseBlocks(text)
	if len(blocks) == 0 {
		return fmt.Errorf("no content to append")
	}

	if _, err := client.AppendBlockChildren(ctx, id, blocks); err != nil {
		return err
	}

	fmt.Printf("Appended %d blocks\n", len(blocks))

	return nil
}

func runBlocksDelete(ctx context.Context, blockID string) error {
	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	id, err := notion.NormalizeID(blockID)
	if err != nil {
		return err
	}

	if _, err := client.DeleteBlock(ctx, id); err != nil {
		return err
	}

	fmt.Printf("Deleted block %s\n", id)

	return nil
}

func readMarkdownInput(cmd *cobra.Command) (string, error) {
	if text, _ := cmd.Flags().GetString("text"); text != "" {
		return text, nil
	}

	if path, _ := cmd.Flags().GetString("file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", path, err)
		}

		return string(data), nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}

	return string(data), nil
}
