package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/klynch/notionctl/internal/flags"
	"github.com/klynch/notionctl/internal/formatter"
	"github.com/klynch/notionctl/internal/markdown"
	"github.com/klynch/notionctl/internal/notion"
	"github.com/klynch/notionctl/internal/property"
	"github.com/klynch/notionctl/internal/schema"
)

var pageCmd = &cobra.Command{
	Use:   "page",
	Short: "Read, create, and update pages",
}

var pageGetCmd = &cobra.Command{
	Use:   "get <page-id>",
	Short: "Show a page's properties",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPageGet(cmd.Context(), args[0])
	},
}

var pageCreateCmd = &cobra.Command{
	Use:   "create <data-source-id>",
	Short: "Create a page in a data source",
	Long: `Create a page with properties given as key=value strings. Properties can
be passed with --prop or directly as flags named after schema properties,
e.g. --status Done for a "Status" property.`,
	Args:               cobra.ExactArgs(1),
	FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPageCreate(cmd.Context(), cmd, args[0])
	},
}

var pageUpdateCmd = &cobra.Command{
	Use:                "update <page-id>",
	Short:              "Update a page's properties",
	Args:               cobra.ExactArgs(1),
	FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPageUpdate(cmd.Context(), cmd, args[0])
	},
}

func init() {
	pageCreateCmd.Flags().StringArrayP("prop", "p", nil, "Property as key=value (repeatable)")
	pageCreateCmd.Flags().String("content", "", "Markdown content for the page body")
	pageUpdateCmd.Flags().StringArrayP("prop", "p", nil, "Property as key=value (repeatable)")
	pageUpdateCmd.Flags().Bool("archive", false, "Archive the page")

	pageCmd.AddCommand(pageGetCmd)
	pageCmd.AddCommand(pageCreateCmd)
	pageCmd.AddCommand(pageUpdateCmd)
}

func runPageGet(ctx context.Context, pageID string) error {
	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	id, err := notion.NormalizeID(pageID)
	if err != nil {
		return err
	}

	page, err := client.RetrievePage(ctx, id)
	if err != nil {
		return err
	}

	output, err := formatter.NewFormatter().FormatPage(page, outputFormat(cfg))
	if err != nil {
		return err
	}

	fmt.Println(output)

	return nil
}

func runPageCreate(ctx context.Context, cmd *cobra.Command, dataSourceID string) error {
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

	properties, err := collectProperties(cmd, sm)
	if err != nil {
		return err
	}

	req := &notion.CreatePageRequest{
		Parent:     notion.Parent{Type: "data_source_id", DataSourceID: id},
		Properties: properties,
	}

	if content, _ := cmd.Flags().GetString("content"); content != "" {
		req.Children = markdown.ParseBlocks(content)
	}

	page, err := client.CreatePage(ctx, req)
	if err != nil {
		return err
	}

	fmt.Printf("Created page %s\n", page.ID)

	return nil
}

func runPageUpdate(ctx context.Context, cmd *cobra.Command, pageID string) error {
	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	id, err := notion.NormalizeID(pageID)
	if err != nil {
		return err
	}

	page, err := client.RetrievePage(ctx, id)
	if err != nil {
		return err
	}

	if page.Parent == nil || page.Parent.DataSourceID == "" {
		return fmt.Errorf("page %s does not belong to a data source", id)
	}

	sm, err := schema.Resolve(ctx, client, page.Parent.DataSourceID)
	if err != nil {
		return err
	}

	req := &notion.UpdatePageRequest{}

	if archive, _ := cmd.Flags().GetBool("archive"); archive {
		req.Archived = &archive
	}

	properties, err := collectProperties(cmd, sm)
	if err != nil {
		return err
	}

	if len(properties) == 0 && req.Archived == nil {
		return fmt.Errorf("nothing to update: pass --prop, a property flag, or --archive")
	}

	if len(properties) > 0 {
		req.Properties = properties
	}

	if _, err := client.UpdatePage(ctx, id, req); err != nil {
		return err
	}

	fmt.Printf("Updated page %s\n", id)

	return nil
}

// collectProperties merges explicit --prop assignments with dynamic
// property flags matched against the schema, building each into its
// typed payload before any network call consumes it.
func collectProperties(cmd *cobra.Command, sm schema.Map) (map[string]interface{}, error) {
	assignments, _ := cmd.Flags().GetStringArray("prop")
	assignments = append(assignments, flags.ExtractProperties(os.Args[1:], knownFlagNames(cmd), sm)...)

	if len(assignments) == 0 {
		return nil, nil
	}

	properties := make(map[string]interface{}, len(assignments))

	for _, assignment := range assignments {
		name, payload, err := property.BuildFromAssignment(sm, assignment)
		if err != nil {
			return nil, err
		}

		properties[name] = payload
	}

	return properties, nil
}

// knownFlagNames collects every registered flag name so the dynamic
// extractor skips them
func knownFlagNames(cmd *cobra.Command) map[string]bool {
	known := make(map[string]bool)

	collect := func(flag *pflag.Flag) {
		known[flag.Name] = true
	}

	cmd.Flags().VisitAll(collect)
	cmd.InheritedFlags().VisitAll(collect)

	return known
}
