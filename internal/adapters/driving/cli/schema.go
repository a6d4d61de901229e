package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tidewater-labs/lakeview-cli/internal/core/domain"
)

var schemaJSON bool

var schemaCmd = &cobra.Command{
	Use:   "schema [kind]",
	Short: "Describe the dataset's content",
	Long: `Samples the content lake to report what kinds exist, which fields they
carry and which of those fields are searchable. With a kind argument,
describes that kind in detail.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSchema,
}

func init() {
	schemaCmd.Flags().BoolVar(&schemaJSON, "json", false, "output the summary as JSON")
	rootCmd.AddCommand(schemaCmd)
}

func runSchema(cmd *cobra.Command, args []string) error {
	catalog := currentServices().catalog

	var summaries []domain.KindSummary
	if len(args) == 1 {
		summary, err := catalog.DescribeKind(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("describe %s: %w", args[0], err)
		}
		summaries = []domain.KindSummary{*summary}
	} else {
		result, err := catalog.DescribeAll(cmd.Context())
		if err != nil {
			return fmt.Errorf("describe content: %w", err)
		}
		summaries = result.Kinds
	}

	if schemaJSON {
		data, err := json.MarshalIndent(summaries, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal summary: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(summaries) == 0 {
		cmd.Println("No document kinds found.")
		return nil
	}

	for _, summary := range summaries {
		cmd.Println(headerStyle.Render(fmt.Sprintf("%s (%d documents)", summary.Kind, summary.Count)))

		for _, field := range summary.Fields {
			cmd.Printf("  %-24s %s\n", field.Name, labelStyle.Render(string(field.Type)))
		}
		if len(summary.SearchableFields) > 0 {
			cmd.Printf("  searchable: %v\n", summary.SearchableFields)
		}
		if summary.AvgContentLength > 0 {
			cmd.Printf("  avg content length: %d chars\n", summary.AvgContentLength)
		}
		if !summary.LatestUpdated.IsZero() {
			cmd.Printf("  updated: %s to %s\n",
				summary.EarliestUpdated.Format("2006-01-02"),
				summary.LatestUpdated.Format("2006-01-02"))
		}
		for _, sample := range summary.Samples {
			cmd.Printf("  - %s (%s)\n", sample.Title, sample.ID)
		}
		cmd.Println()
	}
	return nil
}
