package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tidewater-labs/lakeview-cli/internal/core/domain"
)

var (
	searchKinds []string
	searchLimit int
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search lake documents",
	Long: `Runs a ranked full-text search over the dataset's searchable fields.
Title-like fields weigh higher than body fields.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringSliceVarP(&searchKinds, "kinds", "k", nil, "restrict the search to these document kinds")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, "maximum number of results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	docs, err := currentServices().search.Search(cmd.Context(), args[0], domain.SearchOptions{
		Kinds: searchKinds,
		Limit: searchLimit,
	})
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, docs)
	}
	return outputSearchTable(cmd, docs)
}

func outputSearchJSON(cmd *cobra.Command, docs []domain.Document) error {
	type resultRow struct {
		ID    string  `json:"id"`
		Kind  string  `json:"kind"`
		Title string  `json:"title"`
		Score float64 `json:"score"`
	}

	rows := make([]resultRow, len(docs))
	for i := range docs {
		rows[i] = resultRow{
			ID:    docs[i].ID,
			Kind:  docs[i].Kind,
			Title: docs[i].Title(),
			Score: docs[i].Score,
		}
	}

	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, docs []domain.Document) error {
	if len(docs) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	width := terminalWidth()
	for i := range docs {
		line := fmt.Sprintf("  [%d] %s %s", i+1, docs[i].Title(),
			scoreStyle.Render(fmt.Sprintf("(%.2f)", docs[i].Score)))
		cmd.Println(truncateLine(line, width))

		detail := fmt.Sprintf("      %s  %s", docs[i].Kind, docs[i].ID)
		if docs[i].IsDraft() {
			detail += "  " + draftStyle.Render("draft")
		}
		cmd.Println(labelStyle.Render(detail))
	}
	return nil
}
