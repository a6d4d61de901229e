package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tidewater-labs/lakeview-cli/internal/core/domain"
)

var (
	contextKinds    []string
	contextMaxDocs  int
	contextMaxChars int
	contextMetadata bool
	contextJSON     bool
)

var contextCmd = &cobra.Command{
	Use:   "context [query]",
	Short: "Assemble ranked context for a query",
	Long: `Searches the content lake, flattens and chunks the matching documents,
and prints ranked context blocks under an optional character budget.
This is the same pipeline the get_context MCP tool runs.`,
	Args: cobra.ExactArgs(1),
	RunE: runContext,
}

func init() {
	contextCmd.Flags().StringSliceVarP(&contextKinds, "kinds", "k", nil, "restrict sources to these document kinds")
	contextCmd.Flags().IntVarP(&contextMaxDocs, "max-results", "n", 0, "maximum number of source documents")
	contextCmd.Flags().IntVarP(&contextMaxChars, "max-chars", "c", 0, "character budget across all blocks (0 = unlimited)")
	contextCmd.Flags().BoolVarP(&contextMetadata, "metadata", "m", false, "prefix each source's first chunk with an attribution header")
	contextCmd.Flags().BoolVar(&contextJSON, "json", false, "output the result as JSON")
	rootCmd.AddCommand(contextCmd)
}

func runContext(cmd *cobra.Command, args []string) error {
	result, err := currentServices().context.Assemble(cmd.Context(), domain.ContextRequest{
		Query:           args[0],
		Kinds:           contextKinds,
		MaxResults:      contextMaxDocs,
		MaxChars:        contextMaxChars,
		IncludeMetadata: contextMetadata,
	})
	if err != nil {
		return fmt.Errorf("assemble context: %w", err)
	}

	if contextJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal result: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(result.Blocks) == 0 {
		cmd.Println("No matching content.")
		return nil
	}

	for _, block := range result.Blocks {
		header := fmt.Sprintf("%s (%s)  chunk %d/%d  score %.2f",
			block.Title, block.SourceID,
			block.ChunkIndex+1, block.TotalChunks, block.Score)
		cmd.Println(headerStyle.Render(header))
		cmd.Println(block.Text)
		cmd.Println()
	}

	summary := fmt.Sprintf("%d chunks, %d chars, %d sources",
		result.TotalChunks, result.TotalChars, result.SourcesUsed)
	cmd.Println(labelStyle.Render(summary))
	return nil
}
