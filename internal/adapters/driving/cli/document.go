package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var documentCmd = &cobra.Command{
	Use:     "document",
	Aliases: []string{"doc"},
	Short:   "Read and manage individual documents",
}

var documentGetCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Fetch a document by identity",
	Long: `Fetches a document as JSON. A published identity with no published
variant falls back to its draft.`,
	Args: cobra.ExactArgs(1),
	RunE: runDocumentGet,
}

var documentDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a document, draft and published variants both",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentDelete,
}

var documentPublishCmd = &cobra.Command{
	Use:   "publish [id]",
	Short: "Publish a document's draft variant",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentPublish,
}

var documentUnpublishCmd = &cobra.Command{
	Use:   "unpublish [id]",
	Short: "Turn a published document back into a draft",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentUnpublish,
}

var documentCountCmd = &cobra.Command{
	Use:   "count [kind]",
	Short: "Count the documents of a kind",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentCount,
}

func init() {
	documentCmd.AddCommand(documentGetCmd)
	documentCmd.AddCommand(documentDeleteCmd)
	documentCmd.AddCommand(documentPublishCmd)
	documentCmd.AddCommand(documentUnpublishCmd)
	documentCmd.AddCommand(documentCountCmd)
	rootCmd.AddCommand(documentCmd)
}

func runDocumentGet(cmd *cobra.Command, args []string) error {
	doc, err := currentServices().document.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("get document: %w", err)
	}

	payload := map[string]any{
		"id":     doc.ID,
		"kind":   doc.Kind,
		"draft":  doc.IsDraft(),
		"fields": doc.Fields,
	}
	if !doc.UpdatedAt.IsZero() {
		payload["updated_at"] = doc.UpdatedAt
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func runDocumentDelete(cmd *cobra.Command, args []string) error {
	if err := currentServices().document.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	cmd.Printf("Deleted %s\n", args[0])
	return nil
}

func runDocumentPublish(cmd *cobra.Command, args []string) error {
	doc, err := currentServices().document.Publish(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("publish document: %w", err)
	}
	cmd.Printf("Published %s\n", doc.ID)
	return nil
}

func runDocumentUnpublish(cmd *cobra.Command, args []string) error {
	doc, err := currentServices().document.Unpublish(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("unpublish document: %w", err)
	}
	cmd.Printf("Unpublished to %s\n", doc.ID)
	return nil
}

func runDocumentCount(cmd *cobra.Command, args []string) error {
	count, err := currentServices().document.Count(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("count documents: %w", err)
	}
	cmd.Printf("%d\n", count)
	return nil
}
