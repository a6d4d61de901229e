package mcp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/tidewater-labs/lakeview-cli/internal/core/domain"
)

// Envelope is embedded in every tool output. Operational failures set
// Error and leave Success false; the handler itself never returns a Go
// error for them.
type Envelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

func ok() Envelope {
	return Envelope{Success: true}
}

func failed(err error) Envelope {
	return Envelope{Error: err.Error()}
}

// DocumentOutput is the wire shape of a document in tool outputs.
type DocumentOutput struct {
	ID        string         `json:"id"`
	Kind      string         `json:"kind"`
	Title     string         `json:"title"`
	Draft     bool           `json:"draft"`
	CreatedAt string         `json:"created_at,omitempty"`
	UpdatedAt string         `json:"updated_at,omitempty"`
	Fields    map[string]any `json:"fields"`
}

func documentOutput(doc *domain.Document) *DocumentOutput {
	out := &DocumentOutput{
		ID:     doc.ID,
		Kind:   doc.Kind,
		Title:  doc.Title(),
		Draft:  doc.IsDraft(),
		Fields: doc.Fields,
	}
	if !doc.CreatedAt.IsZero() {
		out.CreatedAt = doc.CreatedAt.Format(time.RFC3339)
	}
	if !doc.UpdatedAt.IsZero() {
		out.UpdatedAt = doc.UpdatedAt.Format(time.RFC3339)
	}
	return out
}

// GetDocumentInput is the input schema for the get_document tool.
type GetDocumentInput struct {
	ID string `json:"id" jsonschema:"the document identity, with or without the drafts. prefix"`
}

// GetDocumentOutput is the output schema for the get_document tool.
type GetDocumentOutput struct {
	Envelope
	Document *DocumentOutput `json:"document,omitempty"`
}

// SearchDocumentsInput is the input schema for the search_documents tool.
type SearchDocumentsInput struct {
	Query string   `json:"query" jsonschema:"the search text to match against document fields"`
	Kinds []string `json:"kinds,omitempty" jsonschema:"restrict the search to these document kinds"`
	Limit int      `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 10)"`
}

// SearchResultOutput represents a single search result.
type SearchResultOutput struct {
	ID        string  `json:"id"`
	Kind      string  `json:"kind"`
	Title     string  `json:"title"`
	Score     float64 `json:"score"`
	UpdatedAt string  `json:"updated_at,omitempty"`
}

// SearchDocumentsOutput is the output schema for the search_documents tool.
type SearchDocumentsOutput struct {
	Envelope
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// RunQueryInput is the input schema for the run_query tool.
type RunQueryInput struct {
	Query  string         `json:"query" jsonschema:"the raw lake query string to execute"`
	Params map[string]any `json:"params,omitempty" jsonschema:"named parameters referenced by the query"`
}

// RunQueryOutput is the output schema for the run_query tool.
type RunQueryOutput struct {
	Envelope
	Result json.RawMessage `json:"result,omitempty"`
}

// CreateDocumentInput is the input schema for the create_document tool.
type CreateDocumentInput struct {
	Kind        string            `json:"kind" jsonschema:"the document kind to create"`
	Fields      map[string]string `json:"fields,omitempty" jsonschema:"textual field values; rich-text fields are detected and encoded automatically"`
	ExtraFields string            `json:"extra_fields,omitempty" jsonschema:"a JSON object of additional fields written verbatim"`
}

// CreateDocumentOutput is the output schema for the create_document tool.
type CreateDocumentOutput struct {
	Envelope
	Document *DocumentOutput `json:"document,omitempty"`
}

// UpdateDocumentInput is the input schema for the update_document tool.
type UpdateDocumentInput struct {
	ID          string            `json:"id" jsonschema:"the document identity to update"`
	Fields      map[string]string `json:"fields,omitempty" jsonschema:"textual field values; rich-text fields are detected and encoded automatically"`
	ExtraFields string            `json:"extra_fields,omitempty" jsonschema:"a JSON object of additional fields written verbatim"`
}

// UpdateDocumentOutput is the output schema for the update_document tool.
type UpdateDocumentOutput struct {
	Envelope
	Document *DocumentOutput `json:"document,omitempty"`
}

// DeleteDocumentInput is the input schema for the delete_document tool.
type DeleteDocumentInput struct {
	ID string `json:"id" jsonschema:"the document identity; both draft and published variants are removed"`
}

// DeleteDocumentOutput is the output schema for the delete_document tool.
type DeleteDocumentOutput struct {
	Envelope
}

// PublishDocumentInput is the input schema for the publish_document tool.
type PublishDocumentInput struct {
	ID string `json:"id" jsonschema:"the document identity whose draft should be published"`
}

// PublishDocumentOutput is the output schema for the publish_document tool.
type PublishDocumentOutput struct {
	Envelope
	Document *DocumentOutput `json:"document,omitempty"`
}

// UnpublishDocumentInput is the input schema for the unpublish_document tool.
type UnpublishDocumentInput struct {
	ID string `json:"id" jsonschema:"the document identity to turn back into a draft"`
}

// UnpublishDocumentOutput is the output schema for the unpublish_document tool.
type UnpublishDocumentOutput struct {
	Envelope
	Document *DocumentOutput `json:"document,omitempty"`
}

// GetContextInput is the input schema for the get_context tool.
type GetContextInput struct {
	Query           string   `json:"query" jsonschema:"the natural-language query to assemble context for"`
	Kinds           []string `json:"kinds,omitempty" jsonschema:"restrict sources to these document kinds"`
	MaxResults      int      `json:"max_results,omitempty" jsonschema:"maximum number of source documents (default 10, capped at 20)"`
	MaxChars        int      `json:"max_chars,omitempty" jsonschema:"character budget across all context blocks; 0 means unlimited"`
	IncludeMetadata bool     `json:"include_metadata,omitempty" jsonschema:"prefix each source's first chunk with an attribution header"`
}

// GetContextOutput is the output schema for the get_context tool.
type GetContextOutput struct {
	Envelope
	Blocks      []domain.ContextBlock `json:"blocks"`
	TotalChunks int                   `json:"total_chunks"`
	TotalChars  int                   `json:"total_chars"`
	SourcesUsed int                   `json:"sources_used"`
}

// DescribeContentInput is the input schema for the describe_content tool.
type DescribeContentInput struct {
	Kind string `json:"kind,omitempty" jsonschema:"describe only this kind, in detail; empty summarises all kinds"`
}

// DescribeContentOutput is the output schema for the describe_content tool.
type DescribeContentOutput struct {
	Envelope
	Kinds []domain.KindSummary `json:"kinds"`
}

// CountDocumentsInput is the input schema for the count_documents tool.
type CountDocumentsInput struct {
	Kind string `json:"kind" jsonschema:"the document kind to count"`
}

// CountDocumentsOutput is the output schema for the count_documents tool.
type CountDocumentsOutput struct {
	Envelope
	Count int `json:"count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_document",
		Description: "Fetch a document by identity, falling back to its draft variant",
	}, s.handleGetDocument)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_documents",
		Description: "Run a ranked full-text search over lake documents",
	}, s.handleSearchDocuments)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "run_query",
		Description: "Execute a raw lake query string and return its result verbatim",
	}, s.handleRunQuery)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "create_document",
		Description: "Create a new draft document with schema-aware field encoding",
	}, s.handleCreateDocument)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "update_document",
		Description: "Update fields on an existing document",
	}, s.handleUpdateDocument)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "delete_document",
		Description: "Delete a document, removing both draft and published variants",
	}, s.handleDeleteDocument)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "publish_document",
		Description: "Publish a document's draft variant",
	}, s.handlePublishDocument)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "unpublish_document",
		Description: "Turn a published document back into a draft",
	}, s.handleUnpublishDocument)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_context",
		Description: "Assemble ranked, size-bounded context blocks for a query",
	}, s.handleGetContext)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "describe_content",
		Description: "Summarise the kinds, fields and recency of the lake's content",
	}, s.handleDescribeContent)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "count_documents",
		Description: "Count the documents of a kind",
	}, s.handleCountDocuments)
}

func (s *Server) handleGetDocument(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetDocumentInput,
) (*mcp.CallToolResult, GetDocumentOutput, error) {
	doc, err := s.ports.Document.Get(ctx, input.ID)
	if err != nil {
		return nil, GetDocumentOutput{Envelope: failed(err)}, nil
	}
	return nil, GetDocumentOutput{Envelope: ok(), Document: documentOutput(doc)}, nil
}

func (s *Server) handleSearchDocuments(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchDocumentsInput,
) (*mcp.CallToolResult, SearchDocumentsOutput, error) {
	docs, err := s.ports.Search.Search(ctx, input.Query, domain.SearchOptions{
		Kinds: input.Kinds,
		Limit: input.Limit,
	})
	if err != nil {
		return nil, SearchDocumentsOutput{Envelope: failed(err)}, nil
	}

	results := make([]SearchResultOutput, len(docs))
	for i := range docs {
		results[i] = SearchResultOutput{
			ID:    docs[i].ID,
			Kind:  docs[i].Kind,
			Title: docs[i].Title(),
			Score: docs[i].Score,
		}
		if !docs[i].UpdatedAt.IsZero() {
			results[i].UpdatedAt = docs[i].UpdatedAt.Format(time.RFC3339)
		}
	}

	return nil, SearchDocumentsOutput{Envelope: ok(), Results: results, Count: len(results)}, nil
}

func (s *Server) handleRunQuery(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RunQueryInput,
) (*mcp.CallToolResult, RunQueryOutput, error) {
	result, err := s.ports.Document.RunQuery(ctx, input.Query, input.Params)
	if err != nil {
		return nil, RunQueryOutput{Envelope: failed(err)}, nil
	}
	return nil, RunQueryOutput{Envelope: ok(), Result: result}, nil
}

func (s *Server) handleCreateDocument(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CreateDocumentInput,
) (*mcp.CallToolResult, CreateDocumentOutput, error) {
	doc, err := s.ports.Document.Create(ctx, input.Kind, input.Fields, input.ExtraFields)
	if err != nil {
		return nil, CreateDocumentOutput{Envelope: failed(err)}, nil
	}
	return nil, CreateDocumentOutput{Envelope: ok(), Document: documentOutput(doc)}, nil
}

func (s *Server) handleUpdateDocument(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input UpdateDocumentInput,
) (*mcp.CallToolResult, UpdateDocumentOutput, error) {
	doc, err := s.ports.Document.Update(ctx, input.ID, input.Fields, input.ExtraFields)
	if err != nil {
		return nil, UpdateDocumentOutput{Envelope: failed(err)}, nil
	}
	return nil, UpdateDocumentOutput{Envelope: ok(), Document: documentOutput(doc)}, nil
}

func (s *Server) handleDeleteDocument(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DeleteDocumentInput,
) (*mcp.CallToolResult, DeleteDocumentOutput, error) {
	if err := s.ports.Document.Delete(ctx, input.ID); err != nil {
		return nil, DeleteDocumentOutput{Envelope: failed(err)}, nil
	}
	return nil, DeleteDocumentOutput{Envelope: ok()}, nil
}

func (s *Server) handlePublishDocument(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input PublishDocumentInput,
) (*mcp.CallToolResult, PublishDocumentOutput, error) {
	doc, err := s.ports.Document.Publish(ctx, input.ID)
	if err != nil {
		return nil, PublishDocumentOutput{Envelope: failed(err)}, nil
	}
	return nil, PublishDocumentOutput{Envelope: ok(), Document: documentOutput(doc)}, nil
}

func (s *Server) handleUnpublishDocument(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input UnpublishDocumentInput,
) (*mcp.CallToolResult, UnpublishDocumentOutput, error) {
	doc, err := s.ports.Document.Unpublish(ctx, input.ID)
	if err != nil {
		return nil, UnpublishDocumentOutput{Envelope: failed(err)}, nil
	}
	return nil, UnpublishDocumentOutput{Envelope: ok(), Document: documentOutput(doc)}, nil
}

func (s *Server) handleGetContext(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetContextInput,
) (*mcp.CallToolResult, GetContextOutput, error) {
	result, err := s.ports.Context.Assemble(ctx, domain.ContextRequest{
		Query:           input.Query,
		Kinds:           input.Kinds,
		MaxResults:      input.MaxResults,
		MaxChars:        input.MaxChars,
		IncludeMetadata: input.IncludeMetadata,
	})
	if err != nil {
		return nil, GetContextOutput{Envelope: failed(err)}, nil
	}

	return nil, GetContextOutput{
		Envelope:    ok(),
		Blocks:      result.Blocks,
		TotalChunks: result.TotalChunks,
		TotalChars:  result.TotalChars,
		SourcesUsed: result.SourcesUsed,
	}, nil
}

func (s *Server) handleDescribeContent(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DescribeContentInput,
) (*mcp.CallToolResult, DescribeContentOutput, error) {
	if input.Kind != "" {
		summary, err := s.ports.Catalog.DescribeKind(ctx, input.Kind)
		if err != nil {
			return nil, DescribeContentOutput{Envelope: failed(err)}, nil
		}
		return nil, DescribeContentOutput{Envelope: ok(), Kinds: []domain.KindSummary{*summary}}, nil
	}

	catalog, err := s.ports.Catalog.DescribeAll(ctx)
	if err != nil {
		return nil, DescribeContentOutput{Envelope: failed(err)}, nil
	}
	return nil, DescribeContentOutput{Envelope: ok(), Kinds: catalog.Kinds}, nil
}

func (s *Server) handleCountDocuments(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CountDocumentsInput,
) (*mcp.CallToolResult, CountDocumentsOutput, error) {
	count, err := s.ports.Document.Count(ctx, input.Kind)
	if err != nil {
		return nil, CountDocumentsOutput{Envelope: failed(err)}, nil
	}
	return nil, CountDocumentsOutput{Envelope: ok(), Count: count}, nil
}
