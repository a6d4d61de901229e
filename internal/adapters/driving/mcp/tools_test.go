package mcp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tidewater-labs/lakeview-cli/internal/core/domain"
)

func newTestServer(t *testing.T, ports *Ports) *Server {
	t.Helper()
	server, err := NewServer(ports)
	require.NoError(t, err)
	return server
}

func TestServer_handleGetDocument(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the document in the envelope", func(t *testing.T) {
		ports := validPorts()
		ports.Document = &mockDocumentService{document: &domain.Document{
			ID:        "drafts.a",
			Kind:      "article",
			UpdatedAt: time.Date(2026, 5, 2, 10, 0, 0, 0, time.UTC),
			Fields:    map[string]any{"title": "Alpha"},
		}}
		server := newTestServer(t, ports)

		_, output, err := server.handleGetDocument(ctx, nil, GetDocumentInput{ID: "a"})

		require.NoError(t, err)
		assert.True(t, output.Success)
		require.NotNil(t, output.Document)
		assert.Equal(t, "drafts.a", output.Document.ID)
		assert.Equal(t, "Alpha", output.Document.Title)
		assert.True(t, output.Document.Draft)
		assert.Equal(t, "2026-05-02T10:00:00Z", output.Document.UpdatedAt)
	})

	t.Run("not-found becomes an error envelope, not a Go error", func(t *testing.T) {
		ports := validPorts()
		ports.Document = &mockDocumentService{err: domain.ErrNotFound}
		server := newTestServer(t, ports)

		_, output, err := server.handleGetDocument(ctx, nil, GetDocumentInput{ID: "ghost"})

		require.NoError(t, err)
		assert.False(t, output.Success)
		assert.Contains(t, output.Error, "not found")
		assert.Nil(t, output.Document)
	})

	t.Run("unconfigured connection reports verbatim", func(t *testing.T) {
		ports := validPorts()
		ports.Document = &mockDocumentService{err: domain.ErrNotConfigured}
		server := newTestServer(t, ports)

		_, output, err := server.handleGetDocument(ctx, nil, GetDocumentInput{ID: "a"})

		require.NoError(t, err)
		assert.False(t, output.Success)
		assert.Equal(t, domain.ErrNotConfigured.Error(), output.Error)
	})
}

func TestServer_handleSearchDocuments(t *testing.T) {
	ctx := context.Background()

	t.Run("returns scored results", func(t *testing.T) {
		search := &mockSearchService{results: []domain.Document{
			{ID: "a", Kind: "article", Score: 2.5, Fields: map[string]any{"title": "Alpha"}},
			{ID: "b", Kind: "article", Score: 1.0, Fields: map[string]any{"title": "Beta"}},
		}}
		ports := validPorts()
		ports.Search = search
		server := newTestServer(t, ports)

		_, output, err := server.handleSearchDocuments(ctx, nil, SearchDocumentsInput{
			Query: "alpha",
			Kinds: []string{"article"},
			Limit: 5,
		})

		require.NoError(t, err)
		assert.True(t, output.Success)
		assert.Equal(t, 2, output.Count)
		assert.Equal(t, "Alpha", output.Results[0].Title)
		assert.Equal(t, 2.5, output.Results[0].Score)

		assert.Equal(t, "alpha", search.lastQuery)
		assert.Equal(t, []string{"article"}, search.lastOpts.Kinds)
		assert.Equal(t, 5, search.lastOpts.Limit)
	})

	t.Run("failure becomes an error envelope", func(t *testing.T) {
		ports := validPorts()
		ports.Search = &mockSearchService{err: errors.New("lake down")}
		server := newTestServer(t, ports)

		_, output, err := server.handleSearchDocuments(ctx, nil, SearchDocumentsInput{Query: "x"})

		require.NoError(t, err)
		assert.False(t, output.Success)
		assert.Contains(t, output.Error, "lake down")
	})
}

func TestServer_handleRunQuery(t *testing.T) {
	ctx := context.Background()

	t.Run("passes the result through verbatim", func(t *testing.T) {
		ports := validPorts()
		ports.Document = &mockDocumentService{raw: []byte(`[{"_id":"a"}]`)}
		server := newTestServer(t, ports)

		_, output, err := server.handleRunQuery(ctx, nil, RunQueryInput{Query: `*[_type == "article"]`})

		require.NoError(t, err)
		assert.True(t, output.Success)
		assert.JSONEq(t, `[{"_id":"a"}]`, string(output.Result))
	})

	t.Run("malformed query surfaces the lake's message", func(t *testing.T) {
		ports := validPorts()
		ports.Document = &mockDocumentService{err: errors.New("lake error (status 400): unexpected token")}
		server := newTestServer(t, ports)

		_, output, err := server.handleRunQuery(ctx, nil, RunQueryInput{Query: `*[`})

		require.NoError(t, err)
		assert.False(t, output.Success)
		assert.Contains(t, output.Error, "unexpected token")
	})
}

func TestServer_handleCreateDocument(t *testing.T) {
	ctx := context.Background()
	ports := validPorts()
	ports.Document = &mockDocumentService{document: &domain.Document{
		ID:     "drafts.x",
		Kind:   "article",
		Fields: map[string]any{"title": "New"},
	}}
	server := newTestServer(t, ports)

	_, output, err := server.handleCreateDocument(ctx, nil, CreateDocumentInput{
		Kind:   "article",
		Fields: map[string]string{"title": "New"},
	})

	require.NoError(t, err)
	assert.True(t, output.Success)
	assert.True(t, output.Document.Draft)
}

func TestServer_handleDeleteDocument(t *testing.T) {
	ctx := context.Background()

	t.Run("reports success", func(t *testing.T) {
		docs := &mockDocumentService{}
		ports := validPorts()
		ports.Document = docs
		server := newTestServer(t, ports)

		_, output, err := server.handleDeleteDocument(ctx, nil, DeleteDocumentInput{ID: "a"})

		require.NoError(t, err)
		assert.True(t, output.Success)
		assert.Equal(t, []string{"a"}, docs.deleted)
	})

	t.Run("missing document becomes an error envelope", func(t *testing.T) {
		ports := validPorts()
		ports.Document = &mockDocumentService{err: domain.ErrNotFound}
		server := newTestServer(t, ports)

		_, output, err := server.handleDeleteDocument(ctx, nil, DeleteDocumentInput{ID: "ghost"})

		require.NoError(t, err)
		assert.False(t, output.Success)
	})
}

func TestServer_handlePublishDocument(t *testing.T) {
	ctx := context.Background()
	docs := &mockDocumentService{document: &domain.Document{ID: "a", Kind: "article"}}
	ports := validPorts()
	ports.Document = docs
	server := newTestServer(t, ports)

	_, output, err := server.handlePublishDocument(ctx, nil, PublishDocumentInput{ID: "a"})

	require.NoError(t, err)
	assert.True(t, output.Success)
	assert.False(t, output.Document.Draft)
	assert.Equal(t, []string{"a"}, docs.published)
}

func TestServer_handleGetContext(t *testing.T) {
	ctx := context.Background()

	t.Run("maps the assembled result", func(t *testing.T) {
		contextSvc := &mockContextService{result: &domain.ContextResult{
			Blocks: []domain.ContextBlock{
				{SourceID: "a", Text: "chunk one", CharCount: 9, TotalChunks: 1},
			},
			TotalChunks: 1,
			TotalChars:  9,
			SourcesUsed: 1,
		}}
		ports := validPorts()
		ports.Context = contextSvc
		server := newTestServer(t, ports)

		_, output, err := server.handleGetContext(ctx, nil, GetContextInput{
			Query:           "tide charts",
			MaxResults:      2,
			MaxChars:        500,
			IncludeMetadata: true,
		})

		require.NoError(t, err)
		assert.True(t, output.Success)
		assert.Equal(t, 1, output.SourcesUsed)
		assert.Equal(t, 9, output.TotalChars)
		require.Len(t, output.Blocks, 1)

		assert.Equal(t, "tide charts", contextSvc.lastReq.Query)
		assert.Equal(t, 2, contextSvc.lastReq.MaxResults)
		assert.Equal(t, 500, contextSvc.lastReq.MaxChars)
		assert.True(t, contextSvc.lastReq.IncludeMetadata)
	})

	t.Run("assembly failure becomes an error envelope", func(t *testing.T) {
		ports := validPorts()
		ports.Context = &mockContextService{err: errors.New("rank documents: lake down")}
		server := newTestServer(t, ports)

		_, output, err := server.handleGetContext(ctx, nil, GetContextInput{Query: "x"})

		require.NoError(t, err)
		assert.False(t, output.Success)
		assert.Empty(t, output.Blocks)
	})
}

func TestServer_handleDescribeContent(t *testing.T) {
	ctx := context.Background()

	t.Run("single kind detail", func(t *testing.T) {
		ports := validPorts()
		ports.Catalog = &mockCatalogService{summary: &domain.KindSummary{Kind: "article", Count: 42}}
		server := newTestServer(t, ports)

		_, output, err := server.handleDescribeContent(ctx, nil, DescribeContentInput{Kind: "article"})

		require.NoError(t, err)
		assert.True(t, output.Success)
		require.Len(t, output.Kinds, 1)
		assert.Equal(t, 42, output.Kinds[0].Count)
	})

	t.Run("full catalog", func(t *testing.T) {
		ports := validPorts()
		ports.Catalog = &mockCatalogService{catalog: &domain.Catalog{Kinds: []domain.KindSummary{
			{Kind: "author"}, {Kind: "post"},
		}}}
		server := newTestServer(t, ports)

		_, output, err := server.handleDescribeContent(ctx, nil, DescribeContentInput{})

		require.NoError(t, err)
		assert.True(t, output.Success)
		assert.Len(t, output.Kinds, 2)
	})
}

func TestServer_handleCountDocuments(t *testing.T) {
	ctx := context.Background()
	ports := validPorts()
	ports.Document = &mockDocumentService{count: 7}
	server := newTestServer(t, ports)

	_, output, err := server.handleCountDocuments(ctx, nil, CountDocumentsInput{Kind: "article"})

	require.NoError(t, err)
	assert.True(t, output.Success)
	assert.Equal(t, 7, output.Count)
}
