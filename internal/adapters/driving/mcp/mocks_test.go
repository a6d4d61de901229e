package mcp

import (
	"context"
	"encoding/json"

	"github.com/tidewater-labs/lakeview-cli/internal/core/domain"
)

// mockDocumentService is a mock implementation of driving.DocumentService.
type mockDocumentService struct {
	document *domain.Document
	raw      json.RawMessage
	count    int
	err      error

	deleted   []string
	published []string
}

func (m *mockDocumentService) Get(_ context.Context, _ string) (*domain.Document, error) {
	return m.document, m.err
}

func (m *mockDocumentService) Create(_ context.Context, _ string, _ map[string]string, _ string) (*domain.Document, error) {
	return m.document, m.err
}

func (m *mockDocumentService) Update(_ context.Context, _ string, _ map[string]string, _ string) (*domain.Document, error) {
	return m.document, m.err
}

func (m *mockDocumentService) Delete(_ context.Context, id string) error {
	if m.err == nil {
		m.deleted = append(m.deleted, id)
	}
	return m.err
}

func (m *mockDocumentService) Publish(_ context.Context, id string) (*domain.Document, error) {
	if m.err == nil {
		m.published = append(m.published, id)
	}
	return m.document, m.err
}

func (m *mockDocumentService) Unpublish(_ context.Context, _ string) (*domain.Document, error) {
	return m.document, m.err
}

func (m *mockDocumentService) RunQuery(_ context.Context, _ string, _ map[string]any) (json.RawMessage, error) {
	return m.raw, m.err
}

func (m *mockDocumentService) Count(_ context.Context, _ string) (int, error) {
	return m.count, m.err
}

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	results []domain.Document
	err     error

	lastQuery string
	lastOpts  domain.SearchOptions
}

func (m *mockSearchService) Search(_ context.Context, query string, opts domain.SearchOptions) ([]domain.Document, error) {
	m.lastQuery = query
	m.lastOpts = opts
	return m.results, m.err
}

// mockContextService is a mock implementation of driving.ContextService.
type mockContextService struct {
	result *domain.ContextResult
	err    error

	lastReq domain.ContextRequest
}

func (m *mockContextService) Assemble(_ context.Context, req domain.ContextRequest) (*domain.ContextResult, error) {
	m.lastReq = req
	return m.result, m.err
}

// mockCatalogService is a mock implementation of driving.CatalogService.
type mockCatalogService struct {
	summary *domain.KindSummary
	catalog *domain.Catalog
	err     error
}

func (m *mockCatalogService) DescribeKind(_ context.Context, _ string) (*domain.KindSummary, error) {
	return m.summary, m.err
}

func (m *mockCatalogService) DescribeAll(_ context.Context) (*domain.Catalog, error) {
	return m.catalog, m.err
}

// validPorts returns a fully-populated Ports for tests that override
// individual services.
func validPorts() *Ports {
	return &Ports{
		Document: &mockDocumentService{},
		Search:   &mockSearchService{},
		Context:  &mockContextService{},
		Catalog:  &mockCatalogService{},
	}
}
