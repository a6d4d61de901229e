package cli

import (
	"context"
	"encoding/json"
	"os"

	"github.com/tidewater-labs/lakeview-cli/internal/adapters/driven/config/file"
	"github.com/tidewater-labs/lakeview-cli/internal/core/domain"
)

// mockDocumentService implements driving.DocumentService.
type mockDocumentService struct {
	document *domain.Document
	raw      json.RawMessage
	count    int
	err      error

	deleted     []string
	published   []string
	unpublished []string
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
	m.deleted = append(m.deleted, id)
	return m.err
}

func (m *mockDocumentService) Publish(_ context.Context, id string) (*domain.Document, error) {
	m.published = append(m.published, id)
	return m.document, m.err
}

func (m *mockDocumentService) Unpublish(_ context.Context, id string) (*domain.Document, error) {
	m.unpublished = append(m.unpublished, id)
	return m.document, m.err
}

func (m *mockDocumentService) RunQuery(_ context.Context, _ string, _ map[string]any) (json.RawMessage, error) {
	return m.raw, m.err
}

func (m *mockDocumentService) Count(_ context.Context, _ string) (int, error) {
	return m.count, m.err
}

// mockSearchService implements driving.SearchService.
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

// mockContextService implements driving.ContextService.
type mockContextService struct {
	result *domain.ContextResult
	err    error

	lastReq domain.ContextRequest
}

func (m *mockContextService) Assemble(_ context.Context, req domain.ContextRequest) (*domain.ContextResult, error) {
	m.lastReq = req
	if m.result == nil && m.err == nil {
		return &domain.ContextResult{}, nil
	}
	return m.result, m.err
}

// mockCatalogService implements driving.CatalogService.
type mockCatalogService struct {
	summary *domain.KindSummary
	catalog *domain.Catalog
	err     error
}

func (m *mockCatalogService) DescribeKind(_ context.Context, _ string) (*domain.KindSummary, error) {
	return m.summary, m.err
}

func (m *mockCatalogService) DescribeAll(_ context.Context) (*domain.Catalog, error) {
	if m.catalog == nil && m.err == nil {
		return &domain.Catalog{}, nil
	}
	return m.catalog, m.err
}

// mockSchemaService implements driving.SchemaService.
type mockSchemaService struct{}

func (m *mockSchemaService) InferFieldType(_ context.Context, _, _ string) domain.TypeTag {
	return domain.TagUnknown
}

func (m *mockSchemaService) ResolveFieldValue(_ context.Context, _, _, text string) any {
	return text
}

// testMocks bundles the mocks installed by setupTestServices.
type testMocks struct {
	document *mockDocumentService
	search   *mockSearchService
	context  *mockContextService
	catalog  *mockCatalogService
}

// setupTestServices swaps the command's services for mocks and points
// the config store at a throwaway directory. The returned cleanup
// restores everything.
func setupTestServices() (*testMocks, func()) {
	mocks := &testMocks{
		document: &mockDocumentService{},
		search:   &mockSearchService{},
		context:  &mockContextService{},
		catalog:  &mockCatalogService{},
	}

	dir, _ := os.MkdirTemp("", "lakeview-cli-test")
	store, _ := file.NewConfigStore(dir)

	servicesMu.Lock()
	previous := current
	current = serviceSet{
		document: mocks.document,
		search:   mocks.search,
		context:  mocks.context,
		catalog:  mocks.catalog,
		schema:   &mockSchemaService{},
	}
	servicesMu.Unlock()

	previousStore := configStore
	configStore = store

	cleanup := func() {
		servicesMu.Lock()
		current = previous
		servicesMu.Unlock()
		configStore = previousStore
		_ = os.RemoveAll(dir)
	}
	return mocks, cleanup
}
