package lake

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/tidewater-labs/lakeview-cli/internal/core/domain"
	"github.com/tidewater-labs/lakeview-cli/internal/core/ports/driven"
	"github.com/tidewater-labs/lakeview-cli/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.ContentStore = (*Store)(nil)

// Store implements the ContentStore port against a lake client.
type Store struct {
	client *Client
}

// New creates a new lake-backed content store.
func New(client *Client) *Store {
	return &Store{client: client}
}

// GetByID fetches one document by exact identity.
func (s *Store) GetByID(ctx context.Context, id string) (*domain.Document, error) {
	result, err := s.client.query(ctx, "*[_id == $__id][0]", map[string]any{"__id": id})
	if err != nil {
		return nil, err
	}
	if isNull(result) {
		return nil, domain.ErrNotFound
	}

	var raw map[string]any
	if err := json.Unmarshal(result, &raw); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	doc := decodeDocument(raw)
	return &doc, nil
}

// Query renders and runs a structured query.
func (s *Store) Query(ctx context.Context, q domain.Query) ([]domain.Document, error) {
	queryStr, params, err := render(q)
	if err != nil {
		return nil, err
	}
	logger.Debug("Lake query: %s", queryStr)

	result, err := s.client.query(ctx, queryStr, params)
	if err != nil {
		return nil, err
	}
	if isNull(result) {
		return nil, nil
	}

	var rawDocs []map[string]any
	if err := json.Unmarshal(result, &rawDocs); err != nil {
		return nil, fmt.Errorf("decode documents: %w", err)
	}

	docs := make([]domain.Document, len(rawDocs))
	for i, raw := range rawDocs {
		docs[i] = decodeDocument(raw)
	}
	return docs, nil
}

// Count counts the documents matching the query's filters.
func (s *Store) Count(ctx context.Context, q domain.Query) (int, error) {
	queryStr, params, err := renderCount(q)
	if err != nil {
		return 0, err
	}

	result, err := s.client.query(ctx, queryStr, params)
	if err != nil {
		return 0, err
	}

	var count int
	if err := json.Unmarshal(result, &count); err != nil {
		return 0, fmt.Errorf("decode count: %w", err)
	}
	return count, nil
}

// ListKinds returns the distinct document kinds in the dataset, sorted.
func (s *Store) ListKinds(ctx context.Context) ([]string, error) {
	result, err := s.client.query(ctx, "array::unique(*[]._type)", nil)
	if err != nil {
		return nil, err
	}

	var kinds []string
	if err := json.Unmarshal(result, &kinds); err != nil {
		return nil, fmt.Errorf("decode kinds: %w", err)
	}
	sort.Strings(kinds)
	return kinds, nil
}

// Create stores the document, replacing any existing document under
// the same identity.
func (s *Store) Create(ctx context.Context, doc *domain.Document) (*domain.Document, error) {
	resp, err := s.client.mutate(ctx, []map[string]any{
		{"createOrReplace": encodeDocument(doc)},
	})
	if err != nil {
		return nil, err
	}

	if len(resp.Results) > 0 && resp.Results[0].Document != nil {
		stored := decodeDocument(resp.Results[0].Document)
		return &stored, nil
	}
	return doc, nil
}

// Patch sets fields on an existing document.
func (s *Store) Patch(ctx context.Context, id string, set map[string]any) (*domain.Document, error) {
	resp, err := s.client.mutate(ctx, []map[string]any{
		{"patch": map[string]any{"id": id, "set": set}},
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Results) == 0 {
		return nil, domain.ErrNotFound
	}

	if resp.Results[0].Document != nil {
		patched := decodeDocument(resp.Results[0].Document)
		return &patched, nil
	}
	return s.GetByID(ctx, id)
}

// Delete removes the document with the exact identity.
func (s *Store) Delete(ctx context.Context, id string) error {
	resp, err := s.client.mutate(ctx, []map[string]any{
		{"delete": map[string]any{"id": id}},
	})
	if err != nil {
		return err
	}
	if len(resp.Results) == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Raw runs a caller-supplied query string verbatim.
func (s *Store) Raw(ctx context.Context, query string, params map[string]any) (json.RawMessage, error) {
	return s.client.query(ctx, query, params)
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}
