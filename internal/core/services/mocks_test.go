package services

import (
	"context"
	"encoding/json"

	"github.com/tidewater-labs/lakeview-cli/internal/core/domain"
)

// mockContentStore is a mock implementation of driven.ContentStore.
// queryFn, when set, takes precedence over the canned queryResults so
// tests can answer multi-round-trip flows.
type mockContentStore struct {
	docs map[string]*domain.Document
	get  struct {
		err error
	}

	queryFn      func(q domain.Query) ([]domain.Document, error)
	queryResults []domain.Document
	queryErr     error
	queries      []domain.Query

	count    int
	countErr error

	kinds    []string
	kindsErr error

	created   []*domain.Document
	createErr error

	patched  map[string]any
	patchErr error

	deleted   []string
	deleteErr error

	raw    json.RawMessage
	rawErr error
}

func (m *mockContentStore) GetByID(_ context.Context, id string) (*domain.Document, error) {
	if m.get.err != nil {
		return nil, m.get.err
	}
	if doc, ok := m.docs[id]; ok {
		return doc, nil
	}
	return nil, domain.ErrNotFound
}

func (m *mockContentStore) Query(_ context.Context, q domain.Query) ([]domain.Document, error) {
	m.queries = append(m.queries, q)
	if m.queryFn != nil {
		return m.queryFn(q)
	}
	return m.queryResults, m.queryErr
}

func (m *mockContentStore) Count(_ context.Context, _ domain.Query) (int, error) {
	return m.count, m.countErr
}

func (m *mockContentStore) ListKinds(_ context.Context) ([]string, error) {
	return m.kinds, m.kindsErr
}

func (m *mockContentStore) Create(_ context.Context, doc *domain.Document) (*domain.Document, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.created = append(m.created, doc)
	return doc, nil
}

func (m *mockContentStore) Patch(_ context.Context, id string, set map[string]any) (*domain.Document, error) {
	if m.patchErr != nil {
		return nil, m.patchErr
	}
	m.patched = set
	doc := &domain.Document{ID: id, Fields: set}
	return doc, nil
}

func (m *mockContentStore) Delete(_ context.Context, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if m.docs != nil {
		if _, ok := m.docs[id]; !ok {
			return domain.ErrNotFound
		}
		delete(m.docs, id)
	}
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockContentStore) Raw(_ context.Context, _ string, _ map[string]any) (json.RawMessage, error) {
	return m.raw, m.rawErr
}
