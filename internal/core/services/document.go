package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/tidewater-labs/lakeview-cli/internal/core/domain"
	"github.com/tidewater-labs/lakeview-cli/internal/core/ports/driven"
	"github.com/tidewater-labs/lakeview-cli/internal/core/ports/driving"
	"github.com/tidewater-labs/lakeview-cli/internal/logger"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService manages lake documents. Writes go through the schema
// service so that textual values land in rich-text fields as block
// content and everywhere else as plain strings.
type DocumentService struct {
	store  driven.ContentStore
	schema driving.SchemaService
}

// NewDocumentService creates a new document service.
func NewDocumentService(store driven.ContentStore, schema driving.SchemaService) *DocumentService {
	return &DocumentService{store: store, schema: schema}
}

// Get fetches a document by identity. A published identity with no
// published variant falls back to the draft variant.
func (s *DocumentService) Get(ctx context.Context, id string) (*domain.Document, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: document id is required", domain.ErrInvalidInput)
	}

	doc, err := s.store.GetByID(ctx, id)
	if err == nil {
		return doc, nil
	}
	if !errors.Is(err, domain.ErrNotFound) || id == domain.DraftID(id) {
		return nil, err
	}

	logger.Debug("Document %s not found, trying draft variant", id)
	return s.store.GetByID(ctx, domain.DraftID(id))
}

// Create stores a new draft document of the given kind.
func (s *DocumentService) Create(ctx context.Context, kind string, fields map[string]string, extraJSON string) (*domain.Document, error) {
	if kind == "" {
		return nil, domain.ErrKindRequired
	}

	resolved := s.resolveFields(ctx, kind, fields)
	for name, value := range s.parseExtraFields(extraJSON) {
		if _, clash := resolved[name]; !clash {
			resolved[name] = value
		}
	}

	doc := &domain.Document{
		ID:     domain.DraftID(uuid.NewString()),
		Kind:   kind,
		Fields: resolved,
	}

	created, err := s.store.Create(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("create %s document: %w", kind, err)
	}
	logger.Info("Created %s draft %s", kind, created.ID)
	return created, nil
}

// Update patches an existing document, resolving textual fields
// against the sampled schema of the document's kind.
func (s *DocumentService) Update(ctx context.Context, id string, fields map[string]string, extraJSON string) (*domain.Document, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	set := s.resolveFields(ctx, existing.Kind, fields)
	for name, value := range s.parseExtraFields(extraJSON) {
		if _, clash := set[name]; !clash {
			set[name] = value
		}
	}
	if len(set) == 0 {
		return nil, fmt.Errorf("%w: no fields to update", domain.ErrInvalidInput)
	}

	updated, err := s.store.Patch(ctx, existing.ID, set)
	if err != nil {
		return nil, fmt.Errorf("patch document %s: %w", existing.ID, err)
	}
	return updated, nil
}

// Delete removes both variants of the identity. Deleting is
// successful when at least one variant existed.
func (s *DocumentService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: document id is required", domain.ErrInvalidInput)
	}

	deleted := 0
	for _, variant := range []string{domain.PublishedID(id), domain.DraftID(id)} {
		err := s.store.Delete(ctx, variant)
		switch {
		case err == nil:
			deleted++
		case errors.Is(err, domain.ErrNotFound):
			// The other variant may still exist.
		default:
			return fmt.Errorf("delete document %s: %w", variant, err)
		}
	}

	if deleted == 0 {
		return domain.ErrNotFound
	}
	logger.Info("Deleted %d variant(s) of %s", deleted, domain.PublishedID(id))
	return nil
}

// Publish replaces the published variant with the draft's content and
// removes the draft.
func (s *DocumentService) Publish(ctx context.Context, id string) (*domain.Document, error) {
	draft, err := s.store.GetByID(ctx, domain.DraftID(id))
	if err != nil {
		return nil, fmt.Errorf("fetch draft: %w", err)
	}

	published := &domain.Document{
		ID:     domain.PublishedID(id),
		Kind:   draft.Kind,
		Fields: draft.Fields,
	}

	stored, err := s.store.Create(ctx, published)
	if err != nil {
		return nil, fmt.Errorf("publish document %s: %w", published.ID, err)
	}

	if err := s.store.Delete(ctx, draft.ID); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("remove draft %s: %w", draft.ID, err)
	}

	logger.Info("Published %s", stored.ID)
	return stored, nil
}

// Unpublish turns the published variant back into a draft.
func (s *DocumentService) Unpublish(ctx context.Context, id string) (*domain.Document, error) {
	published, err := s.store.GetByID(ctx, domain.PublishedID(id))
	if err != nil {
		return nil, fmt.Errorf("fetch published document: %w", err)
	}

	draft := &domain.Document{
		ID:     domain.DraftID(id),
		Kind:   published.Kind,
		Fields: published.Fields,
	}

	stored, err := s.store.Create(ctx, draft)
	if err != nil {
		return nil, fmt.Errorf("create draft %s: %w", draft.ID, err)
	}

	if err := s.store.Delete(ctx, published.ID); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("remove published %s: %w", published.ID, err)
	}

	logger.Info("Unpublished %s", published.ID)
	return stored, nil
}

// RunQuery executes a raw lake query verbatim.
func (s *DocumentService) RunQuery(ctx context.Context, query string, params map[string]any) (json.RawMessage, error) {
	if query == "" {
		return nil, fmt.Errorf("%w: query is required", domain.ErrInvalidInput)
	}
	return s.store.Raw(ctx, query, params)
}

// Count returns the number of documents of a kind.
func (s *DocumentService) Count(ctx context.Context, kind string) (int, error) {
	if kind == "" {
		return 0, domain.ErrKindRequired
	}
	return s.store.Count(ctx, domain.Query{Kinds: []string{kind}})
}

// resolveFields runs each textual field through schema-aware
// resolution.
func (s *DocumentService) resolveFields(ctx context.Context, kind string, fields map[string]string) map[string]any {
	resolved := make(map[string]any, len(fields))
	for name, text := range fields {
		resolved[name] = s.schema.ResolveFieldValue(ctx, kind, name, text)
	}
	return resolved
}

// parseExtraFields decodes the caller-supplied extra-fields JSON
// object. Malformed input is logged and ignored; the operation
// proceeds without the extra fields.
func (s *DocumentService) parseExtraFields(extraJSON string) map[string]any {
	if extraJSON == "" {
		return nil
	}

	var extra map[string]any
	if err := json.Unmarshal([]byte(extraJSON), &extra); err != nil {
		logger.Warn("Ignoring unparsable extra fields: %v", err)
		return nil
	}
	return extra
}
