package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/tidewater-labs/lakeview-cli/internal/core/domain"
	"github.com/tidewater-labs/lakeview-cli/internal/core/ports/driven"
	"github.com/tidewater-labs/lakeview-cli/internal/core/ports/driving"
	"github.com/tidewater-labs/lakeview-cli/internal/logger"
	"github.com/tidewater-labs/lakeview-cli/internal/postprocessors/chunker"
)

// Ensure ContextService implements the interface.
var _ driving.ContextService = (*ContextService)(nil)

// ContextService assembles ranked, budget-bounded context blocks from
// lake documents. Chunking and budget accounting are kept separate:
// the chunker is a pure function of text, and the budget is a fold
// over the ranked document list local to one Assemble call.
type ContextService struct {
	store             driven.ContentStore
	chunker           *chunker.Processor
	defaultMaxResults int
}

// ContextOption configures the context service.
type ContextOption func(*ContextService)

// WithDefaultMaxResults sets the result count used when a request
// leaves MaxResults unset.
func WithDefaultMaxResults(n int) ContextOption {
	return func(s *ContextService) {
		if n > 0 {
			s.defaultMaxResults = n
		}
	}
}

// NewContextService creates a new context service.
func NewContextService(store driven.ContentStore, proc *chunker.Processor, opts ...ContextOption) *ContextService {
	s := &ContextService{
		store:             store,
		chunker:           proc,
		defaultMaxResults: domain.DefaultMaxResults,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Assemble runs the full pipeline: ranked search, flattened-text
// fetch, per-document chunking, and a budget fold across ranked
// documents. Store failures abort the whole call; no partial result
// is returned.
func (s *ContextService) Assemble(ctx context.Context, req domain.ContextRequest) (*domain.ContextResult, error) {
	logger.Section("Context Assembly")
	logger.Debug("Query: %q, kinds: %v", req.Query, req.Kinds)

	query := strings.TrimSpace(req.Query)
	if query == "" {
		logger.Debug("Empty query, returning empty context")
		return &domain.ContextResult{}, nil
	}

	limit := req.MaxResults
	if limit <= 0 {
		limit = s.defaultMaxResults
	}
	if limit > domain.MaxContextSources {
		limit = domain.MaxContextSources
	}
	logger.Debug("Limit: %d, budget: %d chars", limit, req.MaxChars)

	ranked, err := s.store.Query(ctx, domain.Query{
		Kinds: req.Kinds,
		Match: &domain.TextMatch{
			Text:   query,
			Fields: domain.DefaultSearchFields(),
		},
		Order: domain.OrderScoreDesc,
		Limit: limit,
	})
	if err != nil {
		return nil, fmt.Errorf("rank documents: %w", err)
	}
	if len(ranked) == 0 {
		logger.Info("No documents matched %q", query)
		return &domain.ContextResult{}, nil
	}
	logger.Debug("Ranked %d documents", len(ranked))

	// The flatten projection is seeded from the shape of the best
	// match; the full fetch then carries server-side flattened text
	// for every ranked document.
	proj := domain.BuildFlattenProjection(ranked[0])

	ids := make([]string, len(ranked))
	for i := range ranked {
		ids[i] = ranked[i].ID
	}

	full, err := s.store.Query(ctx, domain.Query{
		IDs:        ids,
		Projection: &proj,
		Limit:      len(ids),
	})
	if err != nil {
		return nil, fmt.Errorf("fetch documents: %w", err)
	}

	byID := make(map[string]domain.Document, len(full))
	for _, doc := range full {
		byID[doc.ID] = doc
	}

	return s.fold(ranked, byID, proj, req), nil
}

// fold emits chunks across ranked documents under the character
// budget: rank order between documents, chunk order within one.
func (s *ContextService) fold(
	ranked []domain.Document,
	byID map[string]domain.Document,
	proj domain.Projection,
	req domain.ContextRequest,
) *domain.ContextResult {
	result := &domain.ContextResult{}
	sources := make(map[string]bool)

	remaining := req.MaxChars
	unlimited := req.MaxChars <= 0

	for _, r := range ranked {
		doc, ok := byID[r.ID]
		if !ok {
			logger.Warn("Ranked document %s missing from full fetch, skipping", r.ID)
			continue
		}

		text := domain.Flatten(doc, proj)
		if text == "" {
			logger.Debug("Document %s has no extractable text, skipping", doc.ID)
			continue
		}

		chunks := s.chunker.Chunk(text)
		total := len(chunks)

		for i, chunk := range chunks {
			if req.IncludeMetadata && i == 0 {
				chunk = sourceHeader(doc) + chunk
			}

			truncated := false
			if !unlimited {
				if remaining <= len(domain.Ellipsis) {
					return result
				}
				if len(chunk) > remaining {
					chunk = chunk[:remaining-len(domain.Ellipsis)] + domain.Ellipsis
					truncated = true
				}
			}

			result.Blocks = append(result.Blocks, domain.ContextBlock{
				SourceID:    doc.ID,
				SourceKind:  doc.Kind,
				Title:       doc.Title(),
				UpdatedAt:   doc.UpdatedAt,
				Score:       r.Score,
				ChunkIndex:  i,
				TotalChunks: total,
				Text:        chunk,
				CharCount:   len(chunk),
			})
			result.TotalChunks++
			result.TotalChars += len(chunk)
			if !sources[doc.ID] {
				sources[doc.ID] = true
				result.SourcesUsed++
			}

			if !unlimited {
				remaining -= len(chunk)
				if truncated || remaining <= 0 {
					return result
				}
			}
		}
	}

	return result
}

// sourceHeader renders the one-line attribution prefixed to the first
// chunk of a document. It counts against the budget like any text.
func sourceHeader(doc domain.Document) string {
	return fmt.Sprintf("[%s: %s (%s)]\n", doc.Kind, doc.Title(), doc.ID)
}
