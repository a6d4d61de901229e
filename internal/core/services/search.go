package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/tidewater-labs/lakeview-cli/internal/core/domain"
	"github.com/tidewater-labs/lakeview-cli/internal/core/ports/driven"
	"github.com/tidewater-labs/lakeview-cli/internal/core/ports/driving"
	"github.com/tidewater-labs/lakeview-cli/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// Search result limits.
const (
	DefaultSearchLimit = 10
	MaxSearchLimit     = 100
)

// SearchService runs ranked full-text searches over the lake.
type SearchService struct {
	store driven.ContentStore
}

// NewSearchService creates a new search service.
func NewSearchService(store driven.ContentStore) *SearchService {
	return &SearchService{store: store}
}

// Search runs a ranked search against the default searchable fields.
func (s *SearchService) Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.Document, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	if limit > MaxSearchLimit {
		limit = MaxSearchLimit
	}

	docs, err := s.store.Query(ctx, domain.Query{
		Kinds: opts.Kinds,
		Match: &domain.TextMatch{
			Text:   query,
			Fields: domain.DefaultSearchFields(),
		},
		Order: domain.OrderScoreDesc,
		Limit: limit,
	})
	if err != nil {
		return nil, fmt.Errorf("search documents: %w", err)
	}

	logger.Debug("Search %q matched %d documents", query, len(docs))
	return docs, nil
}
