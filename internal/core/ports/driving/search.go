package driving

import (
	"context"

	"github.com/tidewater-labs/lakeview-cli/internal/core/domain"
)

// SearchService provides ranked full-text search over lake documents.
type SearchService interface {
	// Search runs a ranked search and returns matching documents,
	// highest relevance first, with scores attached. A blank query
	// yields an empty result.
	Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.Document, error)
}
