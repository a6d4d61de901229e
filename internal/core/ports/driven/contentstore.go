package driven

import (
	"context"
	"encoding/json"

	"github.com/tidewater-labs/lakeview-cli/internal/core/domain"
)

// ContentStore is the hosted content lake: the single external system
// the core reads documents from and writes documents to.
//
// Implementations translate domain.Query into the lake's query
// language; the core never builds query strings. All methods return
// domain.ErrNotConfigured when connection settings are incomplete and
// domain.ErrNotFound where a requested document is absent.
type ContentStore interface {
	// GetByID fetches one document by exact identity.
	GetByID(ctx context.Context, id string) (*domain.Document, error)

	// Query runs a structured query and returns matching documents.
	// With Order OrderScoreDesc the documents carry relevance scores.
	Query(ctx context.Context, q domain.Query) ([]domain.Document, error)

	// Count returns the number of documents matching the query.
	Count(ctx context.Context, q domain.Query) (int, error)

	// ListKinds returns the distinct document kinds present in the
	// dataset, sorted.
	ListKinds(ctx context.Context) ([]string, error)

	// Create stores a new document and returns the stored state.
	Create(ctx context.Context, doc *domain.Document) (*domain.Document, error)

	// Patch sets the given fields on an existing document and
	// returns the updated state.
	Patch(ctx context.Context, id string, set map[string]any) (*domain.Document, error)

	// Delete removes a document by identity.
	Delete(ctx context.Context, id string) error

	// Raw executes a caller-supplied query string verbatim. The lake
	// parses and executes it; malformed queries surface the lake's
	// own error message.
	Raw(ctx context.Context, query string, params map[string]any) (json.RawMessage, error)
}
