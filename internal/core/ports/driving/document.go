package driving

import (
	"context"
	"encoding/json"

	"github.com/tidewater-labs/lakeview-cli/internal/core/domain"
)

// DocumentService manages documents in the content lake, applying
// schema-aware rich-text coercion on the write path.
type DocumentService interface {
	// Get fetches a document by identity. A published identity that
	// does not exist falls back to its draft variant.
	Get(ctx context.Context, id string) (*domain.Document, error)

	// Create stores a new draft document of the given kind. Textual
	// fields are coerced per the sampled schema; extraJSON carries
	// additional fields as a JSON object and is ignored with a log
	// line when unparsable.
	Create(ctx context.Context, kind string, fields map[string]string, extraJSON string) (*domain.Document, error)

	// Update patches an existing document with the given fields,
	// coerced the same way as Create.
	Update(ctx context.Context, id string, fields map[string]string, extraJSON string) (*domain.Document, error)

	// Delete removes both variants of a document identity. It is an
	// error when neither variant exists.
	Delete(ctx context.Context, id string) error

	// Publish turns the draft variant into the published one.
	Publish(ctx context.Context, id string) (*domain.Document, error)

	// Unpublish turns the published variant back into a draft.
	Unpublish(ctx context.Context, id string) (*domain.Document, error)

	// RunQuery executes a raw lake query string.
	RunQuery(ctx context.Context, query string, params map[string]any) (json.RawMessage, error)

	// Count returns the number of documents of a kind.
	Count(ctx context.Context, kind string) (int, error)
}
