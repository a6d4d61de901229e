package driving

import (
	"context"

	"github.com/tidewater-labs/lakeview-cli/internal/core/domain"
)

// SchemaService infers field types from existing documents and decides
// how textual field values should be written.
type SchemaService interface {
	// InferFieldType samples existing documents of kind to determine
	// the dominant type of field. Best-effort: sampling failures and
	// empty kinds yield TagUnknown, never an error.
	InferFieldType(ctx context.Context, kind, field string) domain.TypeTag

	// ResolveFieldValue decides how to write text into a field: a
	// rich-text verdict encodes it as blocks, anything else passes
	// the text through unchanged. Fields with no sampled documents
	// default to plain string.
	ResolveFieldValue(ctx context.Context, kind, field, text string) any
}
