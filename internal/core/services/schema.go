package services

import (
	"context"

	"github.com/tidewater-labs/lakeview-cli/internal/core/domain"
	"github.com/tidewater-labs/lakeview-cli/internal/core/ports/driven"
	"github.com/tidewater-labs/lakeview-cli/internal/core/ports/driving"
	"github.com/tidewater-labs/lakeview-cli/internal/logger"
)

// Ensure SchemaService implements the interface.
var _ driving.SchemaService = (*SchemaService)(nil)

// SchemaSampleSize is how many documents field-type inference samples.
const SchemaSampleSize = 3

// SchemaService infers field types by sampling existing documents.
// Inference is best-effort schema discovery, not a hard dependency:
// every failure degrades to TagUnknown and is only logged.
type SchemaService struct {
	store driven.ContentStore
}

// NewSchemaService creates a new schema service.
func NewSchemaService(store driven.ContentStore) *SchemaService {
	return &SchemaService{store: store}
}

// InferFieldType samples up to SchemaSampleSize documents of kind where
// field is defined and classifies the field's value on the first one.
func (s *SchemaService) InferFieldType(ctx context.Context, kind, field string) domain.TypeTag {
	if kind == "" || field == "" {
		return domain.TagUnknown
	}

	docs, err := s.store.Query(ctx, domain.Query{
		Kinds:        []string{kind},
		DefinedField: field,
		Limit:        SchemaSampleSize,
	})
	if err != nil {
		logger.Warn("Schema sampling failed for %s.%s: %v", kind, field, err)
		return domain.TagUnknown
	}
	if len(docs) == 0 {
		logger.Debug("Schema sampling: no documents of kind %q define %q", kind, field)
		return domain.TagUnknown
	}

	tag := domain.Classify(docs[0].Fields[field])
	logger.Debug("Schema sampling: %s.%s inferred as %s", kind, field, tag)
	return tag
}

// ResolveFieldValue decides how to write text into a field based on
// sampled data only, never on the field's name. A rich-text verdict
// encodes the text as blocks; everything else, including the
// no-samples case, keeps the plain string. Defaulting to string is the
// safer choice: it cannot corrupt a field that was meant to hold text.
func (s *SchemaService) ResolveFieldValue(ctx context.Context, kind, field, text string) any {
	if s.InferFieldType(ctx, kind, field) == domain.TagRichText {
		return domain.ToBlocks(text)
	}
	return text
}
