package driving

import (
	"context"

	"github.com/tidewater-labs/lakeview-cli/internal/core/domain"
)

// ContextService assembles ranked, size-bounded context from the
// content lake for LLM consumption.
type ContextService interface {
	// Assemble searches for documents matching the request's query,
	// flattens and chunks their text, and emits context blocks under
	// the request's character budget. No matches yield an empty
	// result, not an error; any store failure aborts the whole call.
	Assemble(ctx context.Context, req domain.ContextRequest) (*domain.ContextResult, error)
}
