package driving

import (
	"context"

	"github.com/tidewater-labs/lakeview-cli/internal/core/domain"
)

// CatalogService reports the shape of the content in the lake.
type CatalogService interface {
	// DescribeKind samples one kind in detail, including the average
	// flattened-text length of recent documents.
	DescribeKind(ctx context.Context, kind string) (*domain.KindSummary, error)

	// DescribeAll summarises every known kind. Per-kind detail omits
	// the average-length computation for cost reasons.
	DescribeAll(ctx context.Context) (*domain.Catalog, error)
}
