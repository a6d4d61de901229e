package mcp

import (
	"github.com/tidewater-labs/lakeview-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP
// server. This provides a single injection point for dependency
// injection.
type Ports struct {
	// Document manages lake documents.
	Document driving.DocumentService

	// Search provides ranked full-text search.
	Search driving.SearchService

	// Context assembles ranked context for LLM consumption.
	Context driving.ContextService

	// Catalog reports the shape of the lake's content.
	Catalog driving.CatalogService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Document == nil {
		return ErrMissingDocumentService
	}
	if p.Search == nil {
		return ErrMissingSearchService
	}
	if p.Context == nil {
		return ErrMissingContextService
	}
	if p.Catalog == nil {
		return ErrMissingCatalogService
	}
	return nil
}
