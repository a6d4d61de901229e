// Package mcp provides an MCP (Model Context Protocol) server adapter
// for Lakeview. It exposes the content lake to AI assistants as tools
// and resources.
//
// Tool handlers report operational failures inside the output envelope
// (success false, error message) rather than as protocol errors, so a
// calling model always receives structured output it can reason about.
package mcp

import "errors"

// Required-port errors.
var (
	ErrMissingDocumentService = errors.New("mcp: document service is required")
	ErrMissingSearchService   = errors.New("mcp: search service is required")
	ErrMissingContextService  = errors.New("mcp: context service is required")
	ErrMissingCatalogService  = errors.New("mcp: catalog service is required")
)
