// Package domain defines the core business entities for Lakeview.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A schema-less content-lake document
//   - TypeTag: A semantic type inferred from a sampled field value
//   - Block/Span: The portable rich-text representation
//   - ContextBlock: A ranked, attributed unit of assembled context
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
