package domain

import "time"

// MaxContextSources is the hard ceiling on source documents per
// context assembly, regardless of what a caller requests.
const MaxContextSources = 20

// Ellipsis marks truncated or hard-split text.
const Ellipsis = "..."

// ContextRequest describes one context-assembly invocation.
type ContextRequest struct {
	// Query is the natural-language search text.
	Query string

	// Kinds restricts the search to specific document kinds.
	// Empty means all kinds.
	Kinds []string

	// MaxResults is the maximum number of source documents.
	// Values above MaxContextSources are capped; zero or negative
	// falls back to the configured default.
	MaxResults int

	// MaxChars is the global character budget across all emitted
	// blocks. Zero means unlimited.
	MaxChars int

	// IncludeMetadata prefixes the first chunk of each document
	// with a one-line source header.
	IncludeMetadata bool
}

// ContextBlock is one ranked, attributed, size-bounded unit of text
// produced by context assembly.
type ContextBlock struct {
	// SourceID is the identity of the originating document.
	SourceID string `json:"source_id"`

	// SourceKind is the originating document's kind.
	SourceKind string `json:"source_kind"`

	// Title is the originating document's display title.
	Title string `json:"title"`

	// UpdatedAt is the originating document's last update time.
	UpdatedAt time.Time `json:"updated_at"`

	// Score is the source's relevance score for the query.
	Score float64 `json:"relevance_score"`

	// ChunkIndex is the 0-based position within the source's chunks.
	ChunkIndex int `json:"chunk_index"`

	// TotalChunks is the source's total chunk count.
	TotalChunks int `json:"total_chunks"`

	// Text is the chunk content, including any metadata header.
	Text string `json:"text"`

	// CharCount equals len(Text) and is what budget accounting uses.
	CharCount int `json:"char_count"`
}

// ContextResult is the outcome of one context assembly.
type ContextResult struct {
	// Blocks are emitted in descending source relevance order, and
	// within a source in ascending chunk order.
	Blocks []ContextBlock `json:"blocks"`

	// TotalChunks is the number of emitted blocks.
	TotalChunks int `json:"total_chunks"`

	// TotalChars is the sum of CharCount over all emitted blocks.
	// Never exceeds the requested budget when one was set.
	TotalChars int `json:"total_chars"`

	// SourcesUsed is the number of distinct documents contributing
	// at least one block.
	SourcesUsed int `json:"sources_used"`
}
