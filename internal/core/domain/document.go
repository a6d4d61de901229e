package domain

import (
	"sort"
	"strings"
	"time"
)

// DraftPrefix marks the draft variant of a document identity.
// "drafts.abc" is the draft of the published document "abc"; at most
// one of each may exist under the same base identity.
const DraftPrefix = "drafts."

// Document represents a single content-lake document: a mapping of
// named fields to loosely typed values, plus the system fields the
// lake maintains on every record.
//
// Field values are the JSON shapes the lake returns: string, float64,
// bool, nil, map[string]any and []any.
type Document struct {
	// ID is the document identity, including any draft prefix.
	ID string

	// Kind is the document type name (e.g., "post", "author").
	Kind string

	// Rev is the revision token of the fetched state.
	Rev string

	// CreatedAt is when the document was first created in the lake.
	CreatedAt time.Time

	// UpdatedAt is when the document was last mutated.
	UpdatedAt time.Time

	// Score is the relevance score attached by a ranked query.
	// Zero for documents fetched outside a ranked search.
	Score float64

	// Fields holds the user-defined fields, system fields excluded.
	Fields map[string]any
}

// IsDraft reports whether the document identity is the draft variant.
func (d *Document) IsDraft() bool {
	return strings.HasPrefix(d.ID, DraftPrefix)
}

// BaseID returns the identity without the draft prefix.
func (d *Document) BaseID() string {
	return strings.TrimPrefix(d.ID, DraftPrefix)
}

// Title returns a human-readable title for the document, preferring
// the conventional title-like fields, falling back to the identity.
func (d *Document) Title() string {
	for _, name := range []string{"title", "name"} {
		if s, ok := d.Fields[name].(string); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}
	return d.ID
}

// FieldNames returns the user-defined field names in sorted order.
// Sorting keeps flattening and classification deterministic; the lake
// itself does not guarantee a field order.
func (d *Document) FieldNames() []string {
	names := make([]string, 0, len(d.Fields))
	for name := range d.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DraftID returns the draft variant of an identity.
func DraftID(id string) string {
	if strings.HasPrefix(id, DraftPrefix) {
		return id
	}
	return DraftPrefix + id
}

// PublishedID returns the published variant of an identity.
func PublishedID(id string) string {
	return strings.TrimPrefix(id, DraftPrefix)
}

// IsSystemField reports whether a field name is lake-managed metadata
// rather than user content. All underscore-prefixed names are treated
// as system fields.
func IsSystemField(name string) bool {
	return strings.HasPrefix(name, "_")
}
