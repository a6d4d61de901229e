package domain

// QueryOrder selects the ordering of query results.
type QueryOrder int

const (
	// OrderNone leaves results in lake order.
	OrderNone QueryOrder = iota

	// OrderScoreDesc ranks results by boosted relevance score,
	// highest first. Requires a text match.
	OrderScoreDesc

	// OrderUpdatedDesc returns the most recently updated first.
	OrderUpdatedDesc
)

// BoostedField names a searchable field and its relevance weight.
// Weight 1 is baseline; higher weights boost matches in that field.
type BoostedField struct {
	Name   string
	Weight float64
}

// DefaultSearchFields is the textual field set ranked queries match
// against. Title-like fields weigh highest, descriptions next,
// body-like fields baseline. The exact multipliers are tunable; only
// the relative ordering is contractual.
func DefaultSearchFields() []BoostedField {
	return []BoostedField{
		{Name: "title", Weight: 3},
		{Name: "name", Weight: 3},
		{Name: "description", Weight: 2},
		{Name: "body", Weight: 1},
		{Name: "content", Weight: 1},
		{Name: "text", Weight: 1},
	}
}

// TextMatch is a full-text condition over a weighted field list.
type TextMatch struct {
	// Text is the search text.
	Text string

	// Fields are the fields to match, with boost weights.
	Fields []BoostedField
}

// SearchOptions tunes a ranked document search.
type SearchOptions struct {
	// Kinds restricts the search to specific document kinds.
	Kinds []string

	// Limit caps the number of results. Zero uses the default.
	Limit int
}

// Query is the structured filter the core hands to the content store.
// The store adapter renders it into the lake's query language; the
// core never builds query strings itself.
type Query struct {
	// Kinds restricts results to these document kinds. Empty means
	// any kind.
	Kinds []string

	// IDs restricts results to these identities.
	IDs []string

	// DefinedField keeps only documents where this field is set.
	// Used by schema sampling.
	DefinedField string

	// Match adds a full-text condition.
	Match *TextMatch

	// Projection requests server-side flattened text for rich-text
	// fields alongside the regular values.
	Projection *Projection

	// Order selects the result ordering.
	Order QueryOrder

	// Limit caps the number of results. Zero means the adapter's
	// default cap.
	Limit int
}
