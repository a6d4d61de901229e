package domain

import "time"

// CatalogSampleSize is how many recent documents a kind summary samples.
const CatalogSampleSize = 5

// CatalogFlattenSamples is how many samples feed the average
// flattened-text length in detail mode.
const CatalogFlattenSamples = 3

// FieldInfo describes one field observed while sampling a kind.
type FieldInfo struct {
	// Name is the field name.
	Name string `json:"name"`

	// Type is the first non-unknown classification seen across
	// samples.
	Type TypeTag `json:"type"`
}

// DocumentSample identifies one sampled document.
type DocumentSample struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// KindSummary reports what sampling revealed about one document kind.
type KindSummary struct {
	// Kind is the document type name.
	Kind string `json:"kind"`

	// Count is the total number of documents of this kind.
	Count int `json:"count"`

	// Fields lists observed fields sorted by name.
	Fields []FieldInfo `json:"fields"`

	// SearchableFields is the subset of non-system fields whose
	// type is string or rich-text.
	SearchableFields []string `json:"searchable_fields"`

	// EarliestUpdated and LatestUpdated bound the sampled
	// documents' update timestamps.
	EarliestUpdated time.Time `json:"earliest_updated"`
	LatestUpdated   time.Time `json:"latest_updated"`

	// AvgContentLength is the average flattened-text length over
	// recent samples. Only computed in single-kind detail mode.
	AvgContentLength int `json:"avg_content_length,omitempty"`

	// Samples are representative recent documents.
	Samples []DocumentSample `json:"samples"`
}

// Catalog is the summary across all known kinds.
type Catalog struct {
	Kinds []KindSummary `json:"kinds"`
}
