package lake

import (
	"time"

	"github.com/tidewater-labs/lakeview-cli/internal/core/domain"
)

// decodeDocument maps a raw lake record to a domain document. Known
// system fields populate the struct; unknown underscore-prefixed keys
// are dropped; everything else lands in Fields.
func decodeDocument(raw map[string]any) domain.Document {
	doc := domain.Document{Fields: make(map[string]any, len(raw))}
	for key, value := range raw {
		switch key {
		case "_id":
			doc.ID, _ = value.(string)
		case "_type":
			doc.Kind, _ = value.(string)
		case "_rev":
			doc.Rev, _ = value.(string)
		case "_createdAt":
			doc.CreatedAt = parseTime(value)
		case "_updatedAt":
			doc.UpdatedAt = parseTime(value)
		case "_score":
			doc.Score, _ = value.(float64)
		default:
			if !domain.IsSystemField(key) {
				doc.Fields[key] = value
			}
		}
	}
	return doc
}

// encodeDocument maps a domain document to the mutation payload shape.
// Lake-maintained fields (revision, timestamps) are never written.
func encodeDocument(doc *domain.Document) map[string]any {
	payload := make(map[string]any, len(doc.Fields)+2)
	for key, value := range doc.Fields {
		payload[key] = value
	}
	payload["_id"] = doc.ID
	payload["_type"] = doc.Kind
	return payload
}

func parseTime(value any) time.Time {
	s, ok := value.(string)
	if !ok {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
