package domain

import (
	"math"
	"regexp"
)

// TypeTag is the semantic type inferred from a sampled field value.
// Tags are derived, never stored; they are recomputed per sample.
type TypeTag string

// Known type tags. Array element tags are composed dynamically as
// "array-of-<kind>" via ArrayOf.
const (
	TagUnknown   TypeTag = "unknown"
	TagString    TypeTag = "string"
	TagDatetime  TypeTag = "datetime"
	TagInteger   TypeTag = "integer"
	TagNumber    TypeTag = "number"
	TagBoolean   TypeTag = "boolean"
	TagSlug      TypeTag = "slug"
	TagImage     TypeTag = "image"
	TagReference TypeTag = "reference"
	TagRichText  TypeTag = "rich-text"
	TagObject    TypeTag = "object"
	TagArray     TypeTag = "array"
)

// ArrayOf composes the tag for an array of the given element kind.
func ArrayOf(kind string) TypeTag {
	return TypeTag("array-of-" + kind)
}

// IsSearchable reports whether fields of this type participate in
// full-text search: plain strings and rich-text content.
func (t TypeTag) IsSearchable() bool {
	return t == TagString || t == TagRichText
}

// String returns the string representation.
func (t TypeTag) String() string {
	return string(t)
}

// datetimePattern matches an ISO-date-like prefix: YYYY-MM-DD,
// optionally followed by THH:MM. Anything after the prefix (seconds,
// zone offset) is accepted.
var datetimePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}(T\d{2}:\d{2})?`)

// Classify infers the semantic type of one sampled field value.
//
// It is total: every JSON shape the lake can return maps to a tag,
// and no input panics or errors. Shape predicates are checked in a
// fixed priority order so classification is deterministic.
func Classify(value any) TypeTag {
	switch v := value.(type) {
	case nil:
		return TagUnknown
	case string:
		if datetimePattern.MatchString(v) {
			return TagDatetime
		}
		return TagString
	case bool:
		return TagBoolean
	case float64:
		// JSON numbers decode as float64; whole values are integers.
		if v == math.Trunc(v) {
			return TagInteger
		}
		return TagNumber
	case int:
		return TagInteger
	case int64:
		return TagInteger
	case []any:
		return classifySequence(v)
	case map[string]any:
		return classifyMapping(v)
	default:
		return TagUnknown
	}
}

// classifySequence tags an array by the discriminator of its first
// element. Rich-text content is an array of "block" mappings.
func classifySequence(seq []any) TypeTag {
	if len(seq) == 0 {
		return TagArray
	}

	first, ok := seq[0].(map[string]any)
	if !ok {
		return ArrayOf("objects")
	}

	switch discriminator(first) {
	case "block":
		return TagRichText
	case "reference":
		return ArrayOf("reference")
	case "":
		return ArrayOf("objects")
	default:
		return ArrayOf(discriminator(first))
	}
}

// classifyMapping tags an object by its discriminator, recognising the
// well-known lake object shapes first.
func classifyMapping(m map[string]any) TypeTag {
	switch discriminator(m) {
	case "slug":
		return TagSlug
	case "image":
		return TagImage
	case "reference":
		return TagReference
	}

	// Image fields sometimes omit the discriminator but always carry
	// an asset sub-object.
	if _, ok := m["asset"].(map[string]any); ok {
		return TagImage
	}

	if d := discriminator(m); d != "" {
		return TypeTag(d)
	}
	return TagObject
}

// discriminator returns the mapping's _type value, if any.
func discriminator(m map[string]any) string {
	s, _ := m["_type"].(string)
	return s
}
