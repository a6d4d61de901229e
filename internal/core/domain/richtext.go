package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// Span is one inline run of text inside a rich-text block. Marks hold
// formatting names; the write path never emits any.
type Span struct {
	Key   string   `json:"_key"`
	Type  string   `json:"_type"`
	Text  string   `json:"text"`
	Marks []string `json:"marks"`
}

// Block is one paragraph-level node of rich-text content. The codec is
// lossy in both directions: writing produces plain unmarked paragraphs
// and flattening discards styles and marks.
type Block struct {
	Key      string `json:"_key"`
	Type     string `json:"_type"`
	Style    string `json:"style"`
	Children []Span `json:"children"`
	MarkDefs []any  `json:"markDefs"`
}

// FlatField maps a rich-text source field to the derived key under
// which the lake returns its server-side flattened text.
type FlatField struct {
	// Source is the rich-text field name.
	Source string

	// Alias is the derived projection key (source + "Text").
	Alias string
}

// Projection asks the lake to compute flattened text for rich-text
// fields alongside the regular field values. An empty projection is a
// pass-through fetch.
type Projection struct {
	Flat []FlatField
}

// IsPassthrough reports whether the projection requests no derived
// fields.
func (p Projection) IsPassthrough() bool {
	return len(p.Flat) == 0
}

// AliasFor returns the derived key for a rich-text source field.
func (p Projection) AliasFor(field string) (string, bool) {
	for _, f := range p.Flat {
		if f.Source == field {
			return f.Alias, true
		}
	}
	return "", false
}

// aliasSet returns the derived key names, for skipping during iteration.
func (p Projection) aliasSet() map[string]bool {
	if len(p.Flat) == 0 {
		return nil
	}
	set := make(map[string]bool, len(p.Flat))
	for _, f := range p.Flat {
		set[f.Alias] = true
	}
	return set
}

// BuildFlattenProjection inspects a document's fields and requests
// server-side flattening for every field classified as rich-text. The
// derived key is the field name suffixed with "Text".
func BuildFlattenProjection(doc Document) Projection {
	var proj Projection
	for _, name := range doc.FieldNames() {
		if Classify(doc.Fields[name]) == TagRichText {
			proj.Flat = append(proj.Flat, FlatField{
				Source: name,
				Alias:  name + "Text",
			})
		}
	}
	return proj
}

// blankLine separates paragraphs in plain text.
var blankLine = regexp.MustCompile(`\n[ \t]*\n`)

// ToBlocks encodes plain text as rich-text content: one block per
// blank-line-separated paragraph, each holding a single unmarked span.
// Keys are sequential; they only need to be unique within the sequence.
func ToBlocks(text string) []Block {
	paragraphs := blankLine.Split(text, -1)

	blocks := make([]Block, 0, len(paragraphs))
	for _, para := range paragraphs {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		n := len(blocks)
		blocks = append(blocks, Block{
			Key:   fmt.Sprintf("block-%d", n),
			Type:  "block",
			Style: "normal",
			Children: []Span{{
				Key:   fmt.Sprintf("span-%d", n),
				Type:  "span",
				Text:  para,
				Marks: []string{},
			}},
			MarkDefs: []any{},
		})
	}
	return blocks
}

// Flatten reduces a document to labeled plain text for LLM consumption.
//
// Fields are visited in sorted order. A field with a flattened-text
// alias in the projection emits the precomputed text; plain string
// fields emit their value; slug fields emit their current value.
// Images, references, nested objects and arrays are skipped, as are
// system fields and the derived alias keys themselves. Sections are
// joined with a blank line.
func Flatten(doc Document, proj Projection) string {
	aliases := proj.aliasSet()

	var sections []string
	emit := func(name, value string) {
		value = strings.TrimSpace(value)
		if value != "" {
			sections = append(sections, FieldLabel(name)+": "+value)
		}
	}

	for _, name := range doc.FieldNames() {
		if IsSystemField(name) || aliases[name] {
			continue
		}
		value := doc.Fields[name]

		if alias, ok := proj.AliasFor(name); ok {
			if flat, ok := doc.Fields[alias].(string); ok {
				emit(name, flat)
			}
			continue
		}

		switch Classify(value) {
		case TagString, TagDatetime:
			s, _ := value.(string)
			emit(name, s)
		case TagSlug:
			if m, ok := value.(map[string]any); ok {
				if current, ok := m["current"].(string); ok {
					emit(name, current)
				}
			}
		}
	}

	return strings.Join(sections, "\n\n")
}

// FieldLabel renders a field name as a section label: first letter
// capitalised, underscores replaced with spaces.
func FieldLabel(name string) string {
	label := strings.ReplaceAll(name, "_", " ")
	if label == "" {
		return label
	}
	return strings.ToUpper(label[:1]) + label[1:]
}
