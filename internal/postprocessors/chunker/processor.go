// Package chunker splits text into size-bounded chunks at natural
// boundaries, preferring paragraph breaks, then sentence breaks, then
// hard character splits.
package chunker

import (
	"regexp"
	"strings"

	"github.com/tidewater-labs/lakeview-cli/internal/core/domain"
)

// DefaultChunkSize is the default maximum number of characters per chunk.
const DefaultChunkSize = domain.DefaultChunkSize

// MinChunkSize is the smallest usable chunk size. Anything below
// cannot hold a hard-split slice plus its ellipsis marker.
const MinChunkSize = len(domain.Ellipsis) + 1

const (
	paragraphJoiner = "\n\n"
	sentenceJoiner  = " "
)

// blankLine separates paragraphs.
var blankLine = regexp.MustCompile(`\n[ \t]*\n`)

// Processor splits text into bounded chunks. It is pure: no state is
// carried between calls and the output is deterministic.
type Processor struct {
	chunkSize int
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithChunkSize sets the maximum chunk size in characters.
func WithChunkSize(size int) Option {
	return func(p *Processor) {
		if size > 0 {
			p.chunkSize = size
		}
	}
}

// New creates a new chunker processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{chunkSize: DefaultChunkSize}

	for _, opt := range opts {
		opt(p)
	}

	if p.chunkSize < MinChunkSize {
		p.chunkSize = MinChunkSize
	}

	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "chunker"
}

// Size returns the configured maximum chunk size.
func (p *Processor) Size() int {
	return p.chunkSize
}

// Chunk splits text into ordered chunks no longer than the configured
// size. Paragraphs are accumulated greedily; a paragraph that cannot
// fit on its own is split at sentence boundaries; a sentence that
// still exceeds the limit is hard-split into ellipsis-marked slices.
func (p *Processor) Chunk(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if len(text) <= p.chunkSize {
		return []string{text}
	}

	var chunks []string
	var current string

	flush := func() {
		if current != "" {
			chunks = append(chunks, current)
			current = ""
		}
	}

	for _, para := range splitParagraphs(text) {
		joiner := 0
		if current != "" {
			joiner = len(paragraphJoiner)
		}

		switch {
		case len(current)+joiner+len(para) <= p.chunkSize:
			if current != "" {
				current += paragraphJoiner
			}
			current += para

		case len(para) <= p.chunkSize:
			flush()
			current = para

		default:
			// Paragraph alone exceeds the limit: fall back to
			// sentence accumulation.
			flush()
			current = p.chunkSentences(para, &chunks)
		}
	}

	flush()
	return chunks
}

// chunkSentences splits an oversized paragraph at sentence boundaries,
// appending full chunks to chunks and returning the trailing
// accumulator for the caller to keep filling.
func (p *Processor) chunkSentences(para string, chunks *[]string) string {
	var current string

	for _, sentence := range splitSentences(para) {
		joiner := 0
		if current != "" {
			joiner = len(sentenceJoiner)
		}

		switch {
		case len(current)+joiner+len(sentence) <= p.chunkSize:
			if current != "" {
				current += sentenceJoiner
			}
			current += sentence

		case len(sentence) <= p.chunkSize:
			if current != "" {
				*chunks = append(*chunks, current)
			}
			current = sentence

		default:
			if current != "" {
				*chunks = append(*chunks, current)
				current = ""
			}
			current = p.hardSplit(sentence, chunks)
		}
	}

	return current
}

// hardSplit slices a sentence that exceeds the limit into consecutive
// ellipsis-marked pieces, returning the remainder once it fits.
func (p *Processor) hardSplit(sentence string, chunks *[]string) string {
	cut := p.chunkSize - len(domain.Ellipsis)
	rest := sentence
	for len(rest) > p.chunkSize {
		*chunks = append(*chunks, rest[:cut]+domain.Ellipsis)
		rest = rest[cut:]
	}
	return rest
}

// splitParagraphs splits text at blank-line boundaries, trimming each
// paragraph and discarding empty ones.
func splitParagraphs(text string) []string {
	parts := blankLine.Split(text, -1)
	paragraphs := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			paragraphs = append(paragraphs, part)
		}
	}
	return paragraphs
}

// splitSentences splits a paragraph at sentence boundaries: a period
// followed by whitespace.
func splitSentences(text string) []string {
	var sentences []string
	start := 0

	for i := 0; i+1 < len(text); i++ {
		if text[i] == '.' && isSpace(text[i+1]) {
			if s := strings.TrimSpace(text[start : i+1]); s != "" {
				sentences = append(sentences, s)
			}
			start = i + 1
		}
	}

	if s := strings.TrimSpace(text[start:]); s != "" {
		sentences = append(sentences, s)
	}

	return sentences
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
