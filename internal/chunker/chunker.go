// Package chunker splits normalised text into overlapping chunks.
package chunker

import (
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/noterag-cli/internal/core/ports/driven"
)

// Ensure Splitter implements the interface.
var _ driven.Splitter = (*Splitter)(nil)

// DefaultChunkSize is the default chunk size in bytes.
const DefaultChunkSize = 1000

// DefaultChunkOverlap is the default overlap between chunks in bytes.
const DefaultChunkOverlap = 200

// sentenceEnds are the sentence-level breakpoints, tried in order after
// paragraph breaks and before word breaks.
var sentenceEnds = []string{". ", "! ", "? ", "\n"}

// Splitter produces fixed-size overlapping chunks, preferring natural
// breakpoints: paragraph first, then sentence, then word, then a plain
// character cut. Sizes are measured in bytes, which equals characters
// for ASCII text; chunk boundaries always fall on rune starts.
// Splitting is a pure function of the text, so a rebuild over unchanged
// input yields identical chunks.
type Splitter struct {
	chunkSize int
	overlap   int
}

// Option configures the splitter.
type Option func(*Splitter)

// WithChunkSize sets the chunk size in bytes.
func WithChunkSize(size int) Option {
	return func(s *Splitter) {
		if size > 0 {
			s.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in bytes.
func WithOverlap(overlap int) Option {
	return func(s *Splitter) {
		if overlap >= 0 {
			s.overlap = overlap
		}
	}
}

// New creates a new splitter with the given options.
func New(opts ...Option) *Splitter {
	s := &Splitter{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(s)
	}

	// Ensure overlap doesn't exceed chunk size
	if s.overlap >= s.chunkSize {
		s.overlap = s.chunkSize / 4
	}

	return s
}

// ChunkSize returns the configured chunk size in bytes.
func (s *Splitter) ChunkSize() int {
	return s.chunkSize
}

// Overlap returns the configured overlap in bytes.
func (s *Splitter) Overlap() int {
	return s.overlap
}

// Split returns the chunk texts in document order. Each chunk after the
// first starts with up to the last Overlap() bytes of its predecessor,
// so concatenating chunks minus the overlap regions reproduces the
// input exactly. Empty text yields zero chunks.
func (s *Splitter) Split(text string) []string {
	if text == "" {
		return nil
	}
	if len(text) <= s.chunkSize {
		return []string{text}
	}

	estimated := (len(text) / (s.chunkSize - s.overlap)) + 1
	chunks := make([]string, 0, estimated)

	start := 0
	for start < len(text) {
		end := start + s.chunkSize
		if end >= len(text) {
			chunks = append(chunks, text[start:])
			break
		}

		end = s.breakpoint(text, start, end)
		chunks = append(chunks, text[start:end])

		// The next chunk re-reads the last overlap bytes. The
		// breakpoint guarantees end > start+overlap, so this always
		// advances. Stepping forward to a rune start keeps every
		// chunk valid UTF-8 and never moves start backwards.
		start = end - s.overlap
		for start < len(text) && !utf8.RuneStart(text[start]) {
			start++
		}
	}

	return chunks
}

// breakpoint picks the split position in text[start:limit], falling to
// the next granularity only when the current one cannot produce a chunk
// longer than the overlap (required for forward progress).
func (s *Splitter) breakpoint(text string, start, limit int) int {
	window := text[start:limit]
	min := s.overlap + 1

	// Paragraph break.
	if idx := strings.LastIndex(window, "\n\n"); idx >= 0 && idx+2 >= min {
		return start + idx + 2
	}

	// Sentence break.
	best := -1
	for _, sep := range sentenceEnds {
		if idx := strings.LastIndex(window, sep); idx >= 0 && idx+len(sep) >= min && idx+len(sep) > best {
			best = idx + len(sep)
		}
	}
	if best >= 0 {
		return start + best
	}

	// Word break.
	if idx := strings.LastIndexByte(window, ' '); idx >= 0 && idx+1 >= min {
		return start + idx + 1
	}

	// Character cut: a single unsplittable token fills the window.
	// Back off to a rune boundary so a multi-byte character is never
	// torn in half.
	end := limit
	for end > start+min && !utf8.RuneStart(text[end]) {
		end--
	}
	return end
}
