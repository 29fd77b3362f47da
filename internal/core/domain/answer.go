package domain

import "unicode/utf8"

// Fixed sentinel answers. Ask never raises; unanswerable and failed
// queries return structured answers using these texts.
const (
	// AnswerNotFound is returned by the model when the context does not
	// contain the answer, and used directly when retrieval finds nothing.
	AnswerNotFound = "I couldn't find that information in your notes."

	// AnswerNoContent is returned when the user has no indexed content
	// matching the question. Generation is skipped entirely.
	AnswerNoContent = "No relevant content found in your knowledge base."

	// AnswerError is returned when a query fails internally.
	AnswerError = "Sorry, there was an error processing your question."
)

// PreviewLength is the maximum match preview length in bytes.
const PreviewLength = 200

// SearchResult is a single retrieval hit: a stored chunk scored against
// a query vector. Ephemeral, produced per query, never persisted.
type SearchResult struct {
	// Score is the cosine similarity in [-1, 1].
	Score float64

	// Chunk is the matched embedded chunk.
	Chunk EmbeddedChunk
}

// Match is the user-facing citation for one retrieved chunk.
type Match struct {
	// PageName is the source page title.
	PageName string `json:"page_name"`

	// ChunkIndex is the chunk position within the page.
	ChunkIndex int `json:"chunk_index"`

	// Score is the retrieval similarity score.
	Score float64 `json:"score"`

	// TextPreview is the chunk text truncated to PreviewLength.
	TextPreview string `json:"text_preview"`
}

// Answer is the structured response to one question.
type Answer struct {
	// Text is the generated (or sentinel) answer.
	Text string `json:"answer"`

	// Matches lists the retrieved chunks in rank order.
	Matches []Match `json:"matches"`

	// ContextUsed is the number of chunks supplied to generation.
	ContextUsed int `json:"context_used"`
}

// Preview truncates text to PreviewLength, appending an ellipsis when
// the text was cut. The cut backs off to a rune start so the preview
// stays valid UTF-8.
func Preview(text string) string {
	if len(text) <= PreviewLength {
		return text
	}
	end := PreviewLength
	for end > 0 && !utf8.RuneStart(text[end]) {
		end--
	}
	return text[:end] + "..."
}
