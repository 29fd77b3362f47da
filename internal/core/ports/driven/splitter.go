package driven

// Splitter splits normalised text into ordered, overlapping chunks.
// Splitting is purely a function of text content: deterministic and
// restartable, with no external I/O. Empty text yields zero chunks.
type Splitter interface {
	// Split returns the chunk texts in document order. Each chunk is at
	// most ChunkSize characters, except when a single unsplittable token
	// exceeds it; consecutive chunks overlap by up to Overlap characters.
	Split(text string) []string

	// ChunkSize returns the configured chunk size in characters.
	ChunkSize() int

	// Overlap returns the configured overlap in characters.
	Overlap() int
}
