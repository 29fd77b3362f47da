package domain

import "time"

// ChunkMetadata carries the positional and ownership information attached
// to every chunk. Each chunk record is self-describing: it can be read and
// ranked without joining against the page or index metadata.
type ChunkMetadata struct {
	// PageID links back to the source page.
	PageID string

	// PageName is the page title at indexing time.
	PageName string

	// ChunkIndex is the 0-based position within the page.
	ChunkIndex int

	// TotalChunks is the number of chunks the page produced.
	// Invariant: ChunkIndex < TotalChunks.
	TotalChunks int

	// CharCount is the chunk text length in bytes.
	CharCount int

	// Owner is the user ID the chunk belongs to.
	Owner string

	// CreatedAt is when the chunk was produced.
	CreatedAt time.Time
}

// Chunk is a bounded contiguous slice of a page's normalised text,
// the unit of embedding and retrieval.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// Text is the chunk content.
	Text string

	// Metadata is the positional metadata for the chunk.
	Metadata ChunkMetadata
}

// EmbeddedChunk is a chunk paired with its vector embedding.
// Every chunk produced by a build has exactly one EmbeddedChunk.
type EmbeddedChunk struct {
	Chunk

	// Embedding is the vector representation of Text.
	// A zero vector marks a chunk whose embedding call failed and was
	// degraded rather than aborting the build.
	Embedding []float32

	// Dimension is the embedding vector size, constant across one
	// user's index and fixed by the configured model.
	Dimension int
}

// IsZeroVector reports whether the embedding is the neutral fallback
// vector substituted on embedding failure. Zero-norm chunks are excluded
// from retrieval rather than scored as zero.
func (c *EmbeddedChunk) IsZeroVector() bool {
	for _, v := range c.Embedding {
		if v != 0 {
			return false
		}
	}
	return true
}
