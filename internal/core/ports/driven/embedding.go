package driven

import "context"

// EmbeddingService generates vector embeddings from text.
//
// Note: This is separate from IndexStore which stores and searches
// vectors. EmbeddingService generates vectors; IndexStore stores them.
//
// Implementations may include:
//   - Gemini (text-embedding-004)
//   - Local models via inference servers
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts in one call,
	// preserving input order. Implementations without a native batch
	// endpoint may return an error; callers fall back to Embed per item.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size (e.g., 768).
	// This is determined by the model and recorded alongside every
	// stored vector.
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the service is reachable and the credential is
	// accepted, by making a lightweight test request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
