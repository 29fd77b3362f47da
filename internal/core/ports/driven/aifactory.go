package driven

// AIFactory creates AI services credentialed for one user.
//
// Clients are scoped to a single build or query invocation, not process
// lifetime: each user supplies their own API key, so services cannot be
// shared process-wide without leaking credentials across users.
type AIFactory interface {
	// NewEmbeddingService creates an embedding service using the key.
	NewEmbeddingService(apiKey string) (EmbeddingService, error)

	// NewLLMService creates a generation service using the key.
	NewLLMService(apiKey string) (LLMService, error)
}
