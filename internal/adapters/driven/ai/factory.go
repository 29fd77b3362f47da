// Package ai provides the factory for creating per-user AI service
// adapters. Every user carries their own API key, so services are built
// per invocation rather than shared process-wide.
package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/noterag-cli/internal/adapters/driven/ai/gemini"
	"github.com/custodia-labs/noterag-cli/internal/core/ports/driven"
)

// Ensure Factory implements the interface.
var _ driven.AIFactory = (*Factory)(nil)

// pingTimeout is the maximum time to wait for credential validation.
const pingTimeout = 5 * time.Second

// Factory creates Gemini-backed AI services for a given API key.
type Factory struct {
	baseURL        string
	embeddingModel string
	llmModel       string
	dimensions     int
}

// FactoryOption configures the factory.
type FactoryOption func(*Factory)

// WithBaseURL overrides the API base URL. Used by tests to point at a
// local server.
func WithBaseURL(url string) FactoryOption {
	return func(f *Factory) {
		f.baseURL = url
	}
}

// WithEmbeddingModel overrides the embedding model name.
func WithEmbeddingModel(model string) FactoryOption {
	return func(f *Factory) {
		f.embeddingModel = model
	}
}

// WithLLMModel overrides the generation model name.
func WithLLMModel(model string) FactoryOption {
	return func(f *Factory) {
		f.llmModel = model
	}
}

// WithDimensions overrides the embedding vector size.
func WithDimensions(dims int) FactoryOption {
	return func(f *Factory) {
		f.dimensions = dims
	}
}

// NewFactory creates a factory with the given options. Zero-value
// options fall back to the gemini package defaults.
func NewFactory(opts ...FactoryOption) *Factory {
	f := &Factory{}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// NewEmbeddingService creates an embedding service using the key.
func (f *Factory) NewEmbeddingService(apiKey string) (driven.EmbeddingService, error) {
	svc, err := gemini.NewEmbeddingService(gemini.EmbeddingConfig{
		APIKey:     apiKey,
		BaseURL:    f.baseURL,
		Model:      f.embeddingModel,
		Dimensions: f.dimensions,
	})
	if err != nil {
		return nil, fmt.Errorf("create embedding service: %w", err)
	}
	return svc, nil
}

// NewLLMService creates a generation service using the key.
func (f *Factory) NewLLMService(apiKey string) (driven.LLMService, error) {
	svc, err := gemini.NewLLMService(gemini.LLMConfig{
		APIKey:  apiKey,
		BaseURL: f.baseURL,
		Model:   f.llmModel,
	})
	if err != nil {
		return nil, fmt.Errorf("create LLM service: %w", err)
	}
	return svc, nil
}

// ValidateKey checks that the key is accepted by the API, by creating
// an embedding service and pinging it. Intended for use when a key is
// first configured, so a typo is caught before the next build.
func (f *Factory) ValidateKey(ctx context.Context, apiKey string) error {
	svc, err := f.NewEmbeddingService(apiKey)
	if err != nil {
		return err
	}
	defer svc.Close()

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return svc.Ping(ctx)
}
