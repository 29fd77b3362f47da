// Package gemini provides AI service adapters using the Google Gemini API.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/noterag-cli/internal/core/ports/driven"
)

// Ensure EmbeddingService implements the interface.
var _ driven.EmbeddingService = (*EmbeddingService)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

	DefaultEmbeddingModel = "text-embedding-004"
	DefaultDimensions     = 768
	DefaultEmbedTimeout   = 60 * time.Second

	// DefaultEmbedRequestsPerMinute throttles outgoing calls so a large
	// rebuild stays under the API's per-minute quota instead of burning
	// retries on 429 responses.
	DefaultEmbedRequestsPerMinute = 100
)

// EmbeddingConfig holds configuration for the Gemini embedding service.
type EmbeddingConfig struct {
	// APIKey is the Gemini API key (required).
	APIKey string

	// BaseURL is the API base URL (default: the public Gemini endpoint).
	BaseURL string

	// Model is the embedding model to use (default: text-embedding-004).
	Model string

	// Timeout is the request timeout (default: 60s).
	Timeout time.Duration

	// Dimensions overrides the default vector size for the model.
	Dimensions int

	// RequestsPerMinute caps the outgoing request rate (default: 100).
	RequestsPerMinute int
}

// EmbeddingService generates embeddings using the Gemini API.
type EmbeddingService struct {
	client     *http.Client
	limiter    *rate.Limiter
	baseURL    string
	apiKey     string
	model      string
	dimensions int
}

// content is the Gemini content payload shared by all endpoints.
type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

// apiError is the Gemini API error envelope.
type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// embedContentRequest is the :embedContent request format.
type embedContentRequest struct {
	Model   string  `json:"model"`
	Content content `json:"content"`
}

// embedContentResponse is the :embedContent response format.
type embedContentResponse struct {
	Embedding struct {
		Values []float32 `json:"values"`
	} `json:"embedding"`
	Error *apiError `json:"error,omitempty"`
}

// batchEmbedRequest is the :batchEmbedContents request format.
type batchEmbedRequest struct {
	Requests []embedContentRequest `json:"requests"`
}

// batchEmbedResponse is the :batchEmbedContents response format.
type batchEmbedResponse struct {
	Embeddings []struct {
		Values []float32 `json:"values"`
	} `json:"embeddings"`
	Error *apiError `json:"error,omitempty"`
}

// NewEmbeddingService creates a new Gemini embedding service.
func NewEmbeddingService(cfg EmbeddingConfig) (*EmbeddingService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultEmbeddingModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultEmbedTimeout
	}
	if cfg.Dimensions == 0 {
		cfg.Dimensions = DefaultDimensions
	}
	if cfg.RequestsPerMinute == 0 {
		cfg.RequestsPerMinute = DefaultEmbedRequestsPerMinute
	}

	return &EmbeddingService{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		limiter:    rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RequestsPerMinute)), 1),
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		dimensions: cfg.Dimensions,
	}, nil
}

// Embed generates a vector embedding for the given text.
func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	reqBody := embedContentRequest{
		Model:   "models/" + s.model,
		Content: content{Parts: []part{{Text: text}}},
	}

	body, err := s.post(ctx, fmt.Sprintf("/models/%s:embedContent", s.model), reqBody)
	if err != nil {
		return nil, err
	}

	var embedResp embedContentResponse
	if err := json.Unmarshal(body, &embedResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if embedResp.Error != nil {
		return nil, fmt.Errorf("gemini error: %s", embedResp.Error.Message)
	}
	if len(embedResp.Embedding.Values) == 0 {
		return nil, fmt.Errorf("gemini: no embedding returned")
	}

	return embedResp.Embedding.Values, nil
}

// EmbedBatch generates embeddings for multiple texts in one call,
// preserving input order.
func (s *EmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	reqBody := batchEmbedRequest{
		Requests: make([]embedContentRequest, len(texts)),
	}
	for i, text := range texts {
		reqBody.Requests[i] = embedContentRequest{
			Model:   "models/" + s.model,
			Content: content{Parts: []part{{Text: text}}},
		}
	}

	body, err := s.post(ctx, fmt.Sprintf("/models/%s:batchEmbedContents", s.model), reqBody)
	if err != nil {
		return nil, err
	}

	var batchResp batchEmbedResponse
	if err := json.Unmarshal(body, &batchResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if batchResp.Error != nil {
		return nil, fmt.Errorf("gemini error: %s", batchResp.Error.Message)
	}
	if len(batchResp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("gemini: expected %d embeddings, got %d", len(texts), len(batchResp.Embeddings))
	}

	embeddings := make([][]float32, len(texts))
	for i, e := range batchResp.Embeddings {
		embeddings[i] = e.Values
	}

	return embeddings, nil
}

// Dimensions returns the embedding vector size.
func (s *EmbeddingService) Dimensions() int {
	return s.dimensions
}

// ModelName returns the name of the embedding model being used.
func (s *EmbeddingService) ModelName() string {
	return s.model
}

// Ping validates the API key by fetching the model metadata. This is a
// lightweight check that does not run inference.
func (s *EmbeddingService) Ping(ctx context.Context) error {
	return pingModel(ctx, s.client, s.baseURL, s.apiKey, s.model)
}

// Close releases resources.
func (s *EmbeddingService) Close() error {
	// HTTP client doesn't need explicit cleanup
	return nil
}

// post issues a rate-limited POST to the given API path and returns the
// raw response body. Non-200 statuses are returned as errors.
func (s *EmbeddingService) post(ctx context.Context, path string, payload any) ([]byte, error) {
	return postJSON(ctx, s.client, s.limiter, s.baseURL+path, s.apiKey, payload)
}
