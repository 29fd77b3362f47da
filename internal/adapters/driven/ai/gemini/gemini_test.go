package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/noterag-cli/internal/core/ports/driven"
)

func newEmbeddingService(t *testing.T, handler http.HandlerFunc) *EmbeddingService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	svc, err := NewEmbeddingService(EmbeddingConfig{
		APIKey:            "test-key",
		BaseURL:           server.URL,
		RequestsPerMinute: 100000, // don't throttle tests
	})
	require.NoError(t, err)
	return svc
}

func newLLMService(t *testing.T, handler http.HandlerFunc) *LLMService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	svc, err := NewLLMService(LLMConfig{
		APIKey:            "test-key",
		BaseURL:           server.URL,
		RequestsPerMinute: 100000,
	})
	require.NoError(t, err)
	return svc
}

func TestNewEmbeddingService_RequiresAPIKey(t *testing.T) {
	_, err := NewEmbeddingService(EmbeddingConfig{})
	assert.Error(t, err)
}

func TestNewEmbeddingService_Defaults(t *testing.T) {
	svc, err := NewEmbeddingService(EmbeddingConfig{APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, DefaultEmbeddingModel, svc.ModelName())
	assert.Equal(t, DefaultDimensions, svc.Dimensions())
}

func TestEmbed(t *testing.T) {
	svc := newEmbeddingService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.URL.Path, ":embedContent")
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))

		var req embedContentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "hello world", req.Content.Parts[0].Text)

		json.NewEncoder(w).Encode(map[string]any{
			"embedding": map[string]any{"values": []float32{0.1, 0.2, 0.3}},
		})
	})

	vec, err := svc.Embed(context.Background(), "hello world")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, vec)
}

func TestEmbed_APIError(t *testing.T) {
	svc := newEmbeddingService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"code": 400, "message": "API key not valid", "status": "INVALID_ARGUMENT"},
		})
	})

	_, err := svc.Embed(context.Background(), "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key not valid")
}

func TestEmbedBatch(t *testing.T) {
	svc := newEmbeddingService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, ":batchEmbedContents")

		var req batchEmbedRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Requests, 2)

		json.NewEncoder(w).Encode(map[string]any{
			"embeddings": []map[string]any{
				{"values": []float32{1, 0}},
				{"values": []float32{0, 1}},
			},
		})
	})

	vecs, err := svc.EmbedBatch(context.Background(), []string{"first", "second"})
	require.NoError(t, err)
	require.Len(t, vecs, 2)
	assert.Equal(t, []float32{1, 0}, vecs[0])
	assert.Equal(t, []float32{0, 1}, vecs[1])
}

func TestEmbedBatch_Empty(t *testing.T) {
	svc := newEmbeddingService(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected for empty batch")
	})

	vecs, err := svc.EmbedBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, vecs)
}

func TestEmbedBatch_CountMismatch(t *testing.T) {
	svc := newEmbeddingService(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"embeddings": []map[string]any{{"values": []float32{1}}},
		})
	})

	_, err := svc.EmbedBatch(context.Background(), []string{"a", "b"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 2 embeddings")
}

func TestEmbeddingPing(t *testing.T) {
	t.Run("valid key", func(t *testing.T) {
		svc := newEmbeddingService(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			json.NewEncoder(w).Encode(map[string]any{"name": "models/text-embedding-004"})
		})
		assert.NoError(t, svc.Ping(context.Background()))
	})

	t.Run("invalid key", func(t *testing.T) {
		svc := newEmbeddingService(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		})
		assert.Error(t, svc.Ping(context.Background()))
	})
}

func TestNewLLMService_RequiresAPIKey(t *testing.T) {
	_, err := NewLLMService(LLMConfig{})
	assert.Error(t, err)
}

func TestGenerate(t *testing.T) {
	svc := newLLMService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, ":generateContent")

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		assert.Equal(t, "What is Go?", req.Contents[0].Parts[0].Text)
		require.NotNil(t, req.GenerationConfig)
		assert.Equal(t, 256, req.GenerationConfig.MaxOutputTokens)

		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]any{
					{"text": "Go is a "},
					{"text": "programming language."},
				}}},
			},
		})
	})

	text, err := svc.Generate(context.Background(), "What is Go?", driven.GenerateOptions{MaxTokens: 256})
	require.NoError(t, err)
	assert.Equal(t, "Go is a programming language.", text)
}

func TestGenerate_NoCandidates(t *testing.T) {
	svc := newLLMService(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"candidates": []any{}})
	})

	_, err := svc.Generate(context.Background(), "question", driven.GenerateOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no candidates")
}

func TestGenerate_APIError(t *testing.T) {
	svc := newLLMService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"code": 429, "message": "quota exceeded", "status": "RESOURCE_EXHAUSTED"},
		})
	})

	_, err := svc.Generate(context.Background(), "question", driven.GenerateOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}
