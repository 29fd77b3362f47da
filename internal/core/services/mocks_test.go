package services

import (
	"context"
	"strings"

	"github.com/custodia-labs/noterag-cli/internal/core/ports/driven"
)

// --- Mock implementations shared across the service tests ---

// vectorFor derives a small deterministic vector from text so that
// identical texts always embed identically.
func vectorFor(text string, dims int) []float32 {
	var sum int
	for _, b := range []byte(text) {
		sum += int(b)
	}
	v := make([]float32, dims)
	for i := range v {
		v[i] = float32((sum+i)%7 + 1)
	}
	return v
}

// mockEmbeddingService implements driven.EmbeddingService for testing.
type mockEmbeddingService struct {
	dims       int
	model      string
	embedFn    func(text string) ([]float32, error)
	batchErr   error
	batchShort bool
	pingErr    error

	embedCalls int
	batchCalls int
	closed     bool
}

func (m *mockEmbeddingService) embedOne(text string) ([]float32, error) {
	if m.embedFn != nil {
		return m.embedFn(text)
	}
	return vectorFor(text, m.Dimensions()), nil
}

func (m *mockEmbeddingService) Embed(_ context.Context, text string) ([]float32, error) {
	m.embedCalls++
	return m.embedOne(text)
}

func (m *mockEmbeddingService) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	m.batchCalls++
	if m.batchErr != nil {
		return nil, m.batchErr
	}
	out := make([][]float32, 0, len(texts))
	for _, t := range texts {
		v, err := m.embedOne(t)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if m.batchShort && len(out) > 0 {
		out = out[:len(out)-1]
	}
	return out, nil
}

func (m *mockEmbeddingService) Dimensions() int {
	if m.dims == 0 {
		return 4
	}
	return m.dims
}

func (m *mockEmbeddingService) ModelName() string {
	if m.model == "" {
		return "mock-embedding"
	}
	return m.model
}

func (m *mockEmbeddingService) Ping(_ context.Context) error {
	return m.pingErr
}

func (m *mockEmbeddingService) Close() error {
	m.closed = true
	return nil
}

// mockLLMService implements driven.LLMService for testing.
type mockLLMService struct {
	response string
	genErr   error
	pingErr  error

	prompts []string
	closed  bool
}

func (m *mockLLMService) Generate(_ context.Context, prompt string, _ driven.GenerateOptions) (string, error) {
	m.prompts = append(m.prompts, prompt)
	if m.genErr != nil {
		return "", m.genErr
	}
	return m.response, nil
}

func (m *mockLLMService) ModelName() string {
	return "mock-llm"
}

func (m *mockLLMService) Ping(_ context.Context) error {
	return m.pingErr
}

func (m *mockLLMService) Close() error {
	m.closed = true
	return nil
}

// mockAIFactory implements driven.AIFactory for testing.
type mockAIFactory struct {
	embed    *mockEmbeddingService
	llm      *mockLLMService
	embedErr error
	llmErr   error
}

func (m *mockAIFactory) NewEmbeddingService(_ string) (driven.EmbeddingService, error) {
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	return m.embed, nil
}

func (m *mockAIFactory) NewLLMService(_ string) (driven.LLMService, error) {
	if m.llmErr != nil {
		return nil, m.llmErr
	}
	return m.llm, nil
}

// mockNormaliser implements driven.Normaliser for testing.
// It only trims whitespace so tests control the text exactly.
type mockNormaliser struct{}

func (mockNormaliser) Normalise(raw string) string {
	return strings.TrimSpace(raw)
}

// mockSplitter implements driven.Splitter for testing.
// It splits on newlines, one chunk per non-empty line.
type mockSplitter struct{}

func (mockSplitter) Split(text string) []string {
	var parts []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			parts = append(parts, line)
		}
	}
	return parts
}

func (mockSplitter) ChunkSize() int { return 1000 }

func (mockSplitter) Overlap() int { return 200 }
