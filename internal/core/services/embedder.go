package services

import (
	"context"

	"github.com/custodia-labs/noterag-cli/internal/core/domain"
	"github.com/custodia-labs/noterag-cli/internal/core/ports/driven"
	"github.com/custodia-labs/noterag-cli/internal/logger"
)

// DefaultEmbedBatchSize is the default number of chunks per remote call.
const DefaultEmbedBatchSize = 20

// Embedder converts chunks into embedded chunks in fixed-size batches.
//
// The policy is degrade, don't fail: a failed batch call falls back to
// one call per item, and an item that still fails gets a zero vector of
// the configured dimension so a single bad chunk never blocks indexing
// of the rest. Credential failures are detected before embedding starts
// (see BuildOrchestrator) and are fatal, not degraded.
type Embedder struct {
	service    driven.EmbeddingService
	batchSize  int
	onProgress func(completed, total int)
}

// EmbedderOption configures the embedder.
type EmbedderOption func(*Embedder)

// WithBatchSize sets the number of chunks per remote call.
func WithBatchSize(n int) EmbedderOption {
	return func(e *Embedder) {
		if n > 0 {
			e.batchSize = n
		}
	}
}

// WithProgress sets a callback invoked after each batch with the count
// of completed chunks. Reporting is observational only; it has no
// control-flow significance.
func WithProgress(fn func(completed, total int)) EmbedderOption {
	return func(e *Embedder) {
		e.onProgress = fn
	}
}

// NewEmbedder creates an embedder over the given service.
func NewEmbedder(service driven.EmbeddingService, opts ...EmbedderOption) *Embedder {
	e := &Embedder{
		service:   service,
		batchSize: DefaultEmbedBatchSize,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// EmbedChunks returns one embedded chunk per input chunk, preserving
// input order. The returned count is the number of chunks that were
// degraded to a zero vector.
func (e *Embedder) EmbedChunks(ctx context.Context, chunks []domain.Chunk) ([]domain.EmbeddedChunk, int, error) {
	total := len(chunks)
	dims := e.service.Dimensions()
	out := make([]domain.EmbeddedChunk, 0, total)
	degraded := 0

	for start := 0; start < total; start += e.batchSize {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}

		end := start + e.batchSize
		if end > total {
			end = total
		}
		batch := chunks[start:end]

		texts := make([]string, len(batch))
		for i := range batch {
			texts[i] = batch[i].Text
		}

		vectors, err := e.service.EmbedBatch(ctx, texts)
		if err != nil || len(vectors) != len(texts) {
			if err != nil {
				logger.Warn("Batch embed failed for chunks %d-%d: %v, falling back to per-item calls", start, end-1, err)
			} else {
				logger.Warn("Batch embed returned %d vectors for %d chunks, falling back to per-item calls", len(vectors), len(texts))
			}
			var failed int
			vectors, failed = e.embedEach(ctx, texts, dims)
			degraded += failed
		}

		for i := range batch {
			out = append(out, domain.EmbeddedChunk{
				Chunk:     batch[i],
				Embedding: vectors[i],
				Dimension: dims,
			})
		}

		if e.onProgress != nil {
			e.onProgress(len(out), total)
		}
	}

	return out, degraded, nil
}

// EmbedQuery embeds a single query string. Query embedding has no
// zero-vector fallback: a failure here means the question cannot be
// answered and the caller degrades the whole query instead.
func (e *Embedder) EmbedQuery(ctx context.Context, query string) ([]float32, error) {
	return e.service.Embed(ctx, query)
}

// embedEach issues one remote call per text, substituting a zero vector
// of the configured dimension for any item that fails. Returns the
// vectors and the number of substitutions.
func (e *Embedder) embedEach(ctx context.Context, texts []string, dims int) ([][]float32, int) {
	vectors := make([][]float32, len(texts))
	failed := 0
	for i, text := range texts {
		v, err := e.service.Embed(ctx, text)
		if err != nil {
			logger.Warn("Embed failed for chunk %d: %v, substituting zero vector", i, err)
			v = make([]float32, dims)
			failed++
		}
		vectors[i] = v
	}
	return vectors, failed
}
