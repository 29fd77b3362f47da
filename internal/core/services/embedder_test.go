package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/noterag-cli/internal/core/domain"
)

func makeChunks(n int) []domain.Chunk {
	chunks := make([]domain.Chunk, n)
	for i := range chunks {
		chunks[i] = domain.Chunk{
			ID:   fmt.Sprintf("chunk-%d", i),
			Text: fmt.Sprintf("chunk text %d", i),
			Metadata: domain.ChunkMetadata{
				ChunkIndex:  i,
				TotalChunks: n,
			},
		}
	}
	return chunks
}

func TestEmbedChunks_BatchSuccess(t *testing.T) {
	svc := &mockEmbeddingService{dims: 4}
	embedder := NewEmbedder(svc)

	out, degraded, err := embedder.EmbedChunks(context.Background(), makeChunks(3))

	require.NoError(t, err)
	assert.Zero(t, degraded)
	require.Len(t, out, 3)
	assert.Equal(t, 1, svc.batchCalls)
	assert.Zero(t, svc.embedCalls)
	for i, ec := range out {
		assert.Equal(t, fmt.Sprintf("chunk-%d", i), ec.ID)
		assert.Equal(t, vectorFor(ec.Text, 4), ec.Embedding)
		assert.Equal(t, 4, ec.Dimension)
	}
}

func TestEmbedChunks_SplitsIntoBatches(t *testing.T) {
	svc := &mockEmbeddingService{dims: 4}
	var progress [][2]int
	embedder := NewEmbedder(svc,
		WithBatchSize(2),
		WithProgress(func(completed, total int) {
			progress = append(progress, [2]int{completed, total})
		}),
	)

	out, degraded, err := embedder.EmbedChunks(context.Background(), makeChunks(5))

	require.NoError(t, err)
	assert.Zero(t, degraded)
	assert.Len(t, out, 5)
	assert.Equal(t, 3, svc.batchCalls)
	assert.Equal(t, [][2]int{{2, 5}, {4, 5}, {5, 5}}, progress)
}

func TestEmbedChunks_BatchFailureFallsBackPerItem(t *testing.T) {
	svc := &mockEmbeddingService{dims: 4, batchErr: errors.New("batch endpoint down")}
	embedder := NewEmbedder(svc)

	out, degraded, err := embedder.EmbedChunks(context.Background(), makeChunks(3))

	require.NoError(t, err)
	assert.Zero(t, degraded)
	require.Len(t, out, 3)
	assert.Equal(t, 3, svc.embedCalls)
	for _, ec := range out {
		assert.False(t, ec.IsZeroVector())
	}
}

func TestEmbedChunks_CountMismatchFallsBackPerItem(t *testing.T) {
	svc := &mockEmbeddingService{dims: 4, batchShort: true}
	embedder := NewEmbedder(svc)

	out, degraded, err := embedder.EmbedChunks(context.Background(), makeChunks(3))

	require.NoError(t, err)
	assert.Zero(t, degraded)
	assert.Len(t, out, 3)
	assert.Equal(t, 3, svc.embedCalls)
}

func TestEmbedChunks_ItemFailureDegradesToZeroVector(t *testing.T) {
	svc := &mockEmbeddingService{
		dims:     4,
		batchErr: errors.New("batch endpoint down"),
		embedFn: func(text string) ([]float32, error) {
			if text == "chunk text 1" {
				return nil, errors.New("embed rejected")
			}
			return vectorFor(text, 4), nil
		},
	}
	embedder := NewEmbedder(svc)

	out, degraded, err := embedder.EmbedChunks(context.Background(), makeChunks(3))

	require.NoError(t, err)
	assert.Equal(t, 1, degraded)
	require.Len(t, out, 3)

	assert.False(t, out[0].IsZeroVector())
	assert.True(t, out[1].IsZeroVector())
	assert.Len(t, out[1].Embedding, 4)
	assert.Equal(t, 4, out[1].Dimension)
	assert.False(t, out[2].IsZeroVector())
}

func TestEmbedChunks_Empty(t *testing.T) {
	svc := &mockEmbeddingService{dims: 4}
	embedder := NewEmbedder(svc)

	out, degraded, err := embedder.EmbedChunks(context.Background(), nil)

	require.NoError(t, err)
	assert.Zero(t, degraded)
	assert.Empty(t, out)
	assert.Zero(t, svc.batchCalls)
}

func TestEmbedChunks_ContextCancelled(t *testing.T) {
	svc := &mockEmbeddingService{dims: 4}
	embedder := NewEmbedder(svc)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := embedder.EmbedChunks(ctx, makeChunks(3))

	assert.ErrorIs(t, err, context.Canceled)
}

func TestEmbedQuery(t *testing.T) {
	svc := &mockEmbeddingService{dims: 4}
	embedder := NewEmbedder(svc)

	v, err := embedder.EmbedQuery(context.Background(), "a question")

	require.NoError(t, err)
	assert.Equal(t, vectorFor("a question", 4), v)
}

func TestEmbedQuery_NoFallback(t *testing.T) {
	svc := &mockEmbeddingService{
		dims:    4,
		embedFn: func(string) ([]float32, error) { return nil, errors.New("embed failed") },
	}
	embedder := NewEmbedder(svc)

	_, err := embedder.EmbedQuery(context.Background(), "a question")

	assert.Error(t, err)
}
