package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/noterag-cli/internal/core/domain"
)

func TestPageStore(t *testing.T) {
	store := NewPageStore()
	ctx := context.Background()

	store.AddPage(domain.Page{ID: "p-2", Owner: "alice", Name: "Second", RawContent: "<p>two</p>"})
	store.AddPage(domain.Page{ID: "p-1", Owner: "alice", Name: "First", RawContent: "<p>one</p>"})
	store.AddPage(domain.Page{ID: "p-3", Owner: "bob", Name: "Other", RawContent: "<p>three</p>"})

	t.Run("lists only the owner's pages in ID order", func(t *testing.T) {
		pages, err := store.ListPages(ctx, "alice")
		require.NoError(t, err)
		require.Len(t, pages, 2)
		assert.Equal(t, "p-1", pages[0].ID)
		assert.Equal(t, "p-2", pages[1].ID)
	})

	t.Run("empty for unknown user", func(t *testing.T) {
		pages, err := store.ListPages(ctx, "nobody")
		require.NoError(t, err)
		assert.Empty(t, pages)
	})

	t.Run("get by ID", func(t *testing.T) {
		page, err := store.GetPage(ctx, "p-3")
		require.NoError(t, err)
		assert.Equal(t, "Other", page.Name)

		_, err = store.GetPage(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestIndexStore(t *testing.T) {
	store := NewIndexStore()
	ctx := context.Background()

	chunks := []domain.EmbeddedChunk{
		{Chunk: domain.Chunk{ID: "c-1", Text: "first"}, Embedding: []float32{1, 0}, Dimension: 2},
		{Chunk: domain.Chunk{ID: "c-2", Text: "second"}, Embedding: []float32{0, 1}, Dimension: 2},
	}
	meta := domain.IndexMetadata{TotalChunks: 2, TotalPages: 1}

	require.NoError(t, store.Replace(ctx, "alice", chunks, meta))

	got, err := store.ReadAll(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, got, 2)

	exists, err := store.Exists(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, exists)

	gotMeta, err := store.Metadata(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 2, gotMeta.TotalChunks)

	require.NoError(t, store.Clear(ctx, "alice"))

	got, err = store.ReadAll(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = store.Metadata(ctx, "alice")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestIndexStore_FailAfter(t *testing.T) {
	store := NewIndexStore()
	store.FailAfter = 1
	store.FailErr = errors.New("disk full")
	ctx := context.Background()

	chunks := []domain.EmbeddedChunk{
		{Chunk: domain.Chunk{ID: "c-1"}},
		{Chunk: domain.Chunk{ID: "c-2"}},
	}

	err := store.Replace(ctx, "alice", chunks, domain.IndexMetadata{})
	require.Error(t, err)

	// Partial index left behind, no metadata.
	got, err := store.ReadAll(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, got, 1)

	_, err = store.Metadata(ctx, "alice")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSettingsStore(t *testing.T) {
	store := NewSettingsStore()
	ctx := context.Background()

	_, err := store.GetAISettings(ctx, "alice")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, store.SaveAISettings(ctx, domain.AISettings{UserID: "alice", APIKey: "key"}))

	got, err := store.GetAISettings(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "key", got.APIKey)

	assert.ErrorIs(t, store.SaveAISettings(ctx, domain.AISettings{APIKey: "no-user"}), domain.ErrInvalidInput)
}

func TestStatusSink(t *testing.T) {
	sink := NewStatusSink()
	ctx := context.Background()

	_, err := sink.GetIndexStatus(ctx, "alice")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, sink.SetStep(ctx, "alice", domain.StatusStep{Step: "Build Starting"}))
	require.NoError(t, sink.SetStep(ctx, "alice", domain.StatusStep{Step: "Pages Loaded"}))

	steps := sink.Steps("alice")
	require.Len(t, steps, 2)
	assert.Equal(t, "Build Starting", steps[0].Step)

	require.NoError(t, sink.SetIndexStatus(ctx, "alice", domain.IndexStatus{
		Enabled: true,
		Status:  domain.IndexStatusReady,
	}))

	status, err := sink.GetIndexStatus(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, status.Enabled)
	assert.Equal(t, domain.IndexStatusReady, status.Status)
}

func TestStatusSink_RecentSteps(t *testing.T) {
	sink := NewStatusSink()
	ctx := context.Background()

	require.NoError(t, sink.SetStep(ctx, "alice", domain.StatusStep{Step: "Build Starting"}))
	require.NoError(t, sink.SetStep(ctx, "alice", domain.StatusStep{Step: "Pages Loaded"}))
	require.NoError(t, sink.SetStep(ctx, "alice", domain.StatusStep{Step: "Build Complete"}))

	recent, err := sink.RecentSteps(ctx, "alice", 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "Build Complete", recent[0].Step)
	assert.Equal(t, "Pages Loaded", recent[1].Step)

	all, err := sink.RecentSteps(ctx, "alice", 10)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	none, err := sink.RecentSteps(ctx, "nobody", 5)
	require.NoError(t, err)
	assert.Empty(t, none)
}
