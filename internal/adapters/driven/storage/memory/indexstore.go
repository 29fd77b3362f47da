package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/noterag-cli/internal/core/domain"
	"github.com/custodia-labs/noterag-cli/internal/core/ports/driven"
)

// Ensure IndexStore implements the interface.
var _ driven.IndexStore = (*IndexStore)(nil)

// IndexStore is an in-memory implementation of driven.IndexStore.
// Unlike the SQLite store, Replace is effectively atomic here; tests
// that exercise partial-replace behaviour use FailAfter.
type IndexStore struct {
	mu     sync.RWMutex
	chunks map[string][]domain.EmbeddedChunk
	meta   map[string]domain.IndexMetadata

	// FailAfter, when > 0, makes Replace fail after storing that many
	// chunks, leaving a partial index behind.
	FailAfter int
	// FailErr is the error returned when FailAfter triggers.
	FailErr error
}

// NewIndexStore creates a new in-memory index store.
func NewIndexStore() *IndexStore {
	return &IndexStore{
		chunks: make(map[string][]domain.EmbeddedChunk),
		meta:   make(map[string]domain.IndexMetadata),
	}
}

// Clear idempotently deletes the user's stored index.
func (s *IndexStore) Clear(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.chunks, userID)
	delete(s.meta, userID)
	return nil
}

// Replace clears the previous index and stores the new chunks and
// metadata.
func (s *IndexStore) Replace(ctx context.Context, userID string, chunks []domain.EmbeddedChunk, meta domain.IndexMetadata) error {
	if err := s.Clear(ctx, userID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailAfter > 0 && len(chunks) > s.FailAfter {
		s.chunks[userID] = append([]domain.EmbeddedChunk(nil), chunks[:s.FailAfter]...)
		return s.FailErr
	}

	s.chunks[userID] = append([]domain.EmbeddedChunk(nil), chunks...)
	s.meta[userID] = meta
	return nil
}

// ReadAll returns every stored chunk for the user in storage order.
func (s *IndexStore) ReadAll(_ context.Context, userID string) ([]domain.EmbeddedChunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.EmbeddedChunk(nil), s.chunks[userID]...), nil
}

// Exists reports whether a non-empty index is stored for the user.
func (s *IndexStore) Exists(_ context.Context, userID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.chunks[userID]) > 0, nil
}

// Metadata returns the stored index metadata.
func (s *IndexStore) Metadata(_ context.Context, userID string) (*domain.IndexMetadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	meta, ok := s.meta[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &meta, nil
}
