// Package memory provides in-memory implementations of the storage
// ports, used in tests and as a seedable page source for local runs.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/noterag-cli/internal/core/domain"
	"github.com/custodia-labs/noterag-cli/internal/core/ports/driven"
)

// Ensure PageStore implements the interface.
var _ driven.PageStore = (*PageStore)(nil)

// PageStore is an in-memory implementation of driven.PageStore.
type PageStore struct {
	mu    sync.RWMutex
	pages map[string]domain.Page
}

// NewPageStore creates a new in-memory page store.
func NewPageStore() *PageStore {
	return &PageStore{
		pages: make(map[string]domain.Page),
	}
}

// AddPage seeds a page. Pages are keyed by ID; adding the same ID
// twice overwrites.
func (s *PageStore) AddPage(page domain.Page) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pages[page.ID] = page
}

// ListPages returns all pages owned by the user, ordered by ID for
// deterministic iteration.
func (s *PageStore) ListPages(_ context.Context, userID string) ([]domain.Page, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pages := []domain.Page{}
	for _, page := range s.pages {
		if page.Owner == userID {
			pages = append(pages, page)
		}
	}
	sort.Slice(pages, func(i, j int) bool { return pages[i].ID < pages[j].ID })
	return pages, nil
}

// GetPage retrieves a single page by ID.
func (s *PageStore) GetPage(_ context.Context, id string) (*domain.Page, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	page, ok := s.pages[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &page, nil
}
