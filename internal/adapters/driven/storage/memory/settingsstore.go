package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/noterag-cli/internal/core/domain"
	"github.com/custodia-labs/noterag-cli/internal/core/ports/driven"
)

// Ensure SettingsStore implements the interface.
var _ driven.SettingsStore = (*SettingsStore)(nil)

// SettingsStore is an in-memory implementation of driven.SettingsStore.
type SettingsStore struct {
	mu       sync.RWMutex
	settings map[string]domain.AISettings
}

// NewSettingsStore creates a new in-memory settings store.
func NewSettingsStore() *SettingsStore {
	return &SettingsStore{
		settings: make(map[string]domain.AISettings),
	}
}

// GetAISettings retrieves the user's AI settings.
func (s *SettingsStore) GetAISettings(_ context.Context, userID string) (*domain.AISettings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	settings, ok := s.settings[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &settings, nil
}

// SaveAISettings stores or updates the user's AI settings.
func (s *SettingsStore) SaveAISettings(_ context.Context, settings domain.AISettings) error {
	if settings.UserID == "" {
		return domain.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings[settings.UserID] = settings
	return nil
}
