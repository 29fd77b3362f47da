package cli

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/noterag-cli/internal/core/domain"
)

// mockSettingsStore implements driven.SettingsStore for testing.
type mockSettingsStore struct {
	settings *domain.AISettings
	err      error
	saved    *domain.AISettings
}

func (m *mockSettingsStore) GetAISettings(_ context.Context, _ string) (*domain.AISettings, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.settings, nil
}

func (m *mockSettingsStore) SaveAISettings(_ context.Context, settings domain.AISettings) error {
	m.saved = &settings
	return nil
}

func setupSettingsTest(store *mockSettingsStore) func() {
	old := settingsStore
	settingsStore = store
	return func() {
		settingsStore = old
	}
}

func TestSettingsShowCmd_Use(t *testing.T) {
	assert.Equal(t, "show <user>", settingsShowCmd.Use)
	assert.Equal(t, "set-key <user>", settingsSetKeyCmd.Use)
}

func TestSettingsShow_WithKey(t *testing.T) {
	cleanup := setupSettingsTest(&mockSettingsStore{
		settings: &domain.AISettings{
			UserID:    "alice",
			APIKey:    "AIzaSyExampleKey12345",
			UpdatedAt: time.Date(2026, 8, 1, 9, 30, 0, 0, time.UTC),
		},
	})
	defer cleanup()

	out, err := execute("settings", "show", "alice")

	assert.NoError(t, err)
	assert.Contains(t, out, "Settings for alice")
	assert.Contains(t, out, "AIza...2345")
	assert.NotContains(t, out, "AIzaSyExampleKey12345")
	assert.Contains(t, out, "2026-08-01 09:30:00")
}

func TestSettingsShow_NoSettings(t *testing.T) {
	cleanup := setupSettingsTest(&mockSettingsStore{err: domain.ErrNotFound})
	defer cleanup()

	out, err := execute("settings", "show", "bob")

	assert.NoError(t, err)
	assert.Contains(t, out, "No settings for user bob")
	assert.Contains(t, out, "noterag settings set-key bob")
}

func TestSettingsShow_EmptyKey(t *testing.T) {
	cleanup := setupSettingsTest(&mockSettingsStore{
		settings: &domain.AISettings{UserID: "alice"},
	})
	defer cleanup()

	out, err := execute("settings", "show", "alice")

	assert.NoError(t, err)
	assert.Contains(t, out, "API Key: (not set)")
}

func TestSettingsShow_ServiceNotConfigured(t *testing.T) {
	old := settingsStore
	settingsStore = nil
	defer func() { settingsStore = old }()

	_, err := execute("settings", "show", "alice")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "settings service not configured")
}

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want string
	}{
		{"long key", "AIzaSyExampleKey12345", "AIza...2345"},
		{"short key", "abc", "****"},
		{"boundary length", "12345678", "****"},
		{"empty", "", "****"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, maskAPIKey(tt.key))
		})
	}
}
