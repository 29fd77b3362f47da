package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/custodia-labs/noterag-cli/internal/core/domain"
	"github.com/custodia-labs/noterag-cli/internal/core/ports/driven"
)

// settingsStore implements driven.SettingsStore.
type settingsStore struct {
	store *Store
}

var _ driven.SettingsStore = (*settingsStore)(nil)

// GetAISettings retrieves the user's AI settings.
func (s *settingsStore) GetAISettings(ctx context.Context, userID string) (*domain.AISettings, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT user_id, api_key, updated_at
		FROM ai_settings WHERE user_id = ?
	`, userID)

	var settings domain.AISettings
	if err := row.Scan(&settings.UserID, &settings.APIKey, &settings.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning settings: %w", err)
	}

	return &settings, nil
}

// SaveAISettings stores or updates the user's AI settings.
func (s *settingsStore) SaveAISettings(ctx context.Context, settings domain.AISettings) error {
	if settings.UserID == "" {
		return domain.ErrInvalidInput
	}
	if settings.UpdatedAt.IsZero() {
		settings.UpdatedAt = time.Now().UTC()
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO ai_settings (user_id, api_key, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			api_key = excluded.api_key,
			updated_at = excluded.updated_at
	`, settings.UserID, settings.APIKey, settings.UpdatedAt)

	if err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}
	return nil
}
