package driven

import (
	"context"

	"github.com/custodia-labs/noterag-cli/internal/core/domain"
)

// SettingsStore persists per-user AI settings.
type SettingsStore interface {
	// GetAISettings retrieves the user's AI settings.
	// Returns domain.ErrNotFound if the user has none.
	GetAISettings(ctx context.Context, userID string) (*domain.AISettings, error)

	// SaveAISettings stores or updates the user's AI settings.
	SaveAISettings(ctx context.Context, settings domain.AISettings) error
}
