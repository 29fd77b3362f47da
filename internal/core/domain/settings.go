package domain

import "time"

// AISettings holds a user's AI configuration, entered through their
// account settings. The API key authenticates both embedding and
// generation calls for that user; a missing key is fatal for build
// and ask alike.
type AISettings struct {
	// UserID is the owning user.
	UserID string

	// APIKey is the user's API key for the AI provider.
	APIKey string

	// UpdatedAt is when the settings were last changed.
	UpdatedAt time.Time
}
