package driven

import (
	"context"

	"github.com/custodia-labs/noterag-cli/internal/core/domain"
)

// StatusSink records build progress and the compact per-user index
// status for external consumers (UI polling, the status command).
//
// All writes are best-effort and never on the critical path: a failure
// to record status must not fail the pipeline. Callers log and continue.
type StatusSink interface {
	// SetStep records the current pipeline step for the user.
	SetStep(ctx context.Context, userID string, step domain.StatusStep) error

	// SetIndexStatus writes the compact fast-read status record.
	SetIndexStatus(ctx context.Context, userID string, status domain.IndexStatus) error

	// GetIndexStatus reads the compact status record.
	// Returns domain.ErrNotFound if none has been written.
	GetIndexStatus(ctx context.Context, userID string) (*domain.IndexStatus, error)

	// RecentSteps returns the user's most recent build steps, newest
	// first, up to limit.
	RecentSteps(ctx context.Context, userID string, limit int) ([]domain.StatusStep, error)
}
