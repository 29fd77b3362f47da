package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/noterag-cli/internal/core/domain"
	"github.com/custodia-labs/noterag-cli/internal/core/ports/driven"
)

// Ensure StatusSink implements the interface.
var _ driven.StatusSink = (*StatusSink)(nil)

// StatusSink is an in-memory implementation of driven.StatusSink.
// The recorded steps are retained in order, which lets tests assert on
// the sequence of progress events a build emitted.
type StatusSink struct {
	mu     sync.RWMutex
	steps  map[string][]domain.StatusStep
	status map[string]domain.IndexStatus
}

// NewStatusSink creates a new in-memory status sink.
func NewStatusSink() *StatusSink {
	return &StatusSink{
		steps:  make(map[string][]domain.StatusStep),
		status: make(map[string]domain.IndexStatus),
	}
}

// SetStep records the current pipeline step for the user.
func (s *StatusSink) SetStep(_ context.Context, userID string, step domain.StatusStep) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.steps[userID] = append(s.steps[userID], step)
	return nil
}

// SetIndexStatus writes the compact fast-read status record.
func (s *StatusSink) SetIndexStatus(_ context.Context, userID string, status domain.IndexStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status[userID] = status
	return nil
}

// GetIndexStatus reads the compact status record.
func (s *StatusSink) GetIndexStatus(_ context.Context, userID string) (*domain.IndexStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	status, ok := s.status[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &status, nil
}

// RecentSteps returns the user's most recent steps, newest first.
func (s *StatusSink) RecentSteps(_ context.Context, userID string, limit int) ([]domain.StatusStep, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recorded := s.steps[userID]
	if limit > len(recorded) {
		limit = len(recorded)
	}
	steps := make([]domain.StatusStep, 0, limit)
	for i := len(recorded) - 1; i >= len(recorded)-limit; i-- {
		steps = append(steps, recorded[i])
	}
	return steps, nil
}

// Steps returns all recorded steps for the user in order.
func (s *StatusSink) Steps(userID string) []domain.StatusStep {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.StatusStep(nil), s.steps[userID]...)
}
