package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/custodia-labs/noterag-cli/internal/core/domain"
	"github.com/custodia-labs/noterag-cli/internal/core/ports/driven"
)

// statusSink implements driven.StatusSink.
type statusSink struct {
	store *Store
}

var _ driven.StatusSink = (*statusSink)(nil)

// SetStep appends a progress step to the user's build log.
func (s *statusSink) SetStep(ctx context.Context, userID string, step domain.StatusStep) error {
	detailsJSON, err := json.Marshal(step.Details)
	if err != nil {
		return fmt.Errorf("marshalling details: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO build_steps (user_id, step, details, timestamp)
		VALUES (?, ?, ?, ?)
	`, userID, step.Step, string(detailsJSON), step.Timestamp)

	if err != nil {
		return fmt.Errorf("recording step: %w", err)
	}
	return nil
}

// SetIndexStatus writes the compact fast-read status record.
func (s *statusSink) SetIndexStatus(ctx context.Context, userID string, status domain.IndexStatus) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO index_status (user_id, enabled, status, last_updated, total_chunks, total_pages)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			enabled = excluded.enabled,
			status = excluded.status,
			last_updated = excluded.last_updated,
			total_chunks = excluded.total_chunks,
			total_pages = excluded.total_pages
	`, userID, status.Enabled, status.Status, status.LastUpdated,
		status.TotalChunks, status.TotalPages)

	if err != nil {
		return fmt.Errorf("saving index status: %w", err)
	}
	return nil
}

// GetIndexStatus reads the compact status record.
func (s *statusSink) GetIndexStatus(ctx context.Context, userID string) (*domain.IndexStatus, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT enabled, status, last_updated, total_chunks, total_pages
		FROM index_status WHERE user_id = ?
	`, userID)

	var status domain.IndexStatus
	if err := row.Scan(&status.Enabled, &status.Status, &status.LastUpdated,
		&status.TotalChunks, &status.TotalPages); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning index status: %w", err)
	}

	return &status, nil
}

// RecentSteps returns the most recent build steps for the user, newest
// first. Used by the status command to show what a running build is
// doing.
func (s *statusSink) RecentSteps(ctx context.Context, userID string, limit int) ([]domain.StatusStep, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT step, details, timestamp
		FROM build_steps WHERE user_id = ?
		ORDER BY id DESC LIMIT ?
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying steps: %w", err)
	}
	defer rows.Close()

	var steps []domain.StatusStep //nolint:prealloc // size unknown from query
	for rows.Next() {
		var step domain.StatusStep
		var detailsJSON sql.NullString
		if err := rows.Scan(&step.Step, &detailsJSON, &step.Timestamp); err != nil {
			return nil, fmt.Errorf("scanning step: %w", err)
		}
		if detailsJSON.Valid && detailsJSON.String != "" && detailsJSON.String != "null" {
			if err := json.Unmarshal([]byte(detailsJSON.String), &step.Details); err != nil {
				return nil, fmt.Errorf("unmarshalling details: %w", err)
			}
		}
		steps = append(steps, step)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating steps: %w", err)
	}

	return steps, nil
}
