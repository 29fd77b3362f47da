package driven

import (
	"context"

	"github.com/custodia-labs/noterag-cli/internal/core/domain"
)

// PageStore reads note pages from the hosting application's data store.
// The pipeline treats pages as immutable input and never writes them.
type PageStore interface {
	// ListPages returns all pages owned by the user.
	// A user with no pages yields an empty slice, not an error.
	ListPages(ctx context.Context, userID string) ([]domain.Page, error)

	// GetPage retrieves a single page by ID.
	// Returns domain.ErrNotFound if the page does not exist.
	GetPage(ctx context.Context, id string) (*domain.Page, error)
}
