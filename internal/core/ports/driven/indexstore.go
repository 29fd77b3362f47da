package driven

import (
	"context"

	"github.com/custodia-labs/noterag-cli/internal/core/domain"
)

// IndexStore persists one vector index per user: a metadata record plus
// an arbitrarily large set of chunk records. Each chunk record is
// self-describing (text, metadata, embedding, dimension) and can be read
// without joining against the metadata record.
//
// Replace is NOT a single atomic transaction: it clears the previous
// index and then writes chunks in bounded batches, each batch its own
// sub-transaction. A crash mid-replace can leave the user with an empty
// or partially populated index. Callers must serialise builds per user;
// concurrent Replace calls for the same user can corrupt the index.
type IndexStore interface {
	// Clear idempotently deletes the user's stored index, including all
	// chunk records. A missing index is not an error.
	Clear(ctx context.Context, userID string) error

	// Replace clears the previous index and writes the new metadata and
	// chunks in bounded batches. Chunk record keys are assigned by
	// storage offset (chunk_0, chunk_1, ...).
	Replace(ctx context.Context, userID string, chunks []domain.EmbeddedChunk, meta domain.IndexMetadata) error

	// ReadAll returns every stored chunk for the user in storage order.
	// A missing index yields an empty slice, not an error.
	ReadAll(ctx context.Context, userID string) ([]domain.EmbeddedChunk, error)

	// Exists reports whether a non-empty index is stored for the user.
	Exists(ctx context.Context, userID string) (bool, error)

	// Metadata returns the stored index metadata.
	// Returns domain.ErrNotFound if no index exists.
	Metadata(ctx context.Context, userID string) (*domain.IndexMetadata, error)
}
