package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/custodia-labs/noterag-cli/internal/core/domain"
	"github.com/custodia-labs/noterag-cli/internal/core/ports/driven"
)

// ReplaceBatchSize is the number of chunk rows written per transaction
// during Replace. Bounding the batch keeps transactions small for large
// indexes; the cost is that a crash mid-replace leaves a partial index.
const ReplaceBatchSize = 50

// indexStore implements driven.IndexStore.
type indexStore struct {
	store *Store
}

var _ driven.IndexStore = (*indexStore)(nil)

// Clear idempotently deletes the user's stored index.
func (s *indexStore) Clear(ctx context.Context, userID string) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM index_chunks WHERE user_id = ?", userID); err != nil {
		return fmt.Errorf("deleting chunks: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM index_metadata WHERE user_id = ?", userID); err != nil {
		return fmt.Errorf("deleting metadata: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Replace clears the previous index and writes the new metadata and
// chunks in batches of ReplaceBatchSize rows. The sequence is not one
// transaction: a failure part-way leaves the index empty or partially
// populated, which the caller records in the status store.
func (s *indexStore) Replace(ctx context.Context, userID string, chunks []domain.EmbeddedChunk, meta domain.IndexMetadata) error {
	if err := s.Clear(ctx, userID); err != nil {
		return fmt.Errorf("clearing previous index: %w", err)
	}

	for start := 0; start < len(chunks); start += ReplaceBatchSize {
		end := start + ReplaceBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		if err := s.writeBatch(ctx, userID, start, chunks[start:end]); err != nil {
			return fmt.Errorf("writing chunks %d-%d: %w", start, end-1, err)
		}
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO index_metadata
			(user_id, total_chunks, total_pages, embedding_model, chunk_size, chunk_overlap, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			total_chunks = excluded.total_chunks,
			total_pages = excluded.total_pages,
			embedding_model = excluded.embedding_model,
			chunk_size = excluded.chunk_size,
			chunk_overlap = excluded.chunk_overlap,
			updated_at = excluded.updated_at
	`, userID, meta.TotalChunks, meta.TotalPages, meta.EmbeddingModel,
		meta.ChunkSize, meta.ChunkOverlap, meta.CreatedAt, meta.UpdatedAt)

	if err != nil {
		return fmt.Errorf("saving metadata: %w", err)
	}
	return nil
}

// writeBatch inserts one bounded batch of chunk rows in its own
// transaction. offset is the storage position of the first chunk and
// determines the chunk keys.
func (s *indexStore) writeBatch(ctx context.Context, userID string, offset int, chunks []domain.EmbeddedChunk) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO index_chunks
			(user_id, chunk_key, position, chunk_id, text, page_id, page_name,
			 chunk_index, total_chunks, char_count, created_at, embedding, dimension)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for i, chunk := range chunks {
		position := offset + i
		key := fmt.Sprintf("chunk_%d", position)
		blob := float32SliceToBytes(chunk.Embedding)

		if _, err := stmt.ExecContext(ctx, userID, key, position, chunk.ID, chunk.Text,
			chunk.Metadata.PageID, chunk.Metadata.PageName,
			chunk.Metadata.ChunkIndex, chunk.Metadata.TotalChunks, chunk.Metadata.CharCount,
			chunk.Metadata.CreatedAt, blob, chunk.Dimension); err != nil {
			return fmt.Errorf("inserting chunk %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// ReadAll returns every stored chunk for the user in storage order.
func (s *indexStore) ReadAll(ctx context.Context, userID string) ([]domain.EmbeddedChunk, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT chunk_id, text, page_id, page_name, chunk_index, total_chunks,
		       char_count, created_at, embedding, dimension
		FROM index_chunks WHERE user_id = ?
		ORDER BY position
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	chunks := []domain.EmbeddedChunk{}
	for rows.Next() {
		var chunk domain.EmbeddedChunk
		var blob []byte
		if err := rows.Scan(&chunk.ID, &chunk.Text,
			&chunk.Metadata.PageID, &chunk.Metadata.PageName,
			&chunk.Metadata.ChunkIndex, &chunk.Metadata.TotalChunks,
			&chunk.Metadata.CharCount, &chunk.Metadata.CreatedAt,
			&blob, &chunk.Dimension); err != nil {
			return nil, fmt.Errorf("scanning chunk: %w", err)
		}
		chunk.Metadata.Owner = userID
		chunk.Embedding = bytesToFloat32Slice(blob)
		chunks = append(chunks, chunk)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunks: %w", err)
	}

	return chunks, nil
}

// Exists reports whether a non-empty index is stored for the user.
func (s *indexStore) Exists(ctx context.Context, userID string) (bool, error) {
	var count int
	err := s.store.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM index_chunks WHERE user_id = ?", userID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("counting chunks: %w", err)
	}
	return count > 0, nil
}

// Metadata returns the stored index metadata.
func (s *indexStore) Metadata(ctx context.Context, userID string) (*domain.IndexMetadata, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT total_chunks, total_pages, embedding_model, chunk_size, chunk_overlap, created_at, updated_at
		FROM index_metadata WHERE user_id = ?
	`, userID)

	var meta domain.IndexMetadata
	if err := row.Scan(&meta.TotalChunks, &meta.TotalPages, &meta.EmbeddingModel,
		&meta.ChunkSize, &meta.ChunkOverlap, &meta.CreatedAt, &meta.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning metadata: %w", err)
	}

	return &meta, nil
}
