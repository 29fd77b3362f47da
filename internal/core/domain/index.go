package domain

import "time"

// Index lifecycle states reported through the status record. A build
// moves BUILDING -> READY; before the first build no record exists, so
// readers see ErrNotFound rather than a dedicated state. A crash
// mid-replace can leave the index empty or partially populated, in
// which case the status records the error but no separate terminal
// state is modelled.
const (
	IndexStatusBuilding = "building"
	IndexStatusReady    = "ready"
	IndexStatusError    = "error"
)

// IndexMetadata summarises one user's stored index. It is written once
// per successful build alongside the chunk records.
type IndexMetadata struct {
	// TotalChunks is the number of embedded chunks stored.
	TotalChunks int

	// TotalPages is the number of distinct pages that produced chunks.
	TotalPages int

	// EmbeddingModel is the model identifier the vectors came from.
	EmbeddingModel string

	// ChunkSize is the chunk size in bytes used for the build.
	ChunkSize int

	// ChunkOverlap is the overlap in bytes used for the build.
	ChunkOverlap int

	// CreatedAt is when the index was first built.
	CreatedAt time.Time

	// UpdatedAt is when the index was last rebuilt.
	UpdatedAt time.Time
}

// IndexStatus is the compact fast-read record kept separately from the
// index itself for external consumers such as UI polling. Writes to it
// are best-effort and never on the critical path.
type IndexStatus struct {
	// Enabled indicates a usable index exists.
	Enabled bool

	// Status is one of the IndexStatus* constants.
	Status string

	// LastUpdated is when the status last changed.
	LastUpdated time.Time

	// TotalChunks mirrors IndexMetadata.TotalChunks.
	TotalChunks int

	// TotalPages mirrors IndexMetadata.TotalPages.
	TotalPages int
}

// StatusStep is a single progress event emitted during a build.
type StatusStep struct {
	// Step is the human-readable stage name.
	Step string

	// Details holds arbitrary stage-specific values.
	Details map[string]any

	// Timestamp is when the step was recorded.
	Timestamp time.Time
}
