package driving

import "context"

// IndexBuilder coordinates a full rebuild of one user's vector index.
type IndexBuilder interface {
	// Build pulls all of the user's pages, normalises, chunks, embeds
	// and atomically-in-intent replaces the stored index. It either
	// completes with a populated index or returns an error with a clear
	// reason. Builds for the same user are serialised; a second call
	// while one is running returns domain.ErrBuildInProgress.
	Build(ctx context.Context, userID string) (*BuildSummary, error)

	// Status returns progress for a running or idle build.
	Status(ctx context.Context, userID string) (*BuildStatus, error)
}

// BuildSummary reports what a completed build produced.
type BuildSummary struct {
	// PagesFound is the number of pages listed for the user.
	PagesFound int

	// PagesIndexed is the number of pages that produced chunks.
	PagesIndexed int

	// PagesEmpty is the number of pages skipped for empty content.
	PagesEmpty int

	// ChunksCreated is the total number of chunks stored.
	ChunksCreated int

	// ChunksDegraded is the number of chunks stored with a neutral
	// zero vector after embedding failures.
	ChunksDegraded int
}

// BuildStatus represents the current state of a build operation.
type BuildStatus struct {
	// UserID identifies the user whose index is being built.
	UserID string

	// Running indicates if a build is currently in progress.
	Running bool

	// Step is the current pipeline stage name.
	Step string

	// ChunksEmbedded is the count of chunks embedded so far.
	ChunksEmbedded int

	// ChunksTotal is the total number of chunks to embed.
	ChunksTotal int
}
