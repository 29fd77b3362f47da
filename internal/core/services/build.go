package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/noterag-cli/internal/core/domain"
	"github.com/custodia-labs/noterag-cli/internal/core/ports/driven"
	"github.com/custodia-labs/noterag-cli/internal/core/ports/driving"
	"github.com/custodia-labs/noterag-cli/internal/logger"
)

// Ensure BuildOrchestrator implements the interface.
var _ driving.IndexBuilder = (*BuildOrchestrator)(nil)

// pingTimeout is the maximum time to wait for credential validation.
const pingTimeout = 5 * time.Second

// BuildOrchestrator coordinates a full index rebuild for one user:
// load pages -> normalise -> chunk -> embed -> replace stored index.
//
// Builds for the same user are serialised with a per-user run lock held
// for the duration of Build. The replace step is not mutually exclusive
// on its own, so two interleaved builds would corrupt the index.
// Builds for different users are independent and may run in parallel.
type BuildOrchestrator struct {
	pages      driven.PageStore
	settings   driven.SettingsStore
	ai         driven.AIFactory
	normaliser driven.Normaliser
	splitter   driven.Splitter
	index      driven.IndexStore
	status     driven.StatusSink

	embedBatch int

	// Run-lock and status tracking, keyed by user ID.
	mu     sync.Mutex
	active map[string]*driving.BuildStatus
}

// BuildOption configures the orchestrator.
type BuildOption func(*BuildOrchestrator)

// WithEmbedBatchSize sets the embedding batch size.
func WithEmbedBatchSize(n int) BuildOption {
	return func(o *BuildOrchestrator) {
		if n > 0 {
			o.embedBatch = n
		}
	}
}

// NewBuildOrchestrator creates a build orchestrator.
// The status sink is optional; when nil, progress is only logged.
func NewBuildOrchestrator(
	pages driven.PageStore,
	settings driven.SettingsStore,
	ai driven.AIFactory,
	normaliser driven.Normaliser,
	splitter driven.Splitter,
	index driven.IndexStore,
	status driven.StatusSink,
	opts ...BuildOption,
) *BuildOrchestrator {
	o := &BuildOrchestrator{
		pages:      pages,
		settings:   settings,
		ai:         ai,
		normaliser: normaliser,
		splitter:   splitter,
		index:      index,
		status:     status,
		embedBatch: DefaultEmbedBatchSize,
		active:     make(map[string]*driving.BuildStatus),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Build rebuilds the user's index. It either completes with a populated
// index or returns an error naming the failed stage. Configuration
// errors (missing key, rejected credential) surface immediately;
// per-chunk embedding failures degrade to zero vectors instead.
func (o *BuildOrchestrator) Build(ctx context.Context, userID string) (*driving.BuildSummary, error) {
	if err := o.acquire(userID); err != nil {
		return nil, err
	}
	defer o.release(userID)

	logger.Section("Index Build")
	logger.Info("Building index for user %s", userID)
	o.step(ctx, userID, "Build Starting", map[string]any{"status": "starting"})

	embedSvc, err := o.embeddingService(ctx, userID)
	if err != nil {
		o.recordError(ctx, userID, err)
		return nil, err
	}
	defer embedSvc.Close()

	// Stage 1: load pages.
	o.setStage(userID, "loading pages")
	pages, err := o.pages.ListPages(ctx, userID)
	if err != nil {
		o.recordError(ctx, userID, err)
		return nil, fmt.Errorf("list pages: %w", err)
	}
	logger.Info("Loaded %d pages", len(pages))
	o.step(ctx, userID, "Pages Loaded", map[string]any{"total_pages": len(pages), "status": "completed"})

	summary := &driving.BuildSummary{PagesFound: len(pages)}
	if len(pages) == 0 {
		o.step(ctx, userID, "Build Complete", map[string]any{"status": "completed", "message": "no pages found"})
		return summary, nil
	}

	// Stage 2: normalise and chunk.
	o.setStage(userID, "chunking")
	chunks := o.chunkPages(userID, pages, summary)
	logger.Info("Created %d chunks from %d pages", len(chunks), summary.PagesIndexed)
	o.step(ctx, userID, "Chunks Created", map[string]any{"total_chunks": len(chunks), "status": "completed"})

	if len(chunks) == 0 {
		o.step(ctx, userID, "Build Complete", map[string]any{"status": "completed", "message": "no chunks created"})
		return summary, nil
	}

	// Stage 3: embed. From here on the status record always reaches a
	// terminal state: ready after the replace, error on any failure.
	o.setStage(userID, "embedding")
	o.setChunkTotals(userID, 0, len(chunks))
	o.setIndexStatus(ctx, userID, domain.IndexStatus{
		Enabled:     false,
		Status:      domain.IndexStatusBuilding,
		LastUpdated: time.Now().UTC(),
	})
	embedder := NewEmbedder(embedSvc,
		WithBatchSize(o.embedBatch),
		WithProgress(func(completed, total int) {
			o.setChunkTotals(userID, completed, total)
			o.step(ctx, userID, "Embedding Progress", map[string]any{
				"completed": completed,
				"total":     total,
				"status":    "in_progress",
			})
		}),
	)
	embedded, degraded, err := embedder.EmbedChunks(ctx, chunks)
	if err != nil {
		o.recordError(ctx, userID, err)
		return nil, fmt.Errorf("embed chunks: %w", err)
	}
	if degraded > 0 {
		logger.Error("%d of %d chunks degraded to zero vectors", degraded, len(embedded))
	}
	summary.ChunksCreated = len(embedded)
	summary.ChunksDegraded = degraded

	// Stage 4: replace stored index.
	o.setStage(userID, "storing")
	now := time.Now().UTC()
	meta := domain.IndexMetadata{
		TotalChunks:    len(embedded),
		TotalPages:     summary.PagesIndexed,
		EmbeddingModel: embedSvc.ModelName(),
		ChunkSize:      o.splitter.ChunkSize(),
		ChunkOverlap:   o.splitter.Overlap(),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := o.index.Replace(ctx, userID, embedded, meta); err != nil {
		// The index is left in whatever partial state the failed write
		// sequence produced; the status records the error but nothing
		// rolls back prior writes.
		o.recordError(ctx, userID, err)
		return nil, fmt.Errorf("replace index: %w", err)
	}

	o.setIndexStatus(ctx, userID, domain.IndexStatus{
		Enabled:     true,
		Status:      domain.IndexStatusReady,
		LastUpdated: now,
		TotalChunks: meta.TotalChunks,
		TotalPages:  meta.TotalPages,
	})
	o.step(ctx, userID, "Build Complete", map[string]any{
		"status":         "completed",
		"pages_indexed":  summary.PagesIndexed,
		"chunks_created": summary.ChunksCreated,
	})
	logger.Info("Build complete: %d chunks from %d pages (%d degraded)",
		summary.ChunksCreated, summary.PagesIndexed, summary.ChunksDegraded)

	return summary, nil
}

// Status returns progress for a running or idle build.
func (o *BuildOrchestrator) Status(_ context.Context, userID string) (*driving.BuildStatus, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if status, ok := o.active[userID]; ok {
		copied := *status
		return &copied, nil
	}
	return &driving.BuildStatus{UserID: userID, Running: false}, nil
}

// embeddingService resolves the user's credential and creates a
// validated embedding service. All failures here are configuration
// errors: fatal and never degraded.
func (o *BuildOrchestrator) embeddingService(ctx context.Context, userID string) (driven.EmbeddingService, error) {
	settings, err := o.settings.GetAISettings(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w for user %s", domain.ErrNoAPIKey, userID)
	}
	if settings.APIKey == "" {
		return nil, fmt.Errorf("%w for user %s", domain.ErrNoAPIKey, userID)
	}

	svc, err := o.ai.NewEmbeddingService(settings.APIKey)
	if err != nil {
		return nil, fmt.Errorf("create embedding service: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := svc.Ping(pingCtx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: %w", domain.ErrAuthInvalid, err)
	}
	return svc, nil
}

// chunkPages normalises each page and splits it into chunks with
// positional metadata. Metadata is finalised after the full pass over a
// page, when the chunk count is known.
func (o *BuildOrchestrator) chunkPages(userID string, pages []domain.Page, summary *driving.BuildSummary) []domain.Chunk {
	now := time.Now().UTC()
	var chunks []domain.Chunk

	for _, page := range pages {
		text := o.normaliser.Normalise(page.RawContent)
		if text == "" {
			logger.Debug("Skipping empty page %s", page.ID)
			summary.PagesEmpty++
			continue
		}

		parts := o.splitter.Split(text)
		if len(parts) == 0 {
			summary.PagesEmpty++
			continue
		}
		summary.PagesIndexed++

		for i, part := range parts {
			chunks = append(chunks, domain.Chunk{
				ID:   uuid.New().String(),
				Text: part,
				Metadata: domain.ChunkMetadata{
					PageID:      page.ID,
					PageName:    page.Name,
					ChunkIndex:  i,
					TotalChunks: len(parts),
					CharCount:   len(part),
					Owner:       userID,
					CreatedAt:   now,
				},
			})
		}
		logger.Debug("Page %s: %d chunks (%d chars)", page.ID, len(parts), len(text))
	}

	return chunks
}

// acquire takes the per-user run lock.
func (o *BuildOrchestrator) acquire(userID string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if _, running := o.active[userID]; running {
		return domain.ErrBuildInProgress
	}
	o.active[userID] = &driving.BuildStatus{UserID: userID, Running: true}
	return nil
}

// release drops the per-user run lock.
func (o *BuildOrchestrator) release(userID string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.active, userID)
}

func (o *BuildOrchestrator) setStage(userID, stage string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if status, ok := o.active[userID]; ok {
		status.Step = stage
	}
}

func (o *BuildOrchestrator) setChunkTotals(userID string, embedded, total int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if status, ok := o.active[userID]; ok {
		status.ChunksEmbedded = embedded
		status.ChunksTotal = total
	}
}

// step records a progress step through the status sink. Best-effort: a
// sink failure is logged, never propagated.
func (o *BuildOrchestrator) step(ctx context.Context, userID, name string, details map[string]any) {
	logger.Debug("Step: %s %v", name, details)
	if o.status == nil {
		return
	}
	err := o.status.SetStep(ctx, userID, domain.StatusStep{
		Step:      name,
		Details:   details,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		logger.Warn("Status step write failed: %v", err)
	}
}

// setIndexStatus writes the compact status record. Best-effort.
func (o *BuildOrchestrator) setIndexStatus(ctx context.Context, userID string, status domain.IndexStatus) {
	if o.status == nil {
		return
	}
	if err := o.status.SetIndexStatus(ctx, userID, status); err != nil {
		logger.Warn("Index status write failed: %v", err)
	}
}

// recordError marks the status record after a failed build. The index
// itself is left in whatever state the failure produced.
func (o *BuildOrchestrator) recordError(ctx context.Context, userID string, buildErr error) {
	o.step(ctx, userID, "Build Failed", map[string]any{"status": "error", "error": buildErr.Error()})
	o.setIndexStatus(ctx, userID, domain.IndexStatus{
		Enabled:     false,
		Status:      domain.IndexStatusError,
		LastUpdated: time.Now().UTC(),
	})
}
