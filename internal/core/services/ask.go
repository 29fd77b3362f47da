package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/noterag-cli/internal/core/domain"
	"github.com/custodia-labs/noterag-cli/internal/core/ports/driven"
	"github.com/custodia-labs/noterag-cli/internal/core/ports/driving"
	"github.com/custodia-labs/noterag-cli/internal/logger"
)

// Ensure RagService implements the interface.
var _ driving.AskService = (*RagService)(nil)

// RagService answers questions grounded in a user's stored index:
// embed query -> retrieve top-k -> synthesise.
//
// A query is a best-effort read: retrieval and generation failures are
// absorbed into the fixed apologetic answer rather than propagated. Only
// a missing credential is returned as an error, since nothing can run
// without one. A query during a rebuild may observe a transiently empty
// or partial index; that is a valid degraded result, not an error.
type RagService struct {
	settings driven.SettingsStore
	ai       driven.AIFactory
	index    driven.IndexStore
	topK     int
}

// RagOption configures the service.
type RagOption func(*RagService)

// WithTopK sets the number of chunks retrieved per question.
func WithTopK(k int) RagOption {
	return func(s *RagService) {
		if k > 0 {
			s.topK = k
		}
	}
}

// NewRagService creates an ask service.
func NewRagService(settings driven.SettingsStore, ai driven.AIFactory, index driven.IndexStore, opts ...RagOption) *RagService {
	s := &RagService{
		settings: settings,
		ai:       ai,
		index:    index,
		topK:     DefaultTopK,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ask answers the question from the user's indexed notes.
func (s *RagService) Ask(ctx context.Context, userID, question string) (*domain.Answer, error) {
	logger.Section("Ask")
	logger.Debug("Question: %q", question)

	question = strings.TrimSpace(question)
	if question == "" {
		return nil, domain.ErrInvalidInput
	}

	settings, err := s.settings.GetAISettings(ctx, userID)
	if err != nil || settings.APIKey == "" {
		return nil, fmt.Errorf("%w for user %s", domain.ErrNoAPIKey, userID)
	}

	embedSvc, err := s.ai.NewEmbeddingService(settings.APIKey)
	if err != nil {
		logger.Warn("Embedding service creation failed: %v", err)
		return errorAnswer(), nil
	}
	defer embedSvc.Close()

	llmSvc, err := s.ai.NewLLMService(settings.APIKey)
	if err != nil {
		logger.Warn("LLM service creation failed: %v", err)
		return errorAnswer(), nil
	}
	defer llmSvc.Close()

	// Embed the question. No zero-vector fallback here: without a query
	// vector there is nothing to rank against.
	queryVec, err := NewEmbedder(embedSvc).EmbedQuery(ctx, question)
	if err != nil {
		logger.Warn("Query embedding failed: %v", err)
		return errorAnswer(), nil
	}
	logger.Debug("Query embedding: %d dimensions", len(queryVec))

	chunks, err := s.index.ReadAll(ctx, userID)
	if err != nil {
		logger.Warn("Index read failed: %v", err)
		return errorAnswer(), nil
	}
	logger.Debug("Index: %d stored chunks", len(chunks))

	matches := NewRetriever(s.topK).TopK(queryVec, chunks)
	logger.Info("Retrieved %d matches", len(matches))

	answer, err := NewSynthesizer(llmSvc).Synthesise(ctx, question, matches)
	if err != nil {
		logger.Warn("Synthesis failed: %v", err)
		return errorAnswer(), nil
	}
	return answer, nil
}

// errorAnswer is the structured answer for internal query failures.
func errorAnswer() *domain.Answer {
	return &domain.Answer{
		Text:        domain.AnswerError,
		Matches:     []domain.Match{},
		ContextUsed: 0,
	}
}
