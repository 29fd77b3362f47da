package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/noterag-cli/internal/core/domain"
	"github.com/custodia-labs/noterag-cli/internal/core/ports/driven"
	"github.com/custodia-labs/noterag-cli/internal/logger"
)

// Synthesizer assembles a grounded prompt from retrieved chunks and
// delegates to the generation service.
type Synthesizer struct {
	llm driven.LLMService
}

// NewSynthesizer creates a synthesizer over the given LLM service.
func NewSynthesizer(llm driven.LLMService) *Synthesizer {
	return &Synthesizer{llm: llm}
}

// Synthesise produces a grounded answer for the question from the
// retrieved matches. With zero matches, generation is skipped entirely
// and the fixed no-content answer is returned.
func (s *Synthesizer) Synthesise(ctx context.Context, question string, matches []domain.SearchResult) (*domain.Answer, error) {
	if len(matches) == 0 {
		return &domain.Answer{
			Text:        domain.AnswerNoContent,
			Matches:     []domain.Match{},
			ContextUsed: 0,
		}, nil
	}

	prompt := BuildPrompt(question, matches)
	logger.Debug("Prompt assembled: %d matches, %d characters", len(matches), len(prompt))

	text, err := s.llm.Generate(ctx, prompt, driven.GenerateOptions{})
	if err != nil {
		return nil, fmt.Errorf("generate answer: %w", err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		text = domain.AnswerError
	}

	answer := &domain.Answer{
		Text:        text,
		Matches:     make([]domain.Match, 0, len(matches)),
		ContextUsed: len(matches),
	}
	for _, m := range matches {
		answer.Matches = append(answer.Matches, domain.Match{
			PageName:    m.Chunk.Metadata.PageName,
			ChunkIndex:  m.Chunk.Metadata.ChunkIndex,
			Score:       m.Score,
			TextPreview: domain.Preview(m.Chunk.Text),
		})
	}
	return answer, nil
}

// BuildPrompt composes the grounded generation prompt. Each match is
// listed 1-indexed in retrieval order so the model can cite sources by
// bracket index.
func BuildPrompt(question string, matches []domain.SearchResult) string {
	blocks := make([]string, 0, len(matches))
	for i, m := range matches {
		blocks = append(blocks, fmt.Sprintf(
			"[%d] PAGE: %s | chunk: %d | score: %.4f\n%s",
			i+1, m.Chunk.Metadata.PageName, m.Chunk.Metadata.ChunkIndex, m.Score, m.Chunk.Text,
		))
	}
	context := strings.Join(blocks, "\n\n")

	return "You are a helpful assistant that answers questions based on the user's personal knowledge base. " +
		"Use ONLY the provided context from their notes to answer the question. " +
		"If the answer is not in the context, say '" + domain.AnswerNotFound + "' " +
		"Cite the relevant sections using [1], [2], etc.\n\n" +
		"QUESTION: " + question + "\n\n" +
		"CONTEXT FROM YOUR NOTES:\n" + context + "\n\n" +
		"ANSWER:"
}
