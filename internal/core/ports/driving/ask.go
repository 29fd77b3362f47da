package driving

import (
	"context"

	"github.com/custodia-labs/noterag-cli/internal/core/domain"
)

// AskService answers natural-language questions grounded in the user's
// indexed notes.
type AskService interface {
	// Ask embeds the question, retrieves the top matching chunks from
	// the user's stored index and synthesises a grounded answer.
	//
	// Ask never returns an error for retrieval or generation failures:
	// it always produces a structured Answer, using the fixed sentinel
	// texts for the not-found and error cases. Only a missing credential
	// surfaces as an error, since nothing can run without one.
	Ask(ctx context.Context, userID, question string) (*domain.Answer, error)
}
