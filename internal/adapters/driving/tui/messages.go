package tui

import (
	"github.com/custodia-labs/noterag-cli/internal/core/domain"
)

// AnswerReceived carries the result of an ask call back to the model.
type AnswerReceived struct {
	Question string
	Answer   *domain.Answer
	Err      error
}
