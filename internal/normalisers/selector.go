package normalisers

import (
	"regexp"

	"github.com/custodia-labs/noterag-cli/internal/core/ports/driven"
	htmlnorm "github.com/custodia-labs/noterag-cli/internal/normalisers/html"
	"github.com/custodia-labs/noterag-cli/internal/normalisers/plaintext"
)

// Ensure Selector implements the interface.
var _ driven.Normaliser = (*Selector)(nil)

// markupPattern detects HTML-looking content: a known tag, opening or
// closing, anywhere in the body.
var markupPattern = regexp.MustCompile(`(?is)</?(html|head|body|div|p|span|br|h[1-6]|ul|ol|li|table|a|img|script|style)\b`)

// Selector routes a raw page body to the right normaliser based on its
// content. Pages exported from a browser are HTML; hand-written notes
// are plain text or markdown and only need whitespace cleanup.
type Selector struct {
	html  *htmlnorm.Normaliser
	plain *plaintext.Normaliser
}

// New creates a content-sniffing normaliser.
func New() *Selector {
	return &Selector{
		html:  htmlnorm.New(),
		plain: plaintext.New(),
	}
}

// Normalise converts the raw body to plain text.
func (s *Selector) Normalise(raw string) string {
	if markupPattern.MatchString(raw) {
		return s.html.Normalise(raw)
	}
	return s.plain.Normalise(raw)
}
