package plaintext

import (
	"regexp"
	"strings"

	"github.com/custodia-labs/noterag-cli/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles note bodies that are already plain text.
type Normaliser struct{}

// New creates a new plaintext normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

var multiSpaces = regexp.MustCompile(`[ \t]+`)

// Normalise collapses whitespace: runs of spaces and tabs become a
// single space, lines are trimmed and blank lines dropped. The text
// content itself is passed through untouched.
func (n *Normaliser) Normalise(raw string) string {
	content := multiSpaces.ReplaceAllString(raw, " ")

	lines := strings.Split(content, "\n")
	var result []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			result = append(result, line)
		}
	}

	return strings.Join(result, "\n")
}
