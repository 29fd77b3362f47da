package driven

// Normaliser strips markup from a raw page body, producing plain text.
// Normalisation is a pure function of the input: no I/O, deterministic.
// Empty or whitespace-only input yields empty output; callers skip the
// page rather than treating it as an error.
type Normaliser interface {
	// Normalise converts raw markup to plain text with tags, scripts
	// and styles removed and whitespace collapsed to single newlines
	// between non-empty lines.
	Normalise(raw string) string
}
