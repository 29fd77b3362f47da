package domain

// Page represents one note page as stored by the hosting application.
// It is the immutable raw input to the indexing pipeline; the pipeline
// never writes pages back.
type Page struct {
	// ID is the unique identifier for the page.
	ID string

	// Owner is the user ID that owns the page.
	Owner string

	// Name is the human-readable page title.
	Name string

	// RawContent is the page body as authored, typically HTML.
	// May be empty; empty pages are skipped during indexing.
	RawContent string
}
