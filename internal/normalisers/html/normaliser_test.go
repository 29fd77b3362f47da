package html

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/noterag-cli/internal/core/ports/driven"
)

func TestNew(t *testing.T) {
	normaliser := New()
	require.NotNil(t, normaliser)
	assert.IsType(t, &Normaliser{}, normaliser)
}

func TestNormalise(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "whitespace only",
			input:    "   \n\t  \n",
			expected: "",
		},
		{
			name:     "simple paragraph",
			input:    "<p>Hello World</p>",
			expected: "Hello World",
		},
		{
			name:     "nested tags",
			input:    "<div><p><strong>Bold</strong> text</p></div>",
			expected: "Bold text",
		},
		{
			name:     "script removed",
			input:    "<p>Before</p><script>alert('evil');</script><p>After</p>",
			expected: "Before\nAfter",
		},
		{
			name:     "style removed",
			input:    "<style>.foo { color: red; }</style><p>Content</p>",
			expected: "Content",
		},
		{
			name:     "noscript removed",
			input:    "<p>Content</p><noscript>No JS fallback</noscript>",
			expected: "Content",
		},
		{
			name:     "head removed",
			input:    "<head><meta charset='utf-8'><title>Title</title></head><body>Content</body>",
			expected: "Content",
		},
		{
			name:     "br to newline",
			input:    "Line 1<br>Line 2<br/>Line 3",
			expected: "Line 1\nLine 2\nLine 3",
		},
		{
			name:     "block elements create newlines",
			input:    "<div>Block 1</div><div>Block 2</div>",
			expected: "Block 1\nBlock 2",
		},
		{
			name:     "HTML entities decoded",
			input:    "<p>&lt;tag&gt; &amp; &quot;quotes&quot;</p>",
			expected: "<tag> & \"quotes\"",
		},
		{
			name:     "comments removed",
			input:    "<p>Before</p><!-- comment --><p>After</p>",
			expected: "Before\nAfter",
		},
		{
			name:     "list items",
			input:    "<ul><li>Item 1</li><li>Item 2</li></ul>",
			expected: "Item 1\nItem 2",
		},
		{
			name:     "headings",
			input:    "<h1>Title</h1><h2>Subtitle</h2><p>Content</p>",
			expected: "Title\nSubtitle\nContent",
		},
		{
			name:     "links - text preserved",
			input:    `<a href="https://example.com">Click here</a>`,
			expected: "Click here",
		},
		{
			name:     "images removed",
			input:    `<p>See <img src="image.png" alt="Image"> here</p>`,
			expected: "See here",
		},
		{
			name:     "svg removed",
			input:    `<p>Before</p><svg width="100"><circle cx="50"/></svg><p>After</p>`,
			expected: "Before\nAfter",
		},
		{
			name:     "multiple spaces collapsed",
			input:    "<p>spaced    out\t\ttext</p>",
			expected: "spaced out text",
		},
		{
			name:     "blank lines dropped",
			input:    "<p>First</p>\n\n\n\n<p>Second</p>",
			expected: "First\nSecond",
		},
	}

	normaliser := New()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, normaliser.Normalise(tc.input))
		})
	}
}

func TestNormalise_FullPage(t *testing.T) {
	page := `<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>Weekly Notes</title>
    <style>
        body { font-family: Arial; }
    </style>
</head>
<body>
    <main>
        <article>
            <h2>Project Ideas</h2>
            <p>This is a <strong>paragraph</strong> with <em>emphasis</em>.</p>

            <ul>
                <li>First item</li>
                <li>Second item</li>
            </ul>

            <blockquote>
                A famous quote here.
            </blockquote>
        </article>
    </main>

    <script>
        console.log('This should be removed');
    </script>

    <!-- This is a comment that should be removed -->

    <footer>
        <p>&copy; 2024 Notes App</p>
    </footer>
</body>
</html>`

	text := New().Normalise(page)

	assert.NotContains(t, text, "<strong>")
	assert.Contains(t, text, "paragraph with emphasis")
	assert.NotContains(t, text, "console.log")
	assert.NotContains(t, text, "font-family")
	assert.NotContains(t, text, "<!--")
	assert.NotContains(t, text, "Weekly Notes") // head content dropped
	assert.Contains(t, text, "Project Ideas")
	assert.Contains(t, text, "First item")
	assert.Contains(t, text, "2024 Notes App") // entity decoded
}

func TestNormalise_Deterministic(t *testing.T) {
	input := "<div><h1>Title</h1><p>Some content with <b>markup</b>.</p></div>"
	normaliser := New()
	assert.Equal(t, normaliser.Normalise(input), normaliser.Normalise(input))
}

func TestInterfaceCompliance(t *testing.T) {
	var _ driven.Normaliser = (*Normaliser)(nil)
}

func BenchmarkNormalise(b *testing.B) {
	content := `<html>
<head><title>Test</title><style>body{}</style></head>
<body>
<h1>Heading</h1>
<p>Paragraph with <strong>bold</strong> and <em>italic</em>.</p>
<ul><li>Item 1</li><li>Item 2</li></ul>
<script>alert('test');</script>
</body>
</html>`

	normaliser := New()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = normaliser.Normalise(content)
	}
}
