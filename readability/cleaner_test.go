package readability_test

import (
	"testing"

	"github.com/fwojciec/pagetext"
	"github.com/fwojciec/pagetext/goquery"
	"github.com/fwojciec/pagetext/readability"
	"github.com/stretchr/testify/assert"
)

// Ensure Cleaner implements pagetext.Cleaner at compile time.
var _ pagetext.Cleaner = (*readability.Cleaner)(nil)

func newCleaner() *readability.Cleaner {
	return readability.NewCleaner(goquery.NewExtractor(goquery.WithSelector(goquery.BodySelector)))
}

func TestCleaner_EmptyInput(t *testing.T) {
	t.Parallel()

	assert.Empty(t, newCleaner().Clean(""))
	assert.Empty(t, newCleaner().Clean("  \n "))
}

func TestCleaner_RemovesNavigationAndFooter(t *testing.T) {
	t.Parallel()

	html := `<!DOCTYPE html>
<html>
<head><title>Test</title></head>
<body>
<nav><a href="/home">Home Nav Link</a><a href="/about">About Nav Link</a></nav>
<article><p>This is the main article content that should be preserved in the output.</p></article>
<footer><p>Footer copyright text 2024</p></footer>
</body>
</html>`

	text := newCleaner().Clean(html)

	assert.Contains(t, text, "This is the main article content that should be preserved in the output.")
	assert.NotContains(t, text, "Home Nav Link")
	assert.NotContains(t, text, "Footer copyright text")
}

func TestCleaner_FlattensParagraphs(t *testing.T) {
	t.Parallel()

	html := `<!DOCTYPE html>
<html>
<head><title>Test</title></head>
<body>
<article>
<p>First paragraph of content.</p>
<p>Second paragraph of content.</p>
</article>
</body>
</html>`

	text := newCleaner().Clean(html)

	assert.Contains(t, text, "First paragraph of content. Second paragraph of content.")
	assert.NotContains(t, text, "\n")
}

func TestCleaner_PlainTextFallsBack(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Not actually html", newCleaner().Clean("Not actually html"))
}
