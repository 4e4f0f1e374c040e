package goquery_test

import (
	"testing"

	"github.com/fwojciec/pagetext"
	"github.com/fwojciec/pagetext/goquery"
	"github.com/stretchr/testify/assert"
)

func TestExtractor_Clean(t *testing.T) {
	t.Parallel()

	t.Run("prefers article content", func(t *testing.T) {
		t.Parallel()

		html := "<html><body><header>Site</header><article>Test content</article></body></html>"

		assert.Equal(t, "Test content", goquery.NewExtractor().Clean(html))
	})

	t.Run("falls back to body without article", func(t *testing.T) {
		t.Parallel()

		html := "<html><body><table><tr><td>Cell11  </td><td>Cell12</td></tr><tr><td> Cell21</td><td>Cell22</td></tr></table></body></html>"

		assert.Equal(t, "Cell11 Cell12 Cell21 Cell22", goquery.NewExtractor().Clean(html))
	})

	t.Run("uses configured selector", func(t *testing.T) {
		t.Parallel()

		html := `<body><div id="main">Main</div><div>Other</div></body>`

		ext := goquery.NewExtractor(goquery.WithSelector("#main"))

		assert.Equal(t, "Main", ext.Clean(html))
	})

	t.Run("passes plain text through", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "just some words", goquery.NewExtractor().Clean("  just\n some\twords "))
	})

	t.Run("is idempotent", func(t *testing.T) {
		t.Parallel()

		inputs := []string{
			"<html><body><article>Test content</article></body></html>",
			"<html><body><table><tr><td>Cell11  </td><td>Cell12</td></tr></table></body></html>",
			"<div>Only part of html</div>",
			"Not actually html",
			"<p>a < b and c > d</p>",
			"",
			"<script>alert(1)</script>\n\n<p>x</p>",
		}
		ext := goquery.NewExtractor()
		for _, in := range inputs {
			once := ext.Clean(in)
			assert.Equal(t, once, ext.Clean(once), "input %q", in)
		}
	})
}

func TestExtractor_ToDocument(t *testing.T) {
	t.Parallel()

	t.Run("builds document from plain HTML content", func(t *testing.T) {
		t.Parallel()

		doc := goquery.NewExtractor().ToDocument("http://example.com", "<html><body><article>Test content</article></body></html>", "")

		assert.Equal(t, "Test content", doc.Text)
		assert.Equal(t, "http://example.com", doc.Metadata.SourceID)
		assert.Equal(t, pagetext.SourceTypeHTML, doc.Metadata.SourceType)
		assert.Equal(t, pagetext.SimpleID("http://example.com"), doc.Metadata.SimpleID)
		assert.Empty(t, doc.Metadata.MirrorBase)
	})

	t.Run("source id is the address for any input", func(t *testing.T) {
		t.Parallel()

		for _, url := range []string{"", "not a url", "https://example.com/?q=1#frag"} {
			doc := goquery.NewExtractor().ToDocument(url, "<<<garbage", "")
			assert.Equal(t, url, doc.Metadata.SourceID)
		}
	})

	t.Run("records mirror base", func(t *testing.T) {
		t.Parallel()

		doc := goquery.NewExtractor().ToDocument("http://example.com/a", "<p>x</p>", "http://mirror.example.com")

		assert.Equal(t, "http://mirror.example.com", doc.Metadata.MirrorBase)
	})
}

func TestExtractLinks(t *testing.T) {
	t.Parallel()

	t.Run("gets URLs from HTML content", func(t *testing.T) {
		t.Parallel()

		links := goquery.ExtractLinks(`<html><body><a href="http://example.com">Example</a></body></html>`)

		assert.Equal(t, []string{"http://example.com"}, links)
	})

	t.Run("returns nothing for text without anchors", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, goquery.ExtractLinks("Not actually html"))
	})
}
