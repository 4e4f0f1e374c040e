// Package trafilatura cleans pages with go-trafilatura, which strips
// boilerplate such as navigation, sidebars and footers before flattening.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/pagetext"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Cleaner implements pagetext.Cleaner at compile time.
var _ pagetext.Cleaner = (*Cleaner)(nil)

// Cleaner extracts the main content of a page with trafilatura and
// flattens it with a text cleaner.
type Cleaner struct {
	text pagetext.Cleaner
}

// NewCleaner creates a new Cleaner that flattens extracted HTML with text.
func NewCleaner(text pagetext.Cleaner) *Cleaner {
	return &Cleaner{text: text}
}

// Clean returns the normalized text of the page's main content.
func (c *Cleaner) Clean(rawHTML string) string {
	if strings.TrimSpace(rawHTML) == "" {
		return ""
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil || result == nil || result.ContentNode == nil {
		return c.text.Clean(rawHTML)
	}

	content, err := renderNode(result.ContentNode)
	if err != nil {
		return c.text.Clean(rawHTML)
	}
	return c.text.Clean(content)
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
