// Package readability cleans pages by first isolating the main article with
// go-readability, which scores nodes instead of relying on a fixed selector.
package readability

import (
	"strings"

	"github.com/fwojciec/pagetext"
	"github.com/go-shiori/go-readability"
)

// Ensure Cleaner implements pagetext.Cleaner at compile time.
var _ pagetext.Cleaner = (*Cleaner)(nil)

// Cleaner extracts the readable article from a page and flattens it with
// a text cleaner. Pages readability cannot handle go to the text cleaner
// unchanged.
type Cleaner struct {
	text pagetext.Cleaner
}

// NewCleaner creates a new Cleaner that flattens article HTML with text.
func NewCleaner(text pagetext.Cleaner) *Cleaner {
	return &Cleaner{text: text}
}

// Clean returns the normalized text of the page's main article.
func (c *Cleaner) Clean(rawHTML string) string {
	if strings.TrimSpace(rawHTML) == "" {
		return ""
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil || strings.TrimSpace(article.Content) == "" {
		return c.text.Clean(rawHTML)
	}
	return c.text.Clean(article.Content)
}
