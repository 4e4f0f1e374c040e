// Package htmltomarkdown renders a page's content element as Markdown for
// callers that want structure (headings, lists, links) kept in the text.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/pagetext"
	"github.com/fwojciec/pagetext/goquery"
)

// Ensure Cleaner implements pagetext.Cleaner at compile time.
var _ pagetext.Cleaner = (*Cleaner)(nil)

// Cleaner converts the selected content element of a page to Markdown.
// Unlike the flat-text cleaners, its output keeps line structure.
type Cleaner struct {
	conv     *converter.Converter
	selector string
}

// NewCleaner creates a new Cleaner preferring the given content selector.
func NewCleaner(selector string) *Cleaner {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Cleaner{conv: conv, selector: selector}
}

// Clean returns Markdown for the page's content element. If conversion
// fails the flat text of the element is returned instead.
func (c *Cleaner) Clean(rawHTML string) string {
	if strings.TrimSpace(rawHTML) == "" {
		return ""
	}

	content := goquery.ExtractContentElement(rawHTML, c.selector)
	md, err := c.conv.ConvertString(content.HTML())
	if err != nil {
		return content.Text()
	}
	return strings.TrimSpace(md)
}
