// Package goquery reduces HTML documents to their primary textual content
// using goquery selections.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pagetext"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Selectors used by the extractor.
const (
	BodySelector    = "body"
	ArticleSelector = "article"
)

// Content is the subtree selected as a page's primary textual payload.
// When the input could not be parsed at all, Content wraps the raw text.
type Content struct {
	sel *goquery.Selection
	raw string
}

// ExtractContentElement parses rawHTML and selects its content element.
//
// Selection falls back in order: the first element matching selector, the
// body element, the document root, and finally the raw input as opaque text
// when no document could be parsed. Script and style subtrees are removed
// from the selection. It never fails.
func ExtractContentElement(rawHTML, selector string) *Content {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return &Content{raw: rawHTML}
	}

	sel := selectContent(doc, selector)
	sel.Find("script, style").Remove()
	return &Content{sel: sel}
}

func selectContent(doc *goquery.Document, selector string) *goquery.Selection {
	if selector != "" {
		if sel := doc.Find(selector).First(); sel.Length() > 0 {
			return sel
		}
	}
	if sel := doc.Find(BodySelector).First(); sel.Length() > 0 {
		return sel
	}
	return doc.Selection
}

// HTML serializes the selected element including its own tag.
func (c *Content) HTML() string {
	if c.sel == nil {
		return c.raw
	}
	s, err := goquery.OuterHtml(c.sel)
	if err != nil {
		return ""
	}
	return s
}

// Text returns the flat text of the element with whitespace normalized.
func (c *Content) Text() string {
	if c.sel == nil {
		return pagetext.NormalizeWhitespace(c.raw)
	}
	var b strings.Builder
	for _, n := range c.sel.Nodes {
		writeText(&b, n)
	}
	return pagetext.NormalizeWhitespace(b.String())
}

// Links returns the href of every anchor in the element, in document order,
// duplicates included.
func (c *Content) Links() []string {
	if c.sel == nil {
		return nil
	}
	var links []string
	add := func(_ int, s *goquery.Selection) {
		if href, ok := s.Attr("href"); ok {
			links = append(links, href)
		}
	}
	c.sel.Filter("a[href]").Each(add)
	c.sel.Find("a[href]").Each(add)
	return links
}

// writeText appends the text under n, padding block-level elements with
// spaces so that adjacent cells and paragraphs do not run together.
func writeText(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.CommentNode, html.DoctypeNode:
		return
	case html.ElementNode:
		if skipped[n.DataAtom] {
			return
		}
	}

	block := n.Type == html.ElementNode && blocks[n.DataAtom]
	if block {
		b.WriteByte(' ')
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		writeText(b, child)
	}
	if block {
		b.WriteByte(' ')
	}
}

var skipped = map[atom.Atom]bool{
	atom.Script:   true,
	atom.Style:    true,
	atom.Noscript: true,
	atom.Template: true,
}

var blocks = map[atom.Atom]bool{
	atom.Address: true, atom.Article: true, atom.Aside: true,
	atom.Blockquote: true, atom.Body: true, atom.Br: true,
	atom.Caption: true, atom.Dd: true, atom.Details: true,
	atom.Div: true, atom.Dl: true, atom.Dt: true,
	atom.Fieldset: true, atom.Figcaption: true, atom.Figure: true,
	atom.Footer: true, atom.Form: true, atom.H1: true,
	atom.H2: true, atom.H3: true, atom.H4: true,
	atom.H5: true, atom.H6: true, atom.Head: true,
	atom.Header: true, atom.Hr: true, atom.Html: true,
	atom.Li: true, atom.Main: true, atom.Nav: true,
	atom.Ol: true, atom.Option: true, atom.P: true,
	atom.Pre: true, atom.Section: true, atom.Summary: true,
	atom.Table: true, atom.Tbody: true, atom.Td: true,
	atom.Tfoot: true, atom.Th: true, atom.Thead: true,
	atom.Title: true, atom.Tr: true, atom.Ul: true,
}
