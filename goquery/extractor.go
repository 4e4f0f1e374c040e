package goquery

import "github.com/fwojciec/pagetext"

// Ensure Extractor implements pagetext.Cleaner at compile time.
var _ pagetext.Cleaner = (*Extractor)(nil)

// Extractor cleans pages using a preferred content selector.
type Extractor struct {
	selector string
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithSelector sets the preferred content selector.
// Defaults to ArticleSelector if not specified.
func WithSelector(selector string) Option {
	return func(e *Extractor) {
		e.selector = selector
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{selector: ArticleSelector}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Clean returns the normalized text of the page's content element.
func (e *Extractor) Clean(html string) string {
	return ExtractContentElement(html, e.selector).Text()
}

// ToDocument builds a Document from a fetched page.
func (e *Extractor) ToDocument(url, html, mirrorBase string) *pagetext.Document {
	return pagetext.NewDocument(url, e.Clean(html), mirrorBase)
}

// ExtractLinks returns every anchor href inside the page body, in document
// order, duplicates included.
func ExtractLinks(html string) []string {
	return ExtractContentElement(html, BodySelector).Links()
}
