package pagetext

import "strings"

// Cleaner reduces an HTML document to text. Flat-text cleaners collapse
// whitespace with NormalizeWhitespace; structured ones (Markdown) keep lines.
// Implementations must not fail on malformed or non-HTML input.
type Cleaner interface {
	Clean(html string) string
}

// NormalizeWhitespace collapses every run of whitespace, including newlines
// and tabs, into a single ASCII space and trims both ends.
// It is idempotent.
func NormalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
