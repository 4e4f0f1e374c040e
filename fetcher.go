package pagetext

import (
	"context"
	"mime"
	"strings"
)

// Response is the raw result of a single fetch.
type Response struct {
	URL         string
	StatusCode  int
	ContentType string
	Body        string
}

// IsHTML reports whether the response should go through HTML extraction.
// A missing content type is treated as HTML.
func (r *Response) IsHTML() bool {
	if r.ContentType == "" {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(r.ContentType)
	if err != nil {
		return true
	}
	return mediaType == "text/html" ||
		mediaType == "application/xhtml+xml" ||
		strings.HasSuffix(mediaType, "+html")
}

// Fetcher retrieves a single address.
type Fetcher interface {
	// Fetch retrieves the URL and returns its body. Implementations bound
	// the call by their own timeout and report failures as application
	// errors (ETIMEOUT, ENETWORK, ESTATUS, ECANCELED).
	Fetch(ctx context.Context, url string) (*Response, error)

	// Close releases resources held by the fetcher.
	Close() error
}

// DomainLimiter paces requests per domain.
type DomainLimiter interface {
	// Wait blocks until a request to domain is allowed or ctx is done.
	Wait(ctx context.Context, domain string) error
}
