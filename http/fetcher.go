// Package http provides HTTP implementations of pagetext interfaces: a
// timeout-bounded single-page Fetcher, a BatchClient that delegates a whole
// chunk to a remote endpoint, and the BatchHandler that serves such an
// endpoint.
package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/fwojciec/pagetext"
	"golang.org/x/net/html/charset"
)

// DefaultMaxBodySize caps how much of a response body is read.
const DefaultMaxBodySize = 10 << 20

// errFetchTimeout is the cancellation cause set by the per-request timer.
var errFetchTimeout = errors.New("fetch timeout")

// Ensure Fetcher implements pagetext.Fetcher at compile time.
var _ pagetext.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves a page over HTTP, racing the transfer against a timer.
// When the timer wins, the request context is cancelled, which aborts the
// connection or the body stream and releases its connection slot.
//
// Fetcher is safe for concurrent use.
type Fetcher struct {
	client        *http.Client
	timeout       time.Duration
	headers       map[string]string
	maxBodySize   int64
	statusContent bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the per-request timeout, covering headers and body.
// Defaults to pagetext.DefaultTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithHeaders sets headers sent with every request.
func WithHeaders(headers map[string]string) Option {
	return func(f *Fetcher) {
		f.headers = headers
	}
}

// WithClient sets the underlying HTTP client.
func WithClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.client = c
	}
}

// WithMaxBodySize limits the number of body bytes read per response.
func WithMaxBodySize(n int64) Option {
	return func(f *Fetcher) {
		f.maxBodySize = n
	}
}

// WithErrorStatusAsContent makes non-2xx responses count as content rather
// than ESTATUS failures.
func WithErrorStatusAsContent(v bool) Option {
	return func(f *Fetcher) {
		f.statusContent = v
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		client:      http.DefaultClient,
		timeout:     pagetext.DefaultTimeout,
		maxBodySize: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// NewFetcherFromConfig creates a Fetcher using the timeout and headers of cfg.
func NewFetcherFromConfig(cfg pagetext.FetchConfig, opts ...Option) *Fetcher {
	return NewFetcher(append([]Option{WithTimeout(cfg.Timeout), WithHeaders(cfg.Headers)}, opts...)...)
}

// Fetch retrieves the page at rawURL. Every failure is returned as a
// pagetext application error.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*pagetext.Response, error) {
	ctx, cancel := context.WithTimeoutCause(ctx, f.timeout, errFetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, pagetext.Errorf(pagetext.EINVALID, "invalid request for %s: %v", rawURL, err)
	}
	for k, v := range f.headers {
		req.Header.Set(k, v)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, f.classify(ctx, rawURL, err)
	}
	defer resp.Body.Close()

	if !f.statusContent && (resp.StatusCode < 200 || resp.StatusCode > 299) {
		return nil, pagetext.Errorf(pagetext.ESTATUS, "HTTP %s for %s", resp.Status, rawURL)
	}

	contentType := resp.Header.Get("Content-Type")
	reader, err := charset.NewReader(resp.Body, contentType)
	if err != nil {
		reader = resp.Body
	}
	body, err := io.ReadAll(io.LimitReader(reader, f.maxBodySize))
	if err != nil {
		return nil, f.classify(ctx, rawURL, err)
	}

	return &pagetext.Response{
		URL:         rawURL,
		StatusCode:  resp.StatusCode,
		ContentType: contentType,
		Body:        string(body),
	}, nil
}

// classify tags a transport error by what ended the request.
func (f *Fetcher) classify(ctx context.Context, rawURL string, err error) error {
	switch cause := context.Cause(ctx); {
	case errors.Is(cause, errFetchTimeout):
		return pagetext.Errorf(pagetext.ETIMEOUT, "timeout of %dms exceeded", f.timeout.Milliseconds())
	case errors.Is(cause, context.DeadlineExceeded):
		return pagetext.Errorf(pagetext.ETIMEOUT, "deadline exceeded fetching %s", rawURL)
	case cause != nil:
		return pagetext.Errorf(pagetext.ECANCELED, "fetch of %s canceled", rawURL)
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		err = urlErr.Err
	}
	return pagetext.Errorf(pagetext.ENETWORK, "fetching %s: %v", rawURL, err)
}

// Close releases idle connections held by the client.
func (f *Fetcher) Close() error {
	f.client.CloseIdleConnections()
	return nil
}
