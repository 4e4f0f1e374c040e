package fanout

import (
	"context"
	"net/url"

	"github.com/fwojciec/pagetext"
	"golang.org/x/sync/errgroup"
)

// Ensure Direct implements pagetext.BatchFetcher at compile time.
var _ pagetext.BatchFetcher = (*Direct)(nil)

// Direct fetches every address of a batch concurrently and cleans the
// results. FetchBatch returns only after every member has settled; a slow
// member is bounded by the fetcher's own timeout and never delays its
// siblings beyond that.
type Direct struct {
	fetcher pagetext.Fetcher
	cleaner pagetext.Cleaner
	limiter pagetext.DomainLimiter
}

// DirectOption configures a Direct batch fetcher.
type DirectOption func(*Direct)

// WithLimiter paces requests per host before each fetch.
func WithLimiter(l pagetext.DomainLimiter) DirectOption {
	return func(d *Direct) {
		d.limiter = l
	}
}

// NewDirect returns a Direct batch fetcher.
func NewDirect(fetcher pagetext.Fetcher, cleaner pagetext.Cleaner, opts ...DirectOption) *Direct {
	d := &Direct{fetcher: fetcher, cleaner: cleaner}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// FetchBatch fetches urls concurrently. It never returns an error: each
// failure is reported in that address's Outcome.
func (d *Direct) FetchBatch(ctx context.Context, urls []string) ([]pagetext.Outcome, error) {
	outcomes := make([]pagetext.Outcome, len(urls))

	var g errgroup.Group
	for i, u := range urls {
		g.Go(func() error {
			outcomes[i] = d.fetchOne(ctx, u)
			return nil
		})
	}
	_ = g.Wait()

	return outcomes, nil
}

// fetchOne fetches and cleans a single address.
func (d *Direct) fetchOne(ctx context.Context, rawURL string) (outcome pagetext.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			outcome = pagetext.Failed(rawURL, pagetext.Errorf(pagetext.EINTERNAL, "panic fetching %s: %v", rawURL, r))
		}
	}()

	if d.limiter != nil {
		if err := d.limiter.Wait(ctx, hostOf(rawURL)); err != nil {
			return pagetext.Failed(rawURL, pagetext.Errorf(pagetext.ECANCELED, "waiting to fetch %s: %v", rawURL, err))
		}
	}

	resp, err := d.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return pagetext.Failed(rawURL, err)
	}

	if !resp.IsHTML() {
		return pagetext.Succeeded(rawURL, pagetext.NormalizeWhitespace(resp.Body))
	}
	return pagetext.Succeeded(rawURL, d.cleaner.Clean(resp.Body))
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}
