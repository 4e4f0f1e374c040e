// Package rod fetches pages through a headless Chrome browser so scripts run
// before the DOM is serialized. It serves pages whose text only exists after
// client-side rendering.
package rod

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/fwojciec/pagetext"
	"github.com/go-rod/rod/lib/proto"
)

// errFetchTimeout is the cancellation cause set by the per-page timer.
var errFetchTimeout = errors.New("render timeout")

// Ensure Fetcher implements pagetext.Fetcher at compile time.
var _ pagetext.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager *BrowserManager
	timeout time.Duration
	closed  atomic.Bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout bounds navigation, load and serialization of one page.
// Defaults to pagetext.DefaultTimeout if not specified.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// NewFetcher creates a new Fetcher that launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{timeout: pagetext.DefaultTimeout}
	for _, opt := range opts {
		opt(f)
	}

	manager, err := NewBrowserManager()
	if err != nil {
		return nil, err
	}
	f.manager = manager
	return f, nil
}

// Fetch navigates to the URL, waits for the load event and returns the
// rendered document.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*pagetext.Response, error) {
	if f.closed.Load() {
		return nil, pagetext.Errorf(pagetext.EINVALID, "fetcher is closed")
	}
	if err := ctx.Err(); err != nil {
		return nil, pagetext.Errorf(pagetext.ECANCELED, "fetch of %s canceled", url)
	}

	ctx, cancel := context.WithTimeoutCause(ctx, f.timeout, errFetchTimeout)
	defer cancel()

	page, err := f.manager.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, pagetext.Errorf(pagetext.EINTERNAL, "opening page: %v", err)
	}
	defer page.Close()
	defer f.manager.IncrementPageCount()

	page = page.Context(ctx)

	var status int
	var contentType string
	wait := page.EachEvent(func(e *proto.NetworkResponseReceived) bool {
		if e.Type != proto.NetworkResourceTypeDocument {
			return false
		}
		status = e.Response.Status
		contentType = e.Response.MIMEType
		return true
	})

	if err := page.Navigate(url); err != nil {
		return nil, f.classify(ctx, url, err)
	}
	wait()
	if err := page.WaitLoad(); err != nil {
		return nil, f.classify(ctx, url, err)
	}

	if status != 0 && (status < 200 || status > 299) {
		return nil, pagetext.Errorf(pagetext.ESTATUS, "HTTP %d for %s", status, url)
	}

	html, err := page.HTML()
	if err != nil {
		return nil, f.classify(ctx, url, err)
	}

	if status == 0 {
		status = 200
	}
	return &pagetext.Response{
		URL:         url,
		StatusCode:  status,
		ContentType: contentType,
		Body:        html,
	}, nil
}

// classify tags a browser error by what ended the page.
func (f *Fetcher) classify(ctx context.Context, url string, err error) error {
	switch cause := context.Cause(ctx); {
	case errors.Is(cause, errFetchTimeout):
		return pagetext.Errorf(pagetext.ETIMEOUT, "timeout of %dms exceeded", f.timeout.Milliseconds())
	case errors.Is(cause, context.DeadlineExceeded):
		return pagetext.Errorf(pagetext.ETIMEOUT, "deadline exceeded fetching %s", url)
	case cause != nil:
		return pagetext.Errorf(pagetext.ECANCELED, "fetch of %s canceled", url)
	}
	return pagetext.Errorf(pagetext.ENETWORK, "rendering %s: %v", url, err)
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}
	return f.manager.Close()
}

// LauncherPID returns the process ID of the browser launcher.
func (f *Fetcher) LauncherPID() int {
	return f.manager.LauncherPID()
}
