package fanout

import (
	"context"
	"strings"
	"sync"

	"github.com/fwojciec/pagetext"
	"golang.org/x/time/rate"
)

var _ pagetext.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter paces requests per host using token buckets, so a run that
// targets many pages of one site does not hit it with a full wave at once.
// Hosts are compared case-insensitively. Requests to different hosts never
// wait on each other.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

// LimiterOption configures a DomainLimiter.
type LimiterOption func(*DomainLimiter)

// WithBurst allows up to n requests to a host back to back.
// Defaults to 1.
func WithBurst(n int) LimiterOption {
	return func(d *DomainLimiter) {
		d.burst = max(n, 1)
	}
}

// NewDomainLimiter creates a DomainLimiter allowing rps requests per second
// per host. A non-positive rps disables pacing.
func NewDomainLimiter(rps float64, opts ...LimiterOption) *DomainLimiter {
	d := &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Limit(rps),
		burst:    1,
	}
	if rps <= 0 {
		d.limit = rate.Inf
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Wait blocks until a request to domain is allowed.
// Returns an error if ctx is done before the wait completes.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	domain = strings.ToLower(domain)

	d.mu.Lock()
	limiter, ok := d.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(d.limit, d.burst)
		d.limiters[domain] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}
