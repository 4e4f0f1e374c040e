package mock

import (
	"context"

	"github.com/fwojciec/pagetext"
)

// Compile-time interface verification.
var (
	_ pagetext.Cleaner       = (*Cleaner)(nil)
	_ pagetext.DomainLimiter = (*DomainLimiter)(nil)
)

// Cleaner is a mock implementation of pagetext.Cleaner.
type Cleaner struct {
	CleanFn func(html string) string
}

func (c *Cleaner) Clean(html string) string {
	return c.CleanFn(html)
}

// DomainLimiter is a mock implementation of pagetext.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
