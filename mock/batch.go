package mock

import (
	"context"

	"github.com/fwojciec/pagetext"
)

// Compile-time interface verification.
var (
	_ pagetext.BatchFetcher = (*BatchFetcher)(nil)
	_ pagetext.MultiFetcher = (*MultiFetcher)(nil)
)

// BatchFetcher is a mock implementation of pagetext.BatchFetcher.
type BatchFetcher struct {
	FetchBatchFn func(ctx context.Context, urls []string) ([]pagetext.Outcome, error)
}

func (f *BatchFetcher) FetchBatch(ctx context.Context, urls []string) ([]pagetext.Outcome, error) {
	return f.FetchBatchFn(ctx, urls)
}

// MultiFetcher is a mock implementation of pagetext.MultiFetcher.
type MultiFetcher struct {
	FetchAllFn func(ctx context.Context, urls []string) ([]pagetext.Outcome, error)
}

func (f *MultiFetcher) FetchAll(ctx context.Context, urls []string) ([]pagetext.Outcome, error) {
	return f.FetchAllFn(ctx, urls)
}
