package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pagetext"
)

// Ensure LoggingBatchFetcher implements pagetext.BatchFetcher.
var _ pagetext.BatchFetcher = (*LoggingBatchFetcher)(nil)

// LoggingBatchFetcher wraps a BatchFetcher with per-chunk logging.
type LoggingBatchFetcher struct {
	next   pagetext.BatchFetcher
	logger *slog.Logger
}

// NewLoggingBatchFetcher creates a new LoggingBatchFetcher.
func NewLoggingBatchFetcher(next pagetext.BatchFetcher, logger *slog.Logger) *LoggingBatchFetcher {
	return &LoggingBatchFetcher{next: next, logger: logger}
}

// FetchBatch delegates to the wrapped fetcher and logs the chunk result.
func (f *LoggingBatchFetcher) FetchBatch(ctx context.Context, urls []string) (outcomes []pagetext.Outcome, err error) {
	defer func(begin time.Time) {
		failed := 0
		for _, o := range outcomes {
			if !o.Success {
				failed++
			}
		}
		f.logger.Debug("fetch batch",
			"count", len(urls),
			"failed", failed,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.FetchBatch(ctx, urls)
}
