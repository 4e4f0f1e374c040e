// Package fanout fetches address lists in bounded, ordered waves.
//
// An Orchestrator splits the input into chunks no larger than the configured
// concurrency and hands each chunk to a pagetext.BatchFetcher, waiting for the
// chunk to settle before starting the next one. Direct fetches each member of
// a chunk concurrently; http.BatchClient delegates the chunk to a remote
// endpoint instead.
package fanout

import (
	"context"

	"github.com/fwojciec/pagetext"
)

// Ensure Orchestrator implements pagetext.MultiFetcher at compile time.
var _ pagetext.MultiFetcher = (*Orchestrator)(nil)

// Orchestrator drives a BatchFetcher chunk by chunk.
type Orchestrator struct {
	batch       pagetext.BatchFetcher
	concurrency int
	progress    ProgressFunc
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithProgress sets a callback that receives events as chunks settle.
func WithProgress(fn ProgressFunc) Option {
	return func(o *Orchestrator) {
		o.progress = fn
	}
}

// New returns an Orchestrator for cfg. It returns an EINVALID error if cfg
// cannot drive a run; no fetch is attempted in that case.
func New(cfg pagetext.FetchConfig, batch pagetext.BatchFetcher, opts ...Option) (*Orchestrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, pagetext.Errorf(pagetext.EINVALID, "batch fetcher required")
	}
	o := &Orchestrator{
		batch:       batch,
		concurrency: cfg.Concurrency,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o, nil
}

// FetchAll fetches urls and returns one Outcome per address in input order.
//
// Individual failures never abort the run. If ctx is cancelled between
// chunks, the addresses not yet started are reported as ECANCELED failures
// and ctx.Err() is returned alongside the complete slice.
func (o *Orchestrator) FetchAll(ctx context.Context, urls []string) ([]pagetext.Outcome, error) {
	chunks := pagetext.Chunks(urls, o.concurrency)
	outcomes := make([]pagetext.Outcome, 0, len(urls))

	o.notify(ProgressEvent{Type: ProgressStarted, Total: len(urls), Chunks: len(chunks)})

	for i, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			canceled := pagetext.Errorf(pagetext.ECANCELED, "run canceled before fetch: %v", err)
			for _, rest := range chunks[i:] {
				outcomes = append(outcomes, failAll(rest, canceled)...)
			}
			o.notify(ProgressEvent{Type: ProgressFinished, Completed: len(outcomes), Total: len(urls), Chunks: len(chunks), Error: err})
			return outcomes, err
		}

		results := o.fetchChunk(ctx, chunk)
		outcomes = append(outcomes, results...)

		o.notify(ProgressEvent{
			Type:      ProgressChunkSettled,
			Chunk:     i,
			Chunks:    len(chunks),
			Completed: len(outcomes),
			Total:     len(urls),
			Failed:    countFailed(results),
		})
	}

	o.notify(ProgressEvent{Type: ProgressFinished, Completed: len(outcomes), Total: len(urls), Chunks: len(chunks)})
	return outcomes, nil
}

// fetchChunk runs one chunk and guarantees a well-formed result for it.
func (o *Orchestrator) fetchChunk(ctx context.Context, chunk []string) []pagetext.Outcome {
	results, err := o.batch.FetchBatch(ctx, chunk)
	if err != nil {
		return failAll(chunk, err)
	}
	if err := checkBatch(chunk, results); err != nil {
		return failAll(chunk, err)
	}
	return results
}

// checkBatch verifies a batch answered every address in order.
func checkBatch(chunk []string, results []pagetext.Outcome) error {
	if len(results) != len(chunk) {
		return pagetext.Errorf(pagetext.EREMOTE, "batch returned %d outcomes for %d urls", len(results), len(chunk))
	}
	for i := range chunk {
		if results[i].URL != chunk[i] {
			return pagetext.Errorf(pagetext.EREMOTE, "batch outcome %d is for %q, expected %q", i, results[i].URL, chunk[i])
		}
	}
	return nil
}

func failAll(urls []string, err error) []pagetext.Outcome {
	outcomes := make([]pagetext.Outcome, len(urls))
	for i, u := range urls {
		outcomes[i] = pagetext.Failed(u, err)
	}
	return outcomes
}

func countFailed(outcomes []pagetext.Outcome) int {
	var n int
	for _, o := range outcomes {
		if !o.Success {
			n++
		}
	}
	return n
}

func (o *Orchestrator) notify(event ProgressEvent) {
	if o.progress != nil {
		o.progress(event)
	}
}
