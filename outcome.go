package pagetext

import "context"

// Outcome is the terminal result of fetching and cleaning one address.
// When Success is false, Text holds the failure reason instead of content.
// The JSON field names match the remote batch wire format.
type Outcome struct {
	URL     string `json:"url"`
	Text    string `json:"value"`
	Success bool   `json:"success"`
}

// Succeeded returns a successful Outcome carrying text.
func Succeeded(url, text string) Outcome {
	return Outcome{URL: url, Text: text, Success: true}
}

// Failed returns a failed Outcome whose text is the error's message.
func Failed(url string, err error) Outcome {
	return Outcome{URL: url, Text: ErrorMessage(err), Success: false}
}

// BatchFetcher fetches a chunk of addresses as one unit.
//
// Implementations return one Outcome per address in the same order.
// A returned error means the whole chunk failed; callers then synthesize a
// failed Outcome for every address in it.
type BatchFetcher interface {
	FetchBatch(ctx context.Context, urls []string) ([]Outcome, error)
}

// MultiFetcher fetches an entire address list.
//
// FetchAll returns exactly one Outcome per address, in input order, even
// when it also returns an error.
type MultiFetcher interface {
	FetchAll(ctx context.Context, urls []string) ([]Outcome, error)
}

// Chunks partitions urls into contiguous, ordered sub-slices of at most size
// elements. The chunks cover the input exactly, with no overlap or gaps.
// The returned slices alias urls.
func Chunks(urls []string, size int) [][]string {
	if size <= 0 || len(urls) == 0 {
		return nil
	}
	chunks := make([][]string, 0, (len(urls)+size-1)/size)
	for i := 0; i < len(urls); i += size {
		end := min(i+size, len(urls))
		chunks = append(chunks, urls[i:end:end])
	}
	return chunks
}
