package pagetext

import "time"

// Default fetch settings. These are tunable starting points rather than
// contracts; callers should override them for their workload.
const (
	DefaultConcurrency = 5
	DefaultTimeout     = 10 * time.Second
	DefaultUserAgent   = "pagetext/1.0 (+https://github.com/fwojciec/pagetext)"
)

// FetchConfig holds the settings shared read-only by every fetch in a run.
type FetchConfig struct {
	// Concurrency is the maximum number of fetches in flight at once,
	// which is also the chunk size.
	Concurrency int

	// Timeout bounds each individual fetch, including the body read.
	Timeout time.Duration

	// Headers are sent with every request.
	Headers map[string]string
}

// DefaultConfig returns a FetchConfig populated with defaults.
func DefaultConfig() FetchConfig {
	return FetchConfig{
		Concurrency: DefaultConcurrency,
		Timeout:     DefaultTimeout,
		Headers: map[string]string{
			"User-Agent": DefaultUserAgent,
			"Accept":     "*/*",
		},
	}
}

// Validate returns an error if the config cannot drive a run.
func (c FetchConfig) Validate() error {
	if c.Concurrency <= 0 {
		return Errorf(EINVALID, "concurrency must be positive, got %d", c.Concurrency)
	}
	if c.Timeout <= 0 {
		return Errorf(EINVALID, "timeout must be positive, got %s", c.Timeout)
	}
	return nil
}
