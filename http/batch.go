package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/pagetext"
)

// DefaultBatchTimeout bounds one remote batch call.
const DefaultBatchTimeout = 60 * time.Second

// CredentialHeader carries the shared secret on batch requests.
const CredentialHeader = "password"

// Ensure BatchClient implements pagetext.BatchFetcher at compile time.
var _ pagetext.BatchFetcher = (*BatchClient)(nil)

// BatchClient delegates a chunk of addresses to a remote batch-fetch
// endpoint in a single call.
type BatchClient struct {
	client     *http.Client
	endpoint   string
	credential string
	timeout    time.Duration
}

// BatchOption configures a BatchClient.
type BatchOption func(*BatchClient)

// WithBatchTimeout bounds each remote call.
// Defaults to DefaultBatchTimeout if not specified.
func WithBatchTimeout(d time.Duration) BatchOption {
	return func(c *BatchClient) {
		c.timeout = d
	}
}

// WithBatchHTTPClient sets the underlying HTTP client.
func WithBatchHTTPClient(hc *http.Client) BatchOption {
	return func(c *BatchClient) {
		c.client = hc
	}
}

// NewBatchClient creates a BatchClient posting to endpoint.
func NewBatchClient(endpoint, credential string, opts ...BatchOption) *BatchClient {
	c := &BatchClient{
		client:     http.DefaultClient,
		endpoint:   endpoint,
		credential: credential,
		timeout:    DefaultBatchTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchBatch posts urls as a JSON array and decodes the outcomes.
// Any transport failure, non-2xx status, or malformed response is reported
// as an EREMOTE error covering the whole batch.
func (c *BatchClient) FetchBatch(ctx context.Context, urls []string) ([]pagetext.Outcome, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal(urls)
	if err != nil {
		return nil, pagetext.Errorf(pagetext.EINVALID, "encoding batch: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, pagetext.Errorf(pagetext.EINVALID, "invalid batch endpoint %s: %v", c.endpoint, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(CredentialHeader, c.credential)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, pagetext.Errorf(pagetext.EREMOTE, "failed to invoke %s: %v", c.endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, pagetext.Errorf(pagetext.EREMOTE, "failed to invoke %s - response was: %s", c.endpoint, resp.Status)
	}

	var outcomes []pagetext.Outcome
	if err := json.NewDecoder(resp.Body).Decode(&outcomes); err != nil {
		return nil, pagetext.Errorf(pagetext.EREMOTE, "malformed response from %s: %v", c.endpoint, err)
	}
	if len(outcomes) != len(urls) {
		return nil, pagetext.Errorf(pagetext.EREMOTE, "response from %s has %d outcomes for %d urls", c.endpoint, len(outcomes), len(urls))
	}

	return outcomes, nil
}
