package fanout_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"sync/atomic"
	"testing"

	"github.com/fwojciec/pagetext"
	"github.com/fwojciec/pagetext/fanout"
	pagehttp "github.com/fwojciec/pagetext/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrchestrator_FetchAll_Remote(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		var urls []string
		if err := json.NewDecoder(r.Body).Decode(&urls); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if slices.Contains(urls, "https://example.com/2") {
			http.Error(w, "upstream exploded", http.StatusBadGateway)
			return
		}
		outcomes := make([]pagetext.Outcome, len(urls))
		for i, u := range urls {
			outcomes[i] = pagetext.Succeeded(u, "remote "+u)
		}
		_ = json.NewEncoder(w).Encode(outcomes)
	}))
	defer server.Close()

	client := pagehttp.NewBatchClient(server.URL, "s3cret")
	o, err := fanout.New(config(2), client)
	require.NoError(t, err)

	urls := makeURLs(5)
	outcomes, err := o.FetchAll(context.Background(), urls)

	require.NoError(t, err)
	require.Len(t, outcomes, 5)
	assert.Equal(t, int32(3), calls.Load())

	assert.Equal(t, pagetext.Succeeded(urls[0], "remote "+urls[0]), outcomes[0])
	assert.Equal(t, pagetext.Succeeded(urls[1], "remote "+urls[1]), outcomes[1])
	for _, i := range []int{2, 3} {
		assert.Equal(t, urls[i], outcomes[i].URL)
		assert.False(t, outcomes[i].Success)
		assert.Contains(t, outcomes[i].Text, "502 Bad Gateway")
	}
	assert.Equal(t, outcomes[2].Text, outcomes[3].Text)
	assert.Equal(t, pagetext.Succeeded(urls[4], "remote "+urls[4]), outcomes[4])
}
