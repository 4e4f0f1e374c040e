package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fwojciec/pagetext"
	pagehttp "github.com/fwojciec/pagetext/http"
	"github.com/fwojciec/pagetext/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoFetcher() *mock.MultiFetcher {
	return &mock.MultiFetcher{
		FetchAllFn: func(ctx context.Context, urls []string) ([]pagetext.Outcome, error) {
			outcomes := make([]pagetext.Outcome, len(urls))
			for i, u := range urls {
				outcomes[i] = pagetext.Succeeded(u, "text of "+u)
			}
			return outcomes, nil
		},
	}
}

func TestBatchHandler(t *testing.T) {
	t.Parallel()

	t.Run("returns outcomes for authorized request", func(t *testing.T) {
		t.Parallel()

		h := pagehttp.NewBatchHandler(echoFetcher(), "s3cret")
		req := httptest.NewRequest(http.MethodPost, "/multifetch", strings.NewReader(`["https://a.example","https://b.example"]`))
		req.Header.Set("password", "s3cret")
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var outcomes []pagetext.Outcome
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &outcomes))
		assert.Equal(t, []pagetext.Outcome{
			{URL: "https://a.example", Text: "text of https://a.example", Success: true},
			{URL: "https://b.example", Text: "text of https://b.example", Success: true},
		}, outcomes)
	})

	t.Run("accepts bearer token", func(t *testing.T) {
		t.Parallel()

		h := pagehttp.NewBatchHandler(echoFetcher(), "s3cret")
		req := httptest.NewRequest(http.MethodPost, "/multifetch", strings.NewReader(`[]`))
		req.Header.Set("Authorization", "Bearer s3cret")
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("rejects wrong credential", func(t *testing.T) {
		t.Parallel()

		h := pagehttp.NewBatchHandler(echoFetcher(), "s3cret")
		req := httptest.NewRequest(http.MethodPost, "/multifetch", strings.NewReader(`["https://a.example"]`))
		req.Header.Set("password", "wrong")
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"error":"Invalid token"}`, rec.Body.String())
	})

	t.Run("rejects missing credential", func(t *testing.T) {
		t.Parallel()

		h := pagehttp.NewBatchHandler(echoFetcher(), "s3cret")
		req := httptest.NewRequest(http.MethodPost, "/multifetch", strings.NewReader(`["https://a.example"]`))
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects non-POST", func(t *testing.T) {
		t.Parallel()

		h := pagehttp.NewBatchHandler(echoFetcher(), "s3cret")
		req := httptest.NewRequest(http.MethodGet, "/multifetch", nil)
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
		assert.Equal(t, http.MethodPost, rec.Header().Get("Allow"))
	})

	t.Run("rejects malformed body", func(t *testing.T) {
		t.Parallel()

		h := pagehttp.NewBatchHandler(echoFetcher(), "s3cret")
		req := httptest.NewRequest(http.MethodPost, "/multifetch", strings.NewReader(`{"urls":[]}`))
		req.Header.Set("password", "s3cret")
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("round-trips through BatchClient", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(pagehttp.NewBatchHandler(echoFetcher(), "s3cret"))
		defer server.Close()

		client := pagehttp.NewBatchClient(server.URL, "s3cret")

		outcomes, err := client.FetchBatch(context.Background(), []string{"https://a.example"})
		require.NoError(t, err)
		assert.Equal(t, []pagetext.Outcome{pagetext.Succeeded("https://a.example", "text of https://a.example")}, outcomes)
	})
}
