package http

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/fwojciec/pagetext"
)

// MaxBatchRequestSize caps the size of an incoming batch request body.
const MaxBatchRequestSize = 1 << 20

// BatchHandler serves the remote batch-fetch endpoint that BatchClient calls.
// It accepts a JSON array of addresses and responds with one outcome per
// address, in order.
type BatchHandler struct {
	fetcher    pagetext.MultiFetcher
	credential string
}

// NewBatchHandler returns a handler that runs fetcher for authorized callers.
// Requests must present credential in the password header or as a bearer
// token.
func NewBatchHandler(fetcher pagetext.MultiFetcher, credential string) *BatchHandler {
	return &BatchHandler{fetcher: fetcher, credential: credential}
}

// ServeHTTP implements http.Handler.
func (h *BatchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if !h.authorized(r) {
		writeError(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	var urls []string
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBatchRequestSize)).Decode(&urls); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be a JSON array of URLs")
		return
	}

	outcomes, err := h.fetcher.FetchAll(r.Context(), urls)
	if err != nil && len(outcomes) != len(urls) {
		writeError(w, http.StatusInternalServerError, pagetext.ErrorMessage(err))
		return
	}
	if outcomes == nil {
		outcomes = []pagetext.Outcome{}
	}

	writeJSON(w, http.StatusOK, outcomes)
}

func (h *BatchHandler) authorized(r *http.Request) bool {
	token := r.Header.Get(CredentialHeader)
	if token == "" {
		token, _ = strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	}
	if h.credential == "" || token == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(h.credential)) == 1
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
