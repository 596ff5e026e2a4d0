// Package server serves the single remote state document over HTTP.
package server

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/abhisek/brainbuilder/internal/remote"
	"github.com/abhisek/brainbuilder/internal/state"
	"github.com/abhisek/brainbuilder/internal/store"
)

const (
	// StatePath is where the document is served.
	StatePath = "/api/state"

	// BlobKey is the store key the document is kept under.
	BlobKey = "brainbuilder/state"

	maxBodyBytes = 16 << 20
)

// Blobs is the key/value storage behind the endpoint. Get returns
// store.ErrNotFound for a missing key.
type Blobs interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}

type stateHandler struct {
	blobs  Blobs
	secret string
	logger *log.Logger
}

// NewHandler returns the HTTP handler for the state endpoint. An empty
// secret disables the auth check.
func NewHandler(blobs Blobs, secret string, logger *log.Logger) http.Handler {
	h := &stateHandler{blobs: blobs, secret: secret, logger: logger}

	mux := http.NewServeMux()
	mux.Handle(StatePath, h)
	return Chain(mux, RecoverPanic(logger), LogRequests(logger))
}

func (h *stateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(r) {
		writeJSONError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.get(w, r)
	case http.MethodPut:
		h.put(w, r)
	default:
		w.Header().Set("Allow", "GET, PUT")
		writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *stateHandler) authorized(r *http.Request) bool {
	if h.secret == "" {
		return true
	}
	got := r.Header.Get(remote.AuthHeader)
	return subtle.ConstantTimeCompare([]byte(got), []byte(h.secret)) == 1
}

func (h *stateHandler) get(w http.ResponseWriter, r *http.Request) {
	data, err := h.blobs.Get(r.Context(), BlobKey)
	if errors.Is(err, store.ErrNotFound) {
		writeJSON(w, http.StatusOK, nil)
		return
	}
	if err != nil {
		h.logger.Printf("read state: %v", err)
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeRaw(w, http.StatusOK, data)
}

func (h *stateHandler) put(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid state")
		return
	}
	if err := state.CheckVersion(body); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid state")
		return
	}
	if err := h.blobs.Put(r.Context(), BlobKey, body); err != nil {
		h.logger.Printf("write state: %v", err)
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeRaw(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
