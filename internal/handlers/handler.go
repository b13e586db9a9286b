package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// Answerer resolves a question into an answer string.
type Answerer interface {
	Answer(ctx context.Context, question string) string
}

// SourcePinger probes the remote messages API for the health check.
type SourcePinger interface {
	Ping(ctx context.Context) error
}

// CacheInfo exposes read-only cache state for the health check.
type CacheInfo interface {
	Age() (time.Duration, bool)
	Size() int
}

// Handler contains shared dependencies for all HTTP handlers.
type Handler struct {
	answers Answerer
	source  SourcePinger
	cache   CacheInfo
}

// NewHandler creates a new Handler with the given dependencies.
func NewHandler(answers Answerer, source SourcePinger, cache CacheInfo) *Handler {
	return &Handler{answers: answers, source: source, cache: cache}
}

// JSON sends a JSON response with the given status code.
func (h *Handler) JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// Error sends a JSON error response with the given status code.
func (h *Handler) Error(w http.ResponseWriter, status int, message string) {
	h.JSON(w, status, map[string]string{"error": message})
}
