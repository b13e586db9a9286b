package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

const version = "0.1.0"

// Check represents the status of a health check.
type Check struct {
	Status  string `json:"status"`            // "pass" or "fail"
	Latency string `json:"latency,omitempty"` // e.g., "2ms"
	Message string `json:"message,omitempty"`
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string           `json:"status"` // "healthy" or "degraded"
	Version   string           `json:"version"`
	Checks    map[string]Check `json:"checks"`
	Timestamp string           `json:"timestamp"`
}

// Health handles the health check endpoint.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	checks := make(map[string]Check)
	allHealthy := true

	// Check the remote messages API
	sourceStart := time.Now()
	if err := h.source.Ping(ctx); err != nil {
		checks["messages_api"] = Check{Status: "fail", Message: "unreachable"}
		allHealthy = false
	} else {
		checks["messages_api"] = Check{Status: "pass", Latency: time.Since(sourceStart).String()}
	}

	// Report cache state. An empty cache is not a failure; the first
	// question fills it.
	if age, ok := h.cache.Age(); ok {
		checks["cache"] = Check{
			Status:  "pass",
			Message: fmt.Sprintf("%d messages, fetched %s ago", h.cache.Size(), age.Truncate(time.Second)),
		}
	} else {
		checks["cache"] = Check{Status: "pass", Message: "empty (no questions asked yet)"}
	}

	status := "healthy"
	statusCode := http.StatusOK
	if !allHealthy {
		status = "degraded"
		statusCode = http.StatusServiceUnavailable
	}

	resp := HealthResponse{
		Status:    status,
		Version:   version,
		Checks:    checks,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	h.JSON(w, statusCode, resp)
}

// RootResponse represents the API info endpoint response.
type RootResponse struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Ask     string `json:"ask"`
}

// Root handles the JSON API info endpoint.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	h.JSON(w, http.StatusOK, RootResponse{
		Name:    "Member Q&A",
		Version: version,
		Ask:     "POST /ask",
	})
}
