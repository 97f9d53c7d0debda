package handler

import (
	"net/http"
)

// Pinger reports whether the persistence backend is reachable.
type Pinger interface {
	Ping() error
}

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	store Pinger
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(store Pinger) *HealthHandler {
	return &HealthHandler{
		store: store,
	}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}

// Ready handles GET /ready
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.store == nil || h.store.Ping() != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"reason": "storage not reachable",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ready",
	})
}
