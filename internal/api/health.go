package api

import (
	"net/http"
	"time"
)

type HealthResponse struct {
	Status      string `json:"status"`
	Service     string `json:"service"`
	Version     string `json:"version"`
	Timestamp   string `json:"timestamp"`
	Environment string `json:"environment"`
	Message     string `json:"message"`
}

// HandleHealth handles GET /api/health.
func (h *Handler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:      "healthy",
		Service:     ServiceName,
		Version:     Version,
		Timestamp:   h.now().UTC().Format(time.RFC3339Nano),
		Environment: h.environment,
		Message:     "API is running",
	})
}
