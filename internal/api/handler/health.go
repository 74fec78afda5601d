package handler

import (
	"net/http"

	"github.com/mcoot/sportfinder/internal/api/response"
)

// HealthHandler reports liveness along with the configured backend
type HealthHandler struct {
	backendURL string
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(backendURL string) *HealthHandler {
	return &HealthHandler{backendURL: backendURL}
}

// Get handles GET /api/v1/health
func (h *HealthHandler) Get(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, response.Health{Status: "ok", Backend: h.backendURL})
}
