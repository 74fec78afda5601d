package handler

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/sportfinder/internal/api/apierr"
	"github.com/mcoot/sportfinder/internal/api/middleware"
	"github.com/mcoot/sportfinder/internal/api/response"
	"github.com/mcoot/sportfinder/internal/model"
	"github.com/mcoot/sportfinder/internal/services/auth"
)

// SessionHandler exposes the caller's Session Record
type SessionHandler struct {
	authService *auth.Service
	logger      *slog.Logger
}

// NewSessionHandler creates a new SessionHandler
func NewSessionHandler(authService *auth.Service, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{authService: authService, logger: logger}
}

// Get handles GET /api/v1/session
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	if user == nil {
		apierr.WriteError(w, model.ErrNoSession)
		return
	}
	response.JSON(w, http.StatusOK, response.SessionFromModel(user))
}

// Delete handles DELETE /api/v1/session. Like the browser logout it never calls the backend.
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.authService.SignOut(r.Context(), middleware.GetSessionKey(r.Context())); err != nil {
		h.logger.Error("failed to clear session", slog.String("error", err.Error()))
		apierr.WriteError(w, err)
		return
	}
	response.NoContent(w)
}
