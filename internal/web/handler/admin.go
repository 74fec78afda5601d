package handler

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/sportfinder/internal/backend"
	"github.com/mcoot/sportfinder/internal/web/middleware"
	"github.com/mcoot/sportfinder/internal/web/templates/pages"
)

// AdminHandler handles the admin screens
type AdminHandler struct {
	api    *backend.Client
	logger *slog.Logger
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(api *backend.Client, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{api: api, logger: logger}
}

// Dashboard renders the admin home
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	render(w, r, http.StatusOK, pages.AdminDashboard(pages.AdminDashboardData{
		PageData:    pageData(r, "Admin"),
		UnreadCount: unreadCount(r, h.api, h.logger, user.ID),
	}))
}
