package handler

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/sportfinder/internal/backend"
	"github.com/mcoot/sportfinder/internal/services/auth"
	"github.com/mcoot/sportfinder/internal/web/middleware"
)

// saveProfile applies update through the API and overwrites this browser's
// Session Record with the result. It returns a message for the form on failure.
func saveProfile(r *http.Request, api *backend.Client, authService *auth.Service, logger *slog.Logger, update backend.ProfileUpdate, fallback string) string {
	current := middleware.GetUser(r.Context())

	updated, err := api.UpdateProfile(r.Context(), current.ID, update)
	if err != nil {
		logger.Info("profile update rejected",
			slog.String("user_id", current.ID),
			slog.String("error", err.Error()),
		)
		return backend.Message(err, fallback)
	}

	// Some deployments answer with a bare acknowledgement; keep the known identity then
	if updated == nil || updated.ID == "" || !updated.Role.Valid() {
		updated = update.MergeInto(current)
	}

	if err := authService.SignIn(r.Context(), middleware.GetSessionKey(r.Context()), updated); err != nil {
		logger.Error("failed to save session", slog.String("error", err.Error()))
		return sessionFailed
	}
	return ""
}
