package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/sportfinder/internal/api/apierr"
	"github.com/mcoot/sportfinder/internal/middleware"
)

// Recovery turns a panic in a JSON handler into a 500 INTERNAL_ERROR body
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger.With(slog.String("surface", "api")), func(w http.ResponseWriter, _ *http.Request, _ any) {
		w.Header().Set("Cache-Control", "no-store")
		apierr.WriteError(w, apierr.NewInternalError())
	})
}
