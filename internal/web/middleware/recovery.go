package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/sportfinder/internal/middleware"
)

// Recovery renders a standalone error page when a screen handler panics
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger.With(slog.String("surface", "web")), errorPage)
}

// errorPage avoids the layout template, which may be what failed
func errorPage(w http.ResponseWriter, _ *http.Request, _ any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>Error · SportFinder</title></head>
<body>
<h1>Something went wrong</h1>
<p>SportFinder hit an unexpected error. Please try again.</p>
<p><a href="/">Back to SportFinder</a></p>
</body>
</html>`))
}
