package handler

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"

	"github.com/mcoot/sportfinder/internal/backend"
	"github.com/mcoot/sportfinder/internal/web/middleware"
	"github.com/mcoot/sportfinder/internal/web/templates/layout"
	"github.com/mcoot/sportfinder/internal/web/templates/pages"
)

// render writes a page with the given status. The page is buffered so a
// template failure still produces a clean 500.
func render(w http.ResponseWriter, r *http.Request, status int, page templ.Component) {
	var buf bytes.Buffer
	if err := page.Render(r.Context(), &buf); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// pageData builds the layout data shared by every screen
func pageData(r *http.Request, title string) layout.PageData {
	return layout.PageData{
		Title: title,
		User:  middleware.GetUser(r.Context()),
		Flash: middleware.GetFlash(r.Context()),
	}
}

// renderMessage renders a standalone notice page
func renderMessage(w http.ResponseWriter, r *http.Request, status int, heading, message, back string) {
	render(w, r, status, pages.Message(pages.MessageData{
		PageData: pageData(r, heading),
		Heading:  heading,
		Message:  message,
		Back:     back,
	}))
}

// renderDuplicate answers a form posted while the same form is still in flight
func renderDuplicate(w http.ResponseWriter, r *http.Request, back string) {
	renderMessage(w, r, http.StatusConflict, "Please wait", middleware.DuplicateSubmission, back)
}

// renderLoadError renders the page shown when a screen's data could not be fetched
func renderLoadError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error, what, back string) {
	if backend.IsStatus(err, http.StatusNotFound) {
		renderMessage(w, r, http.StatusNotFound, "Not found", what+" not found.", back)
		return
	}
	status := http.StatusBadGateway
	var transportErr *backend.TransportError
	if errors.As(err, &transportErr) {
		status = http.StatusServiceUnavailable
	}
	logger.Warn("failed to load screen data",
		slog.String("what", what),
		slog.String("error", err.Error()),
	)
	renderMessage(w, r, status, "Something went wrong",
		backend.Message(err, "Could not load "+what+". Please try again."), back)
}

// redirect issues a 303 so the browser follows with a GET
func redirect(w http.ResponseWriter, r *http.Request, path string) {
	http.Redirect(w, r, path, http.StatusSeeOther)
}
