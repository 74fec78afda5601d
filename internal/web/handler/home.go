package handler

import (
	"net/http"

	"github.com/mcoot/sportfinder/internal/model"
	"github.com/mcoot/sportfinder/internal/web/templates/pages"
)

// HomeHandler handles the public pages
type HomeHandler struct{}

// NewHomeHandler creates a new HomeHandler
func NewHomeHandler() *HomeHandler {
	return &HomeHandler{}
}

// Home renders the landing page
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	data := pages.HomeData{
		PageData: pageData(r, "Home"),
		Sports:   model.Sports,
	}
	render(w, r, http.StatusOK, pages.Home(data))
}

// Unauthorized renders the page a signed-in user lands on when opening another role's screen
func (h *HomeHandler) Unauthorized(w http.ResponseWriter, r *http.Request) {
	data := pages.UnauthorizedData{
		PageData: pageData(r, "Not allowed"),
	}
	render(w, r, http.StatusForbidden, pages.Unauthorized(data))
}
