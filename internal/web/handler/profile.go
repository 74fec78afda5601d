package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/mcoot/sportfinder/internal/backend"
	"github.com/mcoot/sportfinder/internal/latch"
	"github.com/mcoot/sportfinder/internal/model"
	"github.com/mcoot/sportfinder/internal/services/auth"
	"github.com/mcoot/sportfinder/internal/web/middleware"
	"github.com/mcoot/sportfinder/internal/web/templates/pages"
)

// ProfileHandler handles the profile editor
type ProfileHandler struct {
	authService *auth.Service
	api         *backend.Client
	latch       *latch.Latch
	logger      *slog.Logger
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(authService *auth.Service, api *backend.Client, l *latch.Latch, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{authService: authService, api: api, latch: l, logger: logger}
}

// Page renders the editor filled from the Session Record
func (h *ProfileHandler) Page(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	form := pages.ProfileForm{
		Name:       user.Name,
		Bio:        user.Bio,
		Avatar:     user.Avatar,
		SkillLevel: user.SkillLevel,
	}
	h.renderProfile(w, r, http.StatusOK, form, "")
}

// Update saves the profile
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderProfile(w, r, http.StatusBadRequest, pages.ProfileForm{}, "Invalid form data")
		return
	}

	form := pages.ProfileForm{
		Name:       strings.TrimSpace(r.FormValue("name")),
		Bio:        strings.TrimSpace(r.FormValue("bio")),
		Avatar:     strings.TrimSpace(r.FormValue("avatar")),
		SkillLevel: r.FormValue("skill_level"),
	}
	if form.Name == "" {
		h.renderProfile(w, r, http.StatusOK, form, "Name is required")
		return
	}

	release, ok := middleware.AcquireForm(h.latch, r, "profile")
	if !ok {
		h.renderProfile(w, r, http.StatusConflict, form, middleware.DuplicateSubmission)
		return
	}
	defer release()

	update := backend.ProfileUpdate{
		Name:       form.Name,
		Bio:        form.Bio,
		Avatar:     form.Avatar,
		SkillLevel: form.SkillLevel,
	}
	if msg := saveProfile(r, h.api, h.authService, h.logger, update, "Failed to update profile. Please try again."); msg != "" {
		h.renderProfile(w, r, http.StatusOK, form, msg)
		return
	}

	middleware.SetFlash(w, middleware.FlashSuccess, "Profile updated")
	redirect(w, r, "/profile")
}

func (h *ProfileHandler) renderProfile(w http.ResponseWriter, r *http.Request, status int, form pages.ProfileForm, errorMsg string) {
	data := pages.ProfileData{
		PageData:    pageData(r, "Profile"),
		Form:        form,
		SkillLevels: model.SkillLevels,
		Error:       errorMsg,
	}
	render(w, r, status, pages.Profile(data))
}
