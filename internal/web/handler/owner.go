package handler

import (
	"log/slog"
	"math"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/mcoot/sportfinder/internal/backend"
	"github.com/mcoot/sportfinder/internal/geo"
	"github.com/mcoot/sportfinder/internal/latch"
	"github.com/mcoot/sportfinder/internal/model"
	"github.com/mcoot/sportfinder/internal/services/auth"
	"github.com/mcoot/sportfinder/internal/web/middleware"
	"github.com/mcoot/sportfinder/internal/web/templates/pages"
)

const createTurfFailed = "Failed to save your turf. Please try again."

// OwnerHandler handles the turf owner screens
type OwnerHandler struct {
	authService *auth.Service
	api         *backend.Client
	locator     geo.Locator
	latch       *latch.Latch
	logger      *slog.Logger
}

// NewOwnerHandler creates a new OwnerHandler
func NewOwnerHandler(authService *auth.Service, api *backend.Client, locator geo.Locator, l *latch.Latch, logger *slog.Logger) *OwnerHandler {
	return &OwnerHandler{
		authService: authService,
		api:         api,
		locator:     locator,
		latch:       l,
		logger:      logger,
	}
}

// Dashboard renders the turf owner home
func (h *OwnerHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	render(w, r, http.StatusOK, pages.OwnerDashboard(pages.OwnerDashboardData{
		PageData:    pageData(r, "Turf Owner"),
		Onboarded:   user.BusinessName != "",
		UnreadCount: unreadCount(r, h.api, h.logger, user.ID),
	}))
}

// CreateTurfPage renders the onboarding form prefilled from the account
func (h *OwnerHandler) CreateTurfPage(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	form := pages.TurfForm{
		BusinessName: user.BusinessName,
		Phone:        user.Phone,
	}
	if lat, lng, ok := locate(r, h.locator, h.logger); ok {
		form.Lat, form.Lng = lat, lng
	}
	h.renderCreateTurf(w, r, http.StatusOK, form, "", nil, "")
}

// CreateTurf submits the onboarding form as a profile update carrying the turf listing
func (h *OwnerHandler) CreateTurf(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderCreateTurf(w, r, http.StatusBadRequest, pages.TurfForm{}, "Invalid form data", nil, "")
		return
	}

	form := pages.TurfForm{
		BusinessName: strings.TrimSpace(r.FormValue("business_name")),
		Phone:        strings.TrimSpace(r.FormValue("phone")),
		TurfName:     strings.TrimSpace(r.FormValue("turf_name")),
		Address:      strings.TrimSpace(r.FormValue("address")),
		Lat:          strings.TrimSpace(r.FormValue("lat")),
		Lng:          strings.TrimSpace(r.FormValue("lng")),
		Sports:       r.Form["sports"],
		PricePerHour: strings.TrimSpace(r.FormValue("price_per_hour")),
	}

	if r.FormValue("action") == "locate" {
		notice := ""
		if lat, lng, ok := locate(r, h.locator, h.logger); ok {
			form.Lat, form.Lng = lat, lng
		} else {
			form.Lat, form.Lng = "", ""
			notice = pages.LocationNotice
		}
		h.renderCreateTurf(w, r, http.StatusOK, form, "", nil, notice)
		return
	}

	update, fieldErrors := validateTurfForm(form)
	if len(fieldErrors) > 0 {
		h.renderCreateTurf(w, r, http.StatusOK, form, "", fieldErrors, "")
		return
	}

	release, ok := middleware.AcquireForm(h.latch, r, "create-turf")
	if !ok {
		h.renderCreateTurf(w, r, http.StatusConflict, form, middleware.DuplicateSubmission, nil, "")
		return
	}
	defer release()

	if msg := saveProfile(r, h.api, h.authService, h.logger, update, createTurfFailed); msg != "" {
		h.renderCreateTurf(w, r, http.StatusOK, form, msg, nil, "")
		return
	}

	middleware.SetFlash(w, middleware.FlashSuccess, "Your turf is listed!")
	redirect(w, r, "/turf-owner/dashboard")
}

func validateTurfForm(form pages.TurfForm) (backend.ProfileUpdate, map[string]string) {
	fieldErrors := make(map[string]string)

	if form.BusinessName == "" {
		fieldErrors["business_name"] = "Business name is required"
	}
	if form.Phone == "" {
		fieldErrors["phone"] = "Phone is required"
	}
	if form.TurfName == "" {
		fieldErrors["turf_name"] = "Turf name is required"
	}
	if form.Address == "" {
		fieldErrors["address"] = "Address is required"
	}
	lat, lng, err := geo.ParseCoordinates(form.Lat, form.Lng)
	if err != nil {
		fieldErrors["location"] = "Enter a valid latitude and longitude"
	}
	if len(form.Sports) == 0 {
		fieldErrors["sports"] = "Choose at least one sport"
	}
	for _, s := range form.Sports {
		if !slices.Contains(model.Sports, s) {
			fieldErrors["sports"] = "Unknown sport: " + s
			break
		}
	}
	price, err := strconv.ParseFloat(form.PricePerHour, 64)
	if err != nil || price <= 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		fieldErrors["price_per_hour"] = "Price per hour must be a positive number"
	}

	return backend.ProfileUpdate{
		Phone:        form.Phone,
		BusinessName: form.BusinessName,
		Turf: &backend.TurfListing{
			Name:         form.TurfName,
			Location:     model.Location{Lat: lat, Lng: lng, Address: form.Address},
			Sports:       form.Sports,
			PricePerHour: price,
		},
	}, fieldErrors
}

func (h *OwnerHandler) renderCreateTurf(w http.ResponseWriter, r *http.Request, status int, form pages.TurfForm, errorMsg string, fieldErrors map[string]string, notice string) {
	if fieldErrors == nil {
		fieldErrors = make(map[string]string)
	}
	data := pages.CreateTurfData{
		PageData:       pageData(r, "List Your Turf"),
		Form:           form,
		Sports:         model.Sports,
		Error:          errorMsg,
		FieldErrors:    fieldErrors,
		LocationNotice: notice,
	}
	render(w, r, status, pages.CreateTurf(data))
}
