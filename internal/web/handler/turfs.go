package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/mcoot/sportfinder/internal/backend"
	"github.com/mcoot/sportfinder/internal/geo"
	"github.com/mcoot/sportfinder/internal/latch"
	"github.com/mcoot/sportfinder/internal/model"
	"github.com/mcoot/sportfinder/internal/web/middleware"
	"github.com/mcoot/sportfinder/internal/web/templates/pages"
)

// TurfHandler handles turf search and booking
type TurfHandler struct {
	api     *backend.Client
	locator geo.Locator
	latch   *latch.Latch
	logger  *slog.Logger
}

// NewTurfHandler creates a new TurfHandler
func NewTurfHandler(api *backend.Client, locator geo.Locator, l *latch.Latch, logger *slog.Logger) *TurfHandler {
	return &TurfHandler{api: api, locator: locator, latch: l, logger: logger}
}

// Search renders the nearby turf search
func (h *TurfHandler) Search(w http.ResponseWriter, r *http.Request) {
	search := parseNearbySearch(r)
	data := pages.TurfsData{
		PageData: pageData(r, "Book a Turf"),
		Sports:   model.Sports,
		Error:    search.Error,
	}
	data.LocationNotice = fillLocation(r, &search, h.locator, h.logger)

	if search.Submitted {
		list, err := h.api.SearchTurfs(r.Context(), search.Query)
		if err != nil {
			data.Error = backend.Message(err, "Failed to fetch turfs. Please try again.")
		} else {
			data.Turfs = list.Turfs
			data.Searched = true
		}
	}

	data.Query = search.Form
	render(w, r, http.StatusOK, pages.Turfs(data))
}

// Detail renders a turf with its booking form
func (h *TurfHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	turf, err := h.api.GetTurf(r.Context(), id)
	if err != nil {
		renderLoadError(w, r, h.logger, err, "Turf", "/player/turfs")
		return
	}
	h.renderDetail(w, r, http.StatusOK, turf, pages.BookingForm{}, "", nil)
}

// Book reserves a time slot at a turf
func (h *TurfHandler) Book(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	turf, err := h.api.GetTurf(r.Context(), id)
	if err != nil {
		renderLoadError(w, r, h.logger, err, "Turf", "/player/turfs")
		return
	}

	if err := r.ParseForm(); err != nil {
		h.renderDetail(w, r, http.StatusBadRequest, turf, pages.BookingForm{}, "Invalid form data", nil)
		return
	}
	form := pages.BookingForm{
		Date:     strings.TrimSpace(r.FormValue("date")),
		TimeSlot: strings.TrimSpace(r.FormValue("time_slot")),
		GroupID:  strings.TrimSpace(r.FormValue("group_id")),
	}

	fieldErrors := make(map[string]string)
	if form.Date == "" {
		fieldErrors["date"] = "Date is required"
	}
	if form.TimeSlot == "" {
		fieldErrors["time_slot"] = "Time slot is required"
	}
	if len(fieldErrors) > 0 {
		h.renderDetail(w, r, http.StatusOK, turf, form, "", fieldErrors)
		return
	}

	release, ok := middleware.AcquireForm(h.latch, r, "book:"+id)
	if !ok {
		renderDuplicate(w, r, "/player/turfs/"+id)
		return
	}
	defer release()

	user := middleware.GetUser(r.Context())
	res, err := h.api.BookTurf(r.Context(), id, backend.BookingRequest{
		UserID:   user.ID,
		Date:     form.Date,
		TimeSlot: form.TimeSlot,
		GroupID:  form.GroupID,
	})
	if err != nil {
		h.logger.Info("booking rejected",
			slog.String("turf_id", id),
			slog.String("error", err.Error()),
		)
		h.renderDetail(w, r, http.StatusOK, turf, form, backend.Message(err, "Booking failed. Please try again."), nil)
		return
	}

	msg := res.Message
	if msg == "" {
		msg = "Turf booked!"
	}
	middleware.SetFlash(w, middleware.FlashSuccess, msg)
	redirect(w, r, "/player/turfs/"+id)
}

func (h *TurfHandler) renderDetail(w http.ResponseWriter, r *http.Request, status int, turf *model.Turf, form pages.BookingForm, errorMsg string, fieldErrors map[string]string) {
	if fieldErrors == nil {
		fieldErrors = make(map[string]string)
	}
	data := pages.TurfDetailData{
		PageData:    pageData(r, turf.Name),
		Turf:        turf,
		Form:        form,
		Error:       errorMsg,
		FieldErrors: fieldErrors,
	}
	render(w, r, status, pages.TurfDetail(data))
}
