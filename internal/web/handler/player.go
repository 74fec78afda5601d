package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/mcoot/sportfinder/internal/backend"
	"github.com/mcoot/sportfinder/internal/geo"
	"github.com/mcoot/sportfinder/internal/latch"
	"github.com/mcoot/sportfinder/internal/model"
	"github.com/mcoot/sportfinder/internal/web/middleware"
	"github.com/mcoot/sportfinder/internal/web/templates/pages"
)

const createGameFailed = "Failed to create game. Please try again."

// PlayerHandler handles the player screens
type PlayerHandler struct {
	api     *backend.Client
	locator geo.Locator
	latch   *latch.Latch
	logger  *slog.Logger
}

// NewPlayerHandler creates a new PlayerHandler
func NewPlayerHandler(api *backend.Client, locator geo.Locator, l *latch.Latch, logger *slog.Logger) *PlayerHandler {
	return &PlayerHandler{
		api:     api,
		locator: locator,
		latch:   l,
		logger:  logger,
	}
}

// Dashboard renders the player home
func (h *PlayerHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	data := pages.PlayerDashboardData{
		PageData: pageData(r, "Dashboard"),
		Stats:    statsView(user.Stats),
		Actions: []pages.QuickAction{
			{Title: "Find Games", Description: "Discover games nearby", Href: "/player/discover"},
			{Title: "Create Game", Description: "Organize a new match", Href: "/player/create-game"},
			{Title: "My Games", Description: "View joined games", Href: "/player/my-games"},
			{Title: "Book Turf", Description: "Reserve a venue", Href: "/player/turfs"},
		},
		UnreadCount: unreadCount(r, h.api, h.logger, user.ID),
	}
	render(w, r, http.StatusOK, pages.PlayerDashboard(data))
}

// statsView applies the display defaults: attendance reads 100% and rating N/A until the API reports them
func statsView(stats *model.UserStats) pages.StatsView {
	view := pages.StatsView{Attendance: "100%", Rating: "N/A"}
	if stats == nil {
		return view
	}
	view.GamesPlayed = stats.GamesPlayed
	view.GamesOrganized = stats.GamesOrganized
	if stats.AttendanceRate != 0 {
		view.Attendance = strconv.FormatFloat(stats.AttendanceRate, 'f', -1, 64) + "%"
	}
	if stats.AverageRating != 0 {
		view.Rating = fmt.Sprintf("%.1f", stats.AverageRating)
	}
	return view
}

// Discover renders the nearby game search
func (h *PlayerHandler) Discover(w http.ResponseWriter, r *http.Request) {
	search := parseNearbySearch(r)
	data := pages.DiscoverData{
		PageData: pageData(r, "Discover Games"),
		Sports:   model.Sports,
		Error:    search.Error,
	}
	data.LocationNotice = fillLocation(r, &search, h.locator, h.logger)

	if search.Submitted {
		list, err := h.api.SearchGames(r.Context(), search.Query)
		if err != nil {
			data.Error = backend.Message(err, "Failed to fetch games. Please try again.")
		} else {
			data.Games = list.Posts
			data.Searched = true
		}
	}

	data.Query = search.Form
	render(w, r, http.StatusOK, pages.Discover(data))
}

// CreateGamePage renders the create game form with the user's position prefilled when available
func (h *PlayerHandler) CreateGamePage(w http.ResponseWriter, r *http.Request) {
	form := pages.GameForm{Sport: model.Sports[0], PlayersNeeded: "5"}
	if lat, lng, ok := locate(r, h.locator, h.logger); ok {
		form.Lat, form.Lng = lat, lng
	}
	h.renderCreateGame(w, r, http.StatusOK, form, "", nil, "")
}

// CreateGame handles the create game form, including its "use my location" button
func (h *PlayerHandler) CreateGame(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderCreateGame(w, r, http.StatusBadRequest, pages.GameForm{}, "Invalid form data", nil, "")
		return
	}

	form := pages.GameForm{
		Sport:         r.FormValue("sport"),
		PlayersNeeded: strings.TrimSpace(r.FormValue("players_needed")),
		Address:       strings.TrimSpace(r.FormValue("address")),
		Lat:           strings.TrimSpace(r.FormValue("lat")),
		Lng:           strings.TrimSpace(r.FormValue("lng")),
		Description:   strings.TrimSpace(r.FormValue("description")),
		Date:          strings.TrimSpace(r.FormValue("date")),
		Time:          strings.TrimSpace(r.FormValue("time")),
	}

	if r.FormValue("action") == "locate" {
		notice := ""
		if lat, lng, ok := locate(r, h.locator, h.logger); ok {
			form.Lat, form.Lng = lat, lng
		} else {
			form.Lat, form.Lng = "", ""
			notice = pages.LocationNotice
		}
		h.renderCreateGame(w, r, http.StatusOK, form, "", nil, notice)
		return
	}

	req, fieldErrors := validateGameForm(form)
	if len(fieldErrors) > 0 {
		h.renderCreateGame(w, r, http.StatusOK, form, "", fieldErrors, "")
		return
	}

	release, ok := middleware.AcquireForm(h.latch, r, "create-game")
	if !ok {
		h.renderCreateGame(w, r, http.StatusConflict, form, middleware.DuplicateSubmission, nil, "")
		return
	}
	defer release()

	req.UserID = middleware.GetUser(r.Context()).ID
	if _, err := h.api.CreateGame(r.Context(), req); err != nil {
		h.logger.Info("create game rejected", slog.String("error", err.Error()))
		h.renderCreateGame(w, r, http.StatusOK, form, backend.Message(err, createGameFailed), nil, "")
		return
	}

	middleware.SetFlash(w, middleware.FlashSuccess, "Game created!")
	redirect(w, r, "/player/my-games")
}

func validateGameForm(form pages.GameForm) (backend.CreateGameRequest, map[string]string) {
	fieldErrors := make(map[string]string)
	req := backend.CreateGameRequest{
		Sport:       form.Sport,
		Description: form.Description,
		Date:        form.Date,
		Time:        form.Time,
	}

	if !slices.Contains(model.Sports, form.Sport) {
		fieldErrors["sport"] = "Choose a sport"
	}
	players, err := strconv.Atoi(form.PlayersNeeded)
	if err != nil || players < 1 || players > 50 {
		fieldErrors["players_needed"] = "Players needed must be between 1 and 50"
	}
	req.PlayersNeeded = players
	if form.Address == "" {
		fieldErrors["address"] = "Location is required"
	}
	lat, lng, err := geo.ParseCoordinates(form.Lat, form.Lng)
	if err != nil {
		fieldErrors["location"] = "Enter a valid latitude and longitude"
	}
	req.Location = model.Location{Lat: lat, Lng: lng, Address: form.Address}
	if form.Date == "" {
		fieldErrors["date"] = "Date is required"
	}
	if form.Time == "" {
		fieldErrors["time"] = "Time is required"
	}
	if form.Description == "" {
		fieldErrors["description"] = "Description is required"
	}
	return req, fieldErrors
}

// MyGames lists the groups of games the player organises or has joined
func (h *PlayerHandler) MyGames(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	data := pages.MyGamesData{PageData: pageData(r, "My Games")}

	list, err := h.api.ListGroups(r.Context(), user.ID)
	if err != nil {
		data.Error = backend.Message(err, "Failed to load your games. Please try again.")
	} else {
		data.Groups = list.Groups
	}
	render(w, r, http.StatusOK, pages.MyGames(data))
}

// GameDetail renders a single game with the actions open to the viewer
func (h *PlayerHandler) GameDetail(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	id := mux.Vars(r)["id"]

	game, err := h.api.GetGame(r.Context(), id)
	if err != nil {
		renderLoadError(w, r, h.logger, err, "Game", "/player/discover")
		return
	}

	data := pages.GameDetailData{
		PageData:    pageData(r, game.Sport),
		Game:        game,
		IsOrganizer: game.IsOrganizer(user.ID),
		HasJoined:   game.HasPlayer(user.ID),
	}
	render(w, r, http.StatusOK, pages.GameDetail(data))
}

// JoinGame joins the current user to a game
func (h *PlayerHandler) JoinGame(w http.ResponseWriter, r *http.Request) {
	h.membership(w, r, "join", func(gameID, userID string) (string, error) {
		res, err := h.api.JoinGame(r.Context(), gameID, userID)
		if err != nil {
			return "", err
		}
		return res.Message, nil
	}, "You joined the game!", "Could not join the game. Please try again.")
}

// LeaveGame removes the current user from a game
func (h *PlayerHandler) LeaveGame(w http.ResponseWriter, r *http.Request) {
	h.membership(w, r, "leave", func(gameID, userID string) (string, error) {
		res, err := h.api.LeaveGame(r.Context(), gameID, userID)
		if err != nil {
			return "", err
		}
		return res.Message, nil
	}, "You left the game.", "Could not leave the game. Please try again.")
}

func (h *PlayerHandler) membership(w http.ResponseWriter, r *http.Request, action string, call func(gameID, userID string) (string, error), success, failure string) {
	user := middleware.GetUser(r.Context())
	id := mux.Vars(r)["id"]
	back := "/player/games/" + id

	release, ok := middleware.AcquireForm(h.latch, r, "game:"+id)
	if !ok {
		renderDuplicate(w, r, back)
		return
	}
	defer release()

	msg, err := call(id, user.ID)
	if err != nil {
		h.logger.Info("game membership change rejected",
			slog.String("action", action),
			slog.String("game_id", id),
			slog.String("error", err.Error()),
		)
		middleware.SetFlash(w, middleware.FlashError, backend.Message(err, failure))
		redirect(w, r, back)
		return
	}
	if msg == "" {
		msg = success
	}
	middleware.SetFlash(w, middleware.FlashSuccess, msg)
	redirect(w, r, back)
}

// DeleteGame deletes a game the current user organises
func (h *PlayerHandler) DeleteGame(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	id := mux.Vars(r)["id"]
	back := "/player/games/" + id

	release, ok := middleware.AcquireForm(h.latch, r, "game:"+id)
	if !ok {
		renderDuplicate(w, r, back)
		return
	}
	defer release()

	res, err := h.api.DeleteGame(r.Context(), id, user.ID)
	if err != nil {
		middleware.SetFlash(w, middleware.FlashError, backend.Message(err, "Could not delete the game. Please try again."))
		redirect(w, r, back)
		return
	}
	msg := res.Message
	if msg == "" {
		msg = "Game deleted."
	}
	middleware.SetFlash(w, middleware.FlashSuccess, msg)
	redirect(w, r, "/player/my-games")
}

func (h *PlayerHandler) renderCreateGame(w http.ResponseWriter, r *http.Request, status int, form pages.GameForm, errorMsg string, fieldErrors map[string]string, notice string) {
	if fieldErrors == nil {
		fieldErrors = make(map[string]string)
	}
	data := pages.CreateGameData{
		PageData:       pageData(r, "Create Game"),
		Form:           form,
		Sports:         model.Sports,
		Error:          errorMsg,
		FieldErrors:    fieldErrors,
		LocationNotice: notice,
	}
	render(w, r, status, pages.CreateGame(data))
}

// unreadCount fetches the unread notification badge; failures show zero
func unreadCount(r *http.Request, api *backend.Client, logger *slog.Logger, userID string) int {
	list, err := api.ListNotifications(r.Context(), userID, true)
	if err != nil {
		logger.Debug("failed to load notification count", slog.String("error", err.Error()))
		return 0
	}
	if list.UnreadCount > 0 {
		return list.UnreadCount
	}
	return len(list.Notifications)
}
