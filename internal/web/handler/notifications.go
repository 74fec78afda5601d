package handler

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/sportfinder/internal/backend"
	"github.com/mcoot/sportfinder/internal/latch"
	"github.com/mcoot/sportfinder/internal/web/middleware"
	"github.com/mcoot/sportfinder/internal/web/templates/pages"
)

// NotificationHandler handles the notification list for every role
type NotificationHandler struct {
	api    *backend.Client
	latch  *latch.Latch
	logger *slog.Logger
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(api *backend.Client, l *latch.Latch, logger *slog.Logger) *NotificationHandler {
	return &NotificationHandler{api: api, latch: l, logger: logger}
}

// List renders the user's notifications; ?unread_only=true filters to unread
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	unreadOnly := r.URL.Query().Get("unread_only") == "true"

	data := pages.NotificationsData{
		PageData:   pageData(r, "Notifications"),
		UnreadOnly: unreadOnly,
	}
	list, err := h.api.ListNotifications(r.Context(), user.ID, unreadOnly)
	if err != nil {
		data.Error = backend.Message(err, "Failed to load notifications. Please try again.")
	} else {
		data.Notifications = list.Notifications
		data.UnreadCount = list.UnreadCount
	}
	render(w, r, http.StatusOK, pages.Notifications(data))
}

// MarkRead marks one notification as read
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	h.mark(w, r, "notification:"+id, func() error {
		_, err := h.api.MarkNotificationRead(r.Context(), id)
		return err
	})
}

// MarkAllRead marks every notification of the user as read
func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	h.mark(w, r, "notifications", func() error {
		_, err := h.api.MarkAllNotificationsRead(r.Context(), user.ID)
		return err
	})
}

func (h *NotificationHandler) mark(w http.ResponseWriter, r *http.Request, form string, call func() error) {
	release, ok := middleware.AcquireForm(h.latch, r, form)
	if !ok {
		renderDuplicate(w, r, "/notifications")
		return
	}
	defer release()

	if err := call(); err != nil {
		h.logger.Info("mark read failed", slog.String("error", err.Error()))
		middleware.SetFlash(w, middleware.FlashError, backend.Message(err, "Could not update notifications. Please try again."))
	}
	redirect(w, r, "/notifications")
}
