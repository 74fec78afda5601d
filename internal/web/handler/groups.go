package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/mcoot/sportfinder/internal/backend"
	"github.com/mcoot/sportfinder/internal/latch"
	"github.com/mcoot/sportfinder/internal/web/middleware"
	"github.com/mcoot/sportfinder/internal/web/templates/pages"
)

// GroupHandler handles game group chats
type GroupHandler struct {
	api    *backend.Client
	latch  *latch.Latch
	logger *slog.Logger
}

// NewGroupHandler creates a new GroupHandler
func NewGroupHandler(api *backend.Client, l *latch.Latch, logger *slog.Logger) *GroupHandler {
	return &GroupHandler{api: api, latch: l, logger: logger}
}

// Chat renders a group's message history
func (h *GroupHandler) Chat(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	h.renderChat(w, r, http.StatusOK, id, "", "")
}

// Send posts a message to a group
func (h *GroupHandler) Send(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := r.ParseForm(); err != nil {
		h.renderChat(w, r, http.StatusBadRequest, id, "", "Invalid form data")
		return
	}

	text := strings.TrimSpace(r.FormValue("message"))
	if text == "" {
		h.renderChat(w, r, http.StatusOK, id, "", "Message cannot be empty")
		return
	}

	release, ok := middleware.AcquireForm(h.latch, r, "chat:"+id)
	if !ok {
		h.renderChat(w, r, http.StatusConflict, id, text, middleware.DuplicateSubmission)
		return
	}
	defer release()

	user := middleware.GetUser(r.Context())
	if _, err := h.api.SendMessage(r.Context(), id, user.ID, text); err != nil {
		h.logger.Info("message rejected",
			slog.String("group_id", id),
			slog.String("error", err.Error()),
		)
		h.renderChat(w, r, http.StatusOK, id, text, backend.Message(err, "Failed to send message. Please try again."))
		return
	}

	redirect(w, r, "/player/groups/"+id)
}

// renderChat reloads the history on every render so a failed send keeps the draft beside fresh messages
func (h *GroupHandler) renderChat(w http.ResponseWriter, r *http.Request, status int, id, draft, errorMsg string) {
	list, err := h.api.ListMessages(r.Context(), id)
	if err != nil {
		renderLoadError(w, r, h.logger, err, "Group", "/player/my-games")
		return
	}

	data := pages.GroupChatData{
		PageData: pageData(r, "Group Chat"),
		GroupID:  id,
		Messages: list.Messages,
		Draft:    draft,
		Error:    errorMsg,
	}
	render(w, r, status, pages.GroupChat(data))
}
