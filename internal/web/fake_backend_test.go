package web_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"slices"
	"sync"
	"testing"

	"github.com/mcoot/sportfinder/internal/backend"
	"github.com/mcoot/sportfinder/internal/model"
)

// fakeBackend is an in-memory stand-in for the SportFinder REST API
type fakeBackend struct {
	mu            sync.Mutex
	server        *httptest.Server
	users         map[string]*model.User // by email
	games         map[string]*model.Game
	turfs         map[string]*model.Turf
	groups        map[string]*model.Group
	messages      map[string][]model.Message
	notifications []model.Notification
	calls         map[string]int
	nextID        int

	// createGameError makes POST /posts/create answer 400 with this message
	createGameError string

	// loginEntered and loginGate, when set, hold POST /users/login until the gate is closed
	loginEntered chan struct{}
	loginGate    chan struct{}
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()

	f := &fakeBackend{
		users:    make(map[string]*model.User),
		games:    make(map[string]*model.Game),
		turfs:    make(map[string]*model.Turf),
		groups:   make(map[string]*model.Group),
		messages: make(map[string][]model.Message),
		calls:    make(map[string]int),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /users/login", f.login)
	mux.HandleFunc("POST /users/register", f.register)
	mux.HandleFunc("PUT /users/{id}/profile", f.updateProfile)
	mux.HandleFunc("POST /posts/create", f.createGame)
	mux.HandleFunc("POST /posts/nearby", f.searchGames)
	mux.HandleFunc("GET /posts/{id}", f.getGame)
	mux.HandleFunc("POST /posts/{id}/join", f.joinGame)
	mux.HandleFunc("POST /posts/{id}/leave", f.leaveGame)
	mux.HandleFunc("DELETE /posts/{id}/delete", f.deleteGame)
	mux.HandleFunc("GET /groups/{id}", f.listGroups)
	mux.HandleFunc("GET /groups/{id}/messages", f.listMessages)
	mux.HandleFunc("POST /groups/{id}/messages", f.sendMessage)
	mux.HandleFunc("POST /turfs/search/nearby", f.searchTurfs)
	mux.HandleFunc("GET /turfs/{id}", f.getTurf)
	mux.HandleFunc("POST /turfs/{id}/book", f.bookTurf)
	mux.HandleFunc("GET /notifications/{id}", f.listNotifications)
	mux.HandleFunc("POST /notifications/{id}/read", f.markRead)
	mux.HandleFunc("POST /notifications/{id}/read-all", f.markAllRead)

	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.calls[r.Method+" "+r.URL.Path]++
		f.mu.Unlock()
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(f.server.Close)
	return f
}

// URL is the API root
func (f *fakeBackend) URL() string {
	return f.server.URL
}

// addUser makes an account available to /users/login
func (f *fakeBackend) addUser(u model.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[u.Email] = &u
}

func (f *fakeBackend) addGame(g model.Game) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.games[g.ID] = &g
}

func (f *fakeBackend) addTurf(t model.Turf) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.turfs[t.ID] = &t
}

func (f *fakeBackend) addGroup(g model.Group) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.groups[g.ID] = &g
}

func (f *fakeBackend) addNotification(n model.Notification) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notifications = append(f.notifications, n)
}

func (f *fakeBackend) setCreateGameError(msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createGameError = msg
}

// callCount returns how many requests hit "METHOD /path"
func (f *fakeBackend) callCount(route string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[route]
}

// totalCalls returns the number of requests the API has received
func (f *fakeBackend) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0
	for _, n := range f.calls {
		total += n
	}
	return total
}

func (f *fakeBackend) game(id string) *model.Game {
	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.games[id]
	if !ok {
		return nil
	}
	cp := *g
	return &cp
}

func (f *fakeBackend) groupMessages(id string) []model.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.messages[id])
}

func (f *fakeBackend) id(prefix string) string {
	f.nextID++
	return fmt.Sprintf("%s%d", prefix, f.nextID)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (f *fakeBackend) login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	f.mu.Lock()
	entered, gate := f.loginEntered, f.loginGate
	f.mu.Unlock()
	if gate != nil {
		entered <- struct{}{}
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[body.Email]
	if !ok {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Login successful", "user": u})
}

func (f *fakeBackend) register(w http.ResponseWriter, r *http.Request) {
	var req backend.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.users[req.Email]; exists {
		writeError(w, http.StatusBadRequest, "Email already registered")
		return
	}
	u := &model.User{
		ID:         f.id("u"),
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Role:       req.Role,
		Bio:        req.Bio,
		SkillLevel: req.SkillLevel,
		Avatar:     req.Avatar,
	}
	f.users[u.Email] = u
	writeJSON(w, http.StatusCreated, map[string]any{"user": u})
}

func (f *fakeBackend) updateProfile(w http.ResponseWriter, r *http.Request) {
	var update backend.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.ID != r.PathValue("id") {
			continue
		}
		if update.Name != "" {
			u.Name = update.Name
		}
		if update.Bio != "" {
			u.Bio = update.Bio
		}
		if update.SkillLevel != "" {
			u.SkillLevel = update.SkillLevel
		}
		if update.Phone != "" {
			u.Phone = update.Phone
		}
		if update.BusinessName != "" {
			u.BusinessName = update.BusinessName
		}
		if update.Turf != nil {
			id := f.id("t")
			f.turfs[id] = &model.Turf{
				ID:           id,
				OwnerID:      u.ID,
				Name:         update.Turf.Name,
				Location:     update.Turf.Location,
				Sports:       update.Turf.Sports,
				PricePerHour: update.Turf.PricePerHour,
			}
		}
		writeJSON(w, http.StatusOK, map[string]any{"user": u})
		return
	}
	writeError(w, http.StatusNotFound, "User not found")
}

func (f *fakeBackend) createGame(w http.ResponseWriter, r *http.Request) {
	var req backend.CreateGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createGameError != "" {
		writeError(w, http.StatusBadRequest, f.createGameError)
		return
	}
	g := &model.Game{
		ID:              f.id("p"),
		UserID:          req.UserID,
		Sport:           req.Sport,
		PlayersNeeded:   req.PlayersNeeded,
		AcceptedPlayers: []string{req.UserID},
		Location:        req.Location,
		Description:     req.Description,
		Date:            req.Date,
		Time:            req.Time,
		Status:          model.GameStatusOpen,
	}
	g.GroupID = f.id("g")
	f.games[g.ID] = g
	f.groups[g.GroupID] = &model.Group{ID: g.GroupID, PostID: g.ID, Name: g.Sport, Members: []string{req.UserID}}
	writeJSON(w, http.StatusCreated, map[string]any{"post": g})
}

func (f *fakeBackend) searchGames(w http.ResponseWriter, r *http.Request) {
	var q backend.NearbyQuery
	if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	posts := []model.Game{}
	for _, g := range f.games {
		if q.Sport == "" || q.Sport == g.Sport {
			posts = append(posts, *g)
		}
	}
	slices.SortFunc(posts, func(a, b model.Game) int { return compareIDs(a.ID, b.ID) })
	writeJSON(w, http.StatusOK, backend.GameList{Count: len(posts), Posts: posts})
}

func (f *fakeBackend) getGame(w http.ResponseWriter, r *http.Request) {
	if g := f.game(r.PathValue("id")); g != nil {
		writeJSON(w, http.StatusOK, map[string]any{"post": g})
		return
	}
	writeError(w, http.StatusNotFound, "Post not found")
}

func decodeUserRef(r *http.Request) string {
	var body struct {
		UserID string `json:"user_id"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)
	return body.UserID
}

func (f *fakeBackend) joinGame(w http.ResponseWriter, r *http.Request) {
	userID := decodeUserRef(r)

	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.games[r.PathValue("id")]
	if !ok {
		writeError(w, http.StatusNotFound, "Post not found")
		return
	}
	if slices.Contains(g.AcceptedPlayers, userID) {
		writeError(w, http.StatusBadRequest, "Already joined this game")
		return
	}
	if len(g.AcceptedPlayers) >= g.PlayersNeeded {
		writeError(w, http.StatusBadRequest, "Game is full")
		return
	}
	g.AcceptedPlayers = append(g.AcceptedPlayers, userID)
	writeJSON(w, http.StatusOK, backend.MembershipResult{Message: "Successfully joined the game", GroupID: g.GroupID})
}

func (f *fakeBackend) leaveGame(w http.ResponseWriter, r *http.Request) {
	userID := decodeUserRef(r)

	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.games[r.PathValue("id")]
	if !ok {
		writeError(w, http.StatusNotFound, "Post not found")
		return
	}
	g.AcceptedPlayers = slices.DeleteFunc(g.AcceptedPlayers, func(id string) bool { return id == userID })
	writeJSON(w, http.StatusOK, backend.MembershipResult{Message: "Successfully left the game"})
}

func (f *fakeBackend) deleteGame(w http.ResponseWriter, r *http.Request) {
	userID := decodeUserRef(r)

	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.games[r.PathValue("id")]
	if !ok {
		writeError(w, http.StatusNotFound, "Post not found")
		return
	}
	if g.UserID != userID {
		writeError(w, http.StatusForbidden, "Only the organizer can delete this game")
		return
	}
	delete(f.games, g.ID)
	writeJSON(w, http.StatusOK, backend.Confirmation{Message: "Post deleted successfully"})
}

func (f *fakeBackend) listGroups(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")

	f.mu.Lock()
	defer f.mu.Unlock()
	groups := []model.Group{}
	for _, g := range f.groups {
		if slices.Contains(g.Members, userID) {
			groups = append(groups, *g)
		}
	}
	slices.SortFunc(groups, func(a, b model.Group) int { return compareIDs(a.ID, b.ID) })
	writeJSON(w, http.StatusOK, backend.GroupList{Count: len(groups), Groups: groups})
}

func (f *fakeBackend) listMessages(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.groups[r.PathValue("id")]; !ok {
		writeError(w, http.StatusNotFound, "Group not found")
		return
	}
	msgs := append([]model.Message{}, f.messages[r.PathValue("id")]...)
	writeJSON(w, http.StatusOK, backend.MessageList{Count: len(msgs), Messages: msgs})
}

func (f *fakeBackend) sendMessage(w http.ResponseWriter, r *http.Request) {
	var body struct {
		UserID  string `json:"user_id"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	groupID := r.PathValue("id")
	if _, ok := f.groups[groupID]; !ok {
		writeError(w, http.StatusNotFound, "Group not found")
		return
	}
	msg := model.Message{ID: f.id("m"), GroupID: groupID, UserID: body.UserID, Message: body.Message}
	f.messages[groupID] = append(f.messages[groupID], msg)
	writeJSON(w, http.StatusCreated, map[string]any{"data": msg})
}

func (f *fakeBackend) searchTurfs(w http.ResponseWriter, r *http.Request) {
	var q backend.NearbyQuery
	if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	turfs := []model.Turf{}
	for _, t := range f.turfs {
		if q.Sport == "" || slices.Contains(t.Sports, q.Sport) {
			turfs = append(turfs, *t)
		}
	}
	slices.SortFunc(turfs, func(a, b model.Turf) int { return compareIDs(a.ID, b.ID) })
	writeJSON(w, http.StatusOK, backend.TurfList{Count: len(turfs), Turfs: turfs})
}

func (f *fakeBackend) getTurf(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.turfs[r.PathValue("id")]
	if !ok {
		writeError(w, http.StatusNotFound, "Turf not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"turf": t})
}

func (f *fakeBackend) bookTurf(w http.ResponseWriter, r *http.Request) {
	var req backend.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.turfs[r.PathValue("id")]; !ok {
		writeError(w, http.StatusNotFound, "Turf not found")
		return
	}
	writeJSON(w, http.StatusCreated, backend.BookingResult{Message: "Turf booked successfully"})
}

func (f *fakeBackend) listNotifications(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")
	unreadOnly := r.URL.Query().Get("unread_only") == "true"

	f.mu.Lock()
	defer f.mu.Unlock()
	list := []model.Notification{}
	unread := 0
	for _, n := range f.notifications {
		if n.UserID != userID {
			continue
		}
		if !n.Read {
			unread++
		}
		if unreadOnly && n.Read {
			continue
		}
		list = append(list, n)
	}
	writeJSON(w, http.StatusOK, backend.NotificationList{Count: len(list), UnreadCount: unread, Notifications: list})
}

func (f *fakeBackend) markRead(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.notifications {
		if f.notifications[i].ID == r.PathValue("id") {
			f.notifications[i].Read = true
			writeJSON(w, http.StatusOK, backend.Confirmation{Message: "Notification marked as read"})
			return
		}
	}
	writeError(w, http.StatusNotFound, "Notification not found")
}

func (f *fakeBackend) markAllRead(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.notifications {
		if f.notifications[i].UserID == r.PathValue("id") {
			f.notifications[i].Read = true
		}
	}
	writeJSON(w, http.StatusOK, backend.Confirmation{Message: "All notifications marked as read"})
}

func compareIDs(a, b string) int {
	if len(a) != len(b) {
		return len(a) - len(b)
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
