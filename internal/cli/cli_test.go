package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/sportfinder/internal/backend"
	"github.com/mcoot/sportfinder/internal/model"
	"github.com/mcoot/sportfinder/internal/storage/file"
)

var (
	ana  = model.User{ID: "u1", Name: "Ana Lopez", Email: "ana@example.com", Role: model.RolePlayer, Phone: "555-0101"}
	omar = model.User{ID: "u2", Name: "Omar", Email: "omar@example.com", Role: model.RoleTurfOwner, Phone: "555-0102"}
)

// stubAPI answers the handful of endpoints the commands call and records every request
type stubAPI struct {
	*httptest.Server
	mu     sync.Mutex
	calls  map[string]int
	bodies map[string]map[string]any
}

func newStubAPI(t *testing.T) *stubAPI {
	t.Helper()
	s := &stubAPI{calls: make(map[string]int), bodies: make(map[string]map[string]any)}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /users/login", func(w http.ResponseWriter, r *http.Request) {
		switch s.body(r)["email"] {
		case ana.Email:
			writeJSON(w, http.StatusOK, map[string]any{"user": ana})
		case omar.Email:
			writeJSON(w, http.StatusOK, map[string]any{"user": omar})
		case "coach@example.com":
			writeJSON(w, http.StatusOK, map[string]any{"user": map[string]any{"id": "u9", "name": "Coach", "role": "coach"}})
		default:
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "User not found"})
		}
	})
	mux.HandleFunc("PUT /users/{id}/profile", func(w http.ResponseWriter, r *http.Request) {
		s.body(r)
		writeJSON(w, http.StatusOK, map[string]string{"message": "Profile updated"})
	})
	mux.HandleFunc("POST /posts/nearby", func(w http.ResponseWriter, r *http.Request) {
		s.body(r)
		km := 2.345
		writeJSON(w, http.StatusOK, backend.GameList{Count: 1, Posts: []model.Game{
			{ID: "p1", Sport: "Football", PlayersNeeded: 5, AcceptedPlayers: []string{"u3"}, Status: model.GameStatusOpen, DistanceKm: &km},
		}})
	})
	mux.HandleFunc("POST /posts/create", func(w http.ResponseWriter, r *http.Request) {
		s.body(r)
		writeJSON(w, http.StatusCreated, map[string]any{"post": model.Game{ID: "p9", Sport: "Cricket"}})
	})
	mux.HandleFunc("POST /posts/{id}/join", func(w http.ResponseWriter, r *http.Request) {
		s.body(r)
		if r.PathValue("id") == "full" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Game is full"})
			return
		}
		writeJSON(w, http.StatusOK, backend.MembershipResult{Message: "Successfully joined the game"})
	})
	mux.HandleFunc("POST /turfs/{id}/book", func(w http.ResponseWriter, r *http.Request) {
		s.body(r)
		writeJSON(w, http.StatusCreated, backend.BookingResult{Message: "Turf booked successfully", Booking: &model.Booking{ID: "b1"}})
	})
	mux.HandleFunc("GET /notifications/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, backend.NotificationList{Count: 1, UnreadCount: 1, Notifications: []model.Notification{
			{ID: "n1", Title: "Player joined", Message: "Sam joined your game"},
		}})
	})

	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.calls[r.Method+" "+r.URL.Path]++
		s.mu.Unlock()
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(s.Close)
	return s
}

func (s *stubAPI) body(r *http.Request) map[string]any {
	var body map[string]any
	_ = json.NewDecoder(r.Body).Decode(&body)
	s.mu.Lock()
	s.bodies[r.Method+" "+r.URL.Path] = body
	s.mu.Unlock()
	return body
}

func (s *stubAPI) callCount(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[key]
}

func (s *stubAPI) totalCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, n := range s.calls {
		total += n
	}
	return total
}

func (s *stubAPI) lastBody(key string) map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bodies[key]
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type harness struct {
	t    *testing.T
	api  *stubAPI
	home string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	for _, key := range []string{"SPORTFINDER_PROFILE", "SPORTFINDER_ROLE_POLICY", "SPORTFINDER_LOCATION_LAT", "SPORTFINDER_LOCATION_LNG"} {
		t.Setenv(key, "")
	}
	return &harness{t: t, api: newStubAPI(t), home: t.TempDir()}
}

func (h *harness) run(args ...string) (string, error) {
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append([]string{"--api", h.api.URL, "--home", h.home}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func (h *harness) mustRun(args ...string) string {
	h.t.Helper()
	out, err := h.run(args...)
	require.NoError(h.t, err)
	return out
}

func (h *harness) stored(profile string) (*model.User, error) {
	return file.New(filepath.Join(h.home, "profiles")).Load(h.t.Context(), model.SessionKey(profile))
}

func TestLoginPersistsProfileSession(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("login", "--email", ana.Email)
	assert.Contains(t, out, "Signed in as Ana Lopez <ana@example.com> (Player)")
	assert.Contains(t, out, "Home: /player/dashboard")

	stored, err := h.stored(DefaultProfile)
	require.NoError(t, err)
	assert.Equal(t, "u1", stored.ID)
	assert.Equal(t, model.RolePlayer, stored.Role)

	out = h.mustRun("whoami")
	assert.Contains(t, out, "Ana Lopez")
}

func TestLoginFailures(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("login", "--email", "nobody@example.com")
	require.Error(t, err)
	assert.Equal(t, "User not found", Message(err))

	_, err = h.run("login", "--email", "coach@example.com")
	require.Error(t, err)
	assert.Equal(t, "Account has an unsupported role", Message(err))

	_, err = h.stored(DefaultProfile)
	assert.ErrorIs(t, err, model.ErrNoSession)
}

func TestLoginRejectsUnknownRoleSelector(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("login", "--email", ana.Email, "--role", "coach")
	require.ErrorIs(t, err, model.ErrInvalidRole)
	assert.Equal(t, 0, h.api.totalCalls())
}

func TestLogoutNeverCallsAPI(t *testing.T) {
	h := newHarness(t)
	h.mustRun("login", "--email", ana.Email)
	before := h.api.totalCalls()

	out := h.mustRun("logout")
	assert.Contains(t, out, "You have been logged out")
	assert.Equal(t, before, h.api.totalCalls())

	_, err := h.run("whoami")
	assert.ErrorIs(t, err, ErrNotSignedIn)
}

func TestProfilesAreIsolated(t *testing.T) {
	h := newHarness(t)
	h.mustRun("--profile", "work", "login", "--email", omar.Email)

	_, err := h.run("whoami")
	assert.ErrorIs(t, err, ErrNotSignedIn)

	out := h.mustRun("--profile", "work", "whoami")
	assert.Contains(t, out, "Turf Owner")
}

func TestWhoamiJSON(t *testing.T) {
	h := newHarness(t)
	h.mustRun("login", "--email", omar.Email)

	out := h.mustRun("-o", "json", "whoami")
	var session Session
	require.NoError(t, json.Unmarshal([]byte(out), &session))
	assert.Equal(t, "/turf-owner/dashboard", session.HomePath)
	assert.Equal(t, DefaultProfile, session.Profile)
	assert.Equal(t, "u2", session.User.ID)
}

func TestGamesSearchUsesConfiguredLocation(t *testing.T) {
	h := newHarness(t)
	h.mustRun("login", "--email", ana.Email)
	t.Setenv("SPORTFINDER_LOCATION_LAT", "19.1")
	t.Setenv("SPORTFINDER_LOCATION_LNG", "72.9")

	out := h.mustRun("games", "search", "--sport", "Football")
	assert.Contains(t, out, "p1  Football  1/5 players  open  2.3 km away")

	body := h.api.lastBody("POST /posts/nearby")
	assert.Equal(t, 19.1, body["lat"])
	assert.Equal(t, 72.9, body["lng"])
	assert.Equal(t, float64(defaultRadiusKm), body["radius_km"])
	assert.Equal(t, "Football", body["sport"])
}

func TestGamesSearchWithoutLocation(t *testing.T) {
	h := newHarness(t)
	h.mustRun("login", "--email", ana.Email)

	_, err := h.run("games", "search")
	require.ErrorIs(t, err, ErrNoLocation)
	assert.Equal(t, "Could not get your location. Please enter manually.", Message(err))

	_, err = h.run("games", "search", "--lat", "91", "--lng", "0")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidCoordinates)
	assert.Equal(t, "Enter a valid latitude and longitude.", Message(err))
	assert.Equal(t, 0, h.api.callCount("POST /posts/nearby"))
}

func TestStrictPolicyChecksRole(t *testing.T) {
	h := newHarness(t)
	h.mustRun("login", "--email", omar.Email)

	_, err := h.run("games", "search", "--lat", "19.1", "--lng", "72.9")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Player accounts")
	assert.Equal(t, 0, h.api.callCount("POST /posts/nearby"))

	h.mustRun("--role-policy", "permissive", "games", "search", "--lat", "19.1", "--lng", "72.9")
	assert.Equal(t, 1, h.api.callCount("POST /posts/nearby"))
}

func TestGamesRequireSignIn(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("games", "mine")
	assert.ErrorIs(t, err, ErrNotSignedIn)
	assert.Equal(t, 0, h.api.totalCalls())
}

func TestGamesCreate(t *testing.T) {
	h := newHarness(t)
	h.mustRun("login", "--email", ana.Email)

	_, err := h.run("games", "create", "--players", "0", "--address", "Oval", "--date", "2025-03-12", "--time", "18:00", "--description", "Friendly", "--lat", "19.1", "--lng", "72.9")
	require.Error(t, err)
	assert.Equal(t, "Players needed must be between 1 and 50", Message(err))
	assert.Equal(t, 0, h.api.callCount("POST /posts/create"))

	out := h.mustRun("games", "create", "--sport", "Cricket", "--players", "10", "--address", "Oval", "--date", "2025-03-12", "--time", "18:00", "--description", "Friendly", "--lat", "19.1", "--lng", "72.9")
	assert.Contains(t, out, "Game created! (p9)")

	body := h.api.lastBody("POST /posts/create")
	assert.Equal(t, "u1", body["user_id"])
	assert.Equal(t, "Cricket", body["sport"])
	assert.Equal(t, float64(10), body["players_needed"])
}

func TestGamesJoin(t *testing.T) {
	h := newHarness(t)
	h.mustRun("login", "--email", ana.Email)

	out := h.mustRun("games", "join", "p1")
	assert.Contains(t, out, "Successfully joined the game")
	assert.Equal(t, "u1", h.api.lastBody("POST /posts/p1/join")["user_id"])

	_, err := h.run("games", "join", "full")
	require.Error(t, err)
	assert.Equal(t, "Game is full", Message(err))
}

func TestTurfBooking(t *testing.T) {
	h := newHarness(t)
	h.mustRun("login", "--email", ana.Email)

	_, err := h.run("turfs", "book", "t1", "--slot", "18:00-19:00")
	require.Error(t, err)
	assert.Equal(t, "Date is required", Message(err))
	assert.Equal(t, 0, h.api.callCount("POST /turfs/t1/book"))

	out := h.mustRun("turfs", "book", "t1", "--date", "2025-03-12", "--slot", "18:00-19:00")
	assert.Contains(t, out, "Turf booked successfully (b1)")
}

func TestNotificationsForAnyRole(t *testing.T) {
	h := newHarness(t)
	h.mustRun("login", "--email", omar.Email)

	out := h.mustRun("notifications", "--unread")
	assert.Contains(t, out, "* n1  Player joined: Sam joined your game")
	assert.Equal(t, 1, h.api.callCount("GET /notifications/u2"))
}

func TestProfileUpdateOverwritesSession(t *testing.T) {
	h := newHarness(t)
	h.mustRun("login", "--email", ana.Email)

	_, err := h.run("profile", "update", "--name", " ")
	require.Error(t, err)
	assert.Equal(t, "Name is required", Message(err))

	out := h.mustRun("profile", "update", "--name", "Ana María", "--skill-level", "Advanced")
	assert.Contains(t, out, "Profile updated")

	stored, err := h.stored(DefaultProfile)
	require.NoError(t, err)
	assert.Equal(t, "Ana María", stored.Name)
	assert.Equal(t, "Advanced", stored.SkillLevel)
	assert.Equal(t, model.RolePlayer, stored.Role)
}

func TestOwnerOnboarding(t *testing.T) {
	h := newHarness(t)
	h.mustRun("login", "--email", omar.Email)

	_, err := h.run("profile", "onboard", "--business-name", "Omar Sports", "--turf-name", "Omar Arena", "--address", "Bandra", "--sports", "Football", "--price", "-5", "--lat", "19.05", "--lng", "72.83")
	require.Error(t, err)
	assert.Equal(t, "Price per hour must be a positive number", Message(err))

	_, err = h.run("profile", "onboard", "--business-name", "Omar Sports", "--turf-name", "Omar Arena", "--address", "Bandra", "--sports", "Football", "--price", "NaN", "--lat", "19.05", "--lng", "72.83")
	require.Error(t, err)
	assert.Equal(t, "Price per hour must be a positive number", Message(err))
	assert.Equal(t, 0, h.api.callCount("PUT /users/u2/profile"))

	out := h.mustRun("profile", "onboard", "--business-name", "Omar Sports", "--turf-name", "Omar Arena", "--address", "Bandra", "--sports", "Football,Tennis", "--price", "900", "--lat", "19.05", "--lng", "72.83")
	assert.Contains(t, out, "Your turf is listed!")

	body := h.api.lastBody("PUT /users/u2/profile")
	assert.Equal(t, "555-0102", body["phone"])
	turf, ok := body["turf"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Omar Arena", turf["name"])
	assert.Equal(t, []any{"Football", "Tennis"}, turf["sports"])

	stored, err := h.stored(DefaultProfile)
	require.NoError(t, err)
	assert.Equal(t, "Omar Sports", stored.BusinessName)
}

func TestErrorsKeepDisplayTextSeparate(t *testing.T) {
	err := invalid("Price per hour must be a positive number")
	assert.Equal(t, "price per hour must be a positive number", err.Error())
	assert.Equal(t, "Price per hour must be a positive number", Message(err))

	apiErr := &backend.APIError{Status: 409, Message: "Game is full"}
	err = apiFailure(apiErr, "Failed to join the game. Please try again.")
	assert.Equal(t, "Game is full", Message(err))
	assert.ErrorIs(t, err, apiErr)
	assert.True(t, strings.HasPrefix(err.Error(), "game is full: "))

	err = apiFailure(&backend.TransportError{Err: io.ErrUnexpectedEOF}, "Failed to send message. Please try again.")
	assert.Equal(t, "Failed to send message. Please try again.", Message(err))

	assert.Equal(t, "Could not get your location. Please enter manually.", Message(fmt.Errorf("search: %w", ErrNoLocation)))
	assert.Equal(t, "account has an unsupported role", ErrUnsupportedRole.Error())
	assert.Equal(t, "Account has an unsupported role", Message(ErrUnsupportedRole))

	var buf bytes.Buffer
	printError(&buf, invalid("Date is required"))
	assert.Equal(t, "Error: Date is required\n", buf.String())
}

func TestProfileNameMustBeOrdinary(t *testing.T) {
	h := newHarness(t)

	for _, profile := range []string{"..", ".", "", "../other", "a/b"} {
		_, err := h.run("--profile", profile, "login", "--email", ana.Email)
		require.ErrorIs(t, err, file.ErrInvalidKey, "profile %q", profile)
		assert.Contains(t, Message(err), "is not a valid profile name")
	}
	assert.Equal(t, 0, h.api.callCount("POST /users/login"))

	entries, err := os.ReadDir(h.home)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
