package web

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/sportfinder/internal/backend"
	"github.com/mcoot/sportfinder/internal/geo"
	"github.com/mcoot/sportfinder/internal/guard"
	"github.com/mcoot/sportfinder/internal/latch"
	"github.com/mcoot/sportfinder/internal/model"
	"github.com/mcoot/sportfinder/internal/services/auth"
	"github.com/mcoot/sportfinder/internal/web/handler"
	"github.com/mcoot/sportfinder/internal/web/middleware"
	"github.com/mcoot/sportfinder/internal/web/static"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger      *slog.Logger
	AuthService *auth.Service
	Backend     *backend.Client
	Locator     geo.Locator
	Policy      guard.Policy
	Latch       *latch.Latch
	Cookie      middleware.CookieConfig
	StaticDir   string // Serves assets from disk instead of the embedded copy
}

// NewRouter creates a new web router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	if cfg.Locator == nil {
		cfg.Locator = geo.Unavailable{}
	}
	if cfg.Latch == nil {
		cfg.Latch = latch.New()
	}
	if cfg.Cookie.Name == "" {
		cfg.Cookie = middleware.DefaultCookieConfig()
	}

	// Create middleware
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)
	flashMiddleware := middleware.Flash()
	sessionMiddleware := middleware.Session(cfg.AuthService, cfg.Cookie, cfg.Logger)

	// Apply global middleware to all routes
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	// Create handlers
	homeHandler := handler.NewHomeHandler()
	authHandler := handler.NewAuthHandler(cfg.AuthService, cfg.Backend, cfg.Latch, cfg.Cookie, cfg.Logger)
	playerHandler := handler.NewPlayerHandler(cfg.Backend, cfg.Locator, cfg.Latch, cfg.Logger)
	groupHandler := handler.NewGroupHandler(cfg.Backend, cfg.Latch, cfg.Logger)
	turfHandler := handler.NewTurfHandler(cfg.Backend, cfg.Locator, cfg.Latch, cfg.Logger)
	adminHandler := handler.NewAdminHandler(cfg.Backend, cfg.Logger)
	ownerHandler := handler.NewOwnerHandler(cfg.AuthService, cfg.Backend, cfg.Locator, cfg.Latch, cfg.Logger)
	notificationHandler := handler.NewNotificationHandler(cfg.Backend, cfg.Latch, cfg.Logger)
	profileHandler := handler.NewProfileHandler(cfg.AuthService, cfg.Backend, cfg.Latch, cfg.Logger)

	// Static files
	var assets http.FileSystem = http.FS(static.Files)
	if cfg.StaticDir != "" {
		assets = http.Dir(cfg.StaticDir)
	}
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(assets)))

	// Every page resolves the browser's slot so the nav can show who is signed in
	pages := r.NewRoute().Subrouter()
	pages.Use(flashMiddleware)
	pages.Use(sessionMiddleware)

	// Public routes
	pages.HandleFunc("/", homeHandler.Home).Methods(http.MethodGet)
	pages.HandleFunc("/login", authHandler.LoginPage).Methods(http.MethodGet)
	pages.HandleFunc("/login", authHandler.Login).Methods(http.MethodPost)
	pages.HandleFunc("/register", authHandler.RegisterPage).Methods(http.MethodGet)
	pages.HandleFunc("/register", authHandler.Register).Methods(http.MethodPost)
	pages.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodPost)
	pages.HandleFunc("/unauthorized", homeHandler.Unauthorized).Methods(http.MethodGet)

	// Player routes
	player := pages.PathPrefix("/player").Subrouter()
	player.Use(middleware.RequireRole(cfg.Policy, model.RolePlayer))
	player.HandleFunc("/dashboard", playerHandler.Dashboard).Methods(http.MethodGet)
	player.HandleFunc("/discover", playerHandler.Discover).Methods(http.MethodGet)
	player.HandleFunc("/create-game", playerHandler.CreateGamePage).Methods(http.MethodGet)
	player.HandleFunc("/create-game", playerHandler.CreateGame).Methods(http.MethodPost)
	player.HandleFunc("/my-games", playerHandler.MyGames).Methods(http.MethodGet)
	player.HandleFunc("/games/{id}", playerHandler.GameDetail).Methods(http.MethodGet)
	player.HandleFunc("/games/{id}/join", playerHandler.JoinGame).Methods(http.MethodPost)
	player.HandleFunc("/games/{id}/leave", playerHandler.LeaveGame).Methods(http.MethodPost)
	player.HandleFunc("/games/{id}/delete", playerHandler.DeleteGame).Methods(http.MethodPost)
	player.HandleFunc("/groups/{id}", groupHandler.Chat).Methods(http.MethodGet)
	player.HandleFunc("/groups/{id}", groupHandler.Send).Methods(http.MethodPost)
	player.HandleFunc("/turfs", turfHandler.Search).Methods(http.MethodGet)
	player.HandleFunc("/turfs/{id}", turfHandler.Detail).Methods(http.MethodGet)
	player.HandleFunc("/turfs/{id}/book", turfHandler.Book).Methods(http.MethodPost)

	// Admin routes
	admin := pages.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.RequireRole(cfg.Policy, model.RoleAdmin))
	admin.HandleFunc("/dashboard", adminHandler.Dashboard).Methods(http.MethodGet)

	// Turf owner routes
	owner := pages.PathPrefix("/turf-owner").Subrouter()
	owner.Use(middleware.RequireRole(cfg.Policy, model.RoleTurfOwner))
	owner.HandleFunc("/dashboard", ownerHandler.Dashboard).Methods(http.MethodGet)
	owner.HandleFunc("/create-turf", ownerHandler.CreateTurfPage).Methods(http.MethodGet)
	owner.HandleFunc("/create-turf", ownerHandler.CreateTurf).Methods(http.MethodPost)

	// Any signed-in role
	account := pages.NewRoute().Subrouter()
	account.Use(middleware.RequireRole(cfg.Policy, ""))
	account.HandleFunc("/profile", profileHandler.Page).Methods(http.MethodGet)
	account.HandleFunc("/profile", profileHandler.Update).Methods(http.MethodPost)
	account.HandleFunc("/notifications", notificationHandler.List).Methods(http.MethodGet)
	account.HandleFunc("/notifications/read-all", notificationHandler.MarkAllRead).Methods(http.MethodPost)
	account.HandleFunc("/notifications/{id}/read", notificationHandler.MarkRead).Methods(http.MethodPost)

	return r
}
