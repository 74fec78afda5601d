package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/mcoot/sportfinder/internal/backend"
	"github.com/mcoot/sportfinder/internal/dependencies/clock"
	"github.com/mcoot/sportfinder/internal/dependencies/ids"
	"github.com/mcoot/sportfinder/internal/geo"
	"github.com/mcoot/sportfinder/internal/guard"
	"github.com/mcoot/sportfinder/internal/latch"
	"github.com/mcoot/sportfinder/internal/services/auth"
	"github.com/mcoot/sportfinder/internal/storage"
	"github.com/mcoot/sportfinder/internal/storage/memory"
	redisstorage "github.com/mcoot/sportfinder/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Session persistence
	Store storage.SessionStore

	// External dependencies
	Clock   clock.Clock
	IDs     ids.Generator
	Backend *backend.Client
	Locator geo.Locator

	// Services
	AuthService *auth.Service
	Policy      guard.Policy
	Latch       *latch.Latch

	closers []io.Closer
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the session store ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// Backend configures the API gateway client; zero value uses backend.DefaultConfig()
	Backend backend.Config
	// AuthConfig holds the session cookie settings (Secret is required)
	AuthConfig auth.Config
	// Locator supplies form geolocation; nil means unavailable
	Locator geo.Locator
	// Policy is the role guard policy; zero value is strict
	Policy guard.Policy
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.SessionStore
	var closers []io.Closer
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
		closers = append(closers, redisStore)
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	backendCfg := cfg.Backend
	if backendCfg.BaseURL == "" && backendCfg.HTTPClient == nil && backendCfg.Timeout == 0 {
		backendCfg = backend.DefaultConfig()
	}
	if backendCfg.Logger == nil {
		backendCfg.Logger = logger
	}

	app, err := newWithDependencies(store, clock.New(), ids.New(), backend.New(backendCfg), cfg, logger)
	if err != nil {
		for _, c := range closers {
			_ = c.Close()
		}
		return nil, err
	}
	app.closers = closers
	return app, nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.SessionStore, clk clock.Clock, gen ids.Generator, client *backend.Client, cfg Config, logger *slog.Logger) (*App, error) {
	authService, err := auth.New(store, gen, clk, cfg.AuthConfig, logger)
	if err != nil {
		return nil, err
	}

	locator := cfg.Locator
	if locator == nil {
		locator = geo.Unavailable{}
	}
	policy := cfg.Policy
	if policy.Mode == "" {
		policy = guard.DefaultPolicy()
	}

	return &App{
		Store:       store,
		Clock:       clk,
		IDs:         gen,
		Backend:     client,
		Locator:     locator,
		AuthService: authService,
		Policy:      policy,
		Latch:       latch.New(),
	}, nil
}

// Close releases external connections held by the app
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
