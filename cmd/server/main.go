package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/mcoot/sportfinder/internal/api"
	"github.com/mcoot/sportfinder/internal/backend"
	"github.com/mcoot/sportfinder/internal/config"
	"github.com/mcoot/sportfinder/internal/factory"
	"github.com/mcoot/sportfinder/internal/services/auth"
	redisstorage "github.com/mcoot/sportfinder/internal/storage/redis"
	"github.com/mcoot/sportfinder/internal/web"
	"github.com/mcoot/sportfinder/internal/web/middleware"
)

func main() {
	configPath := flag.String("config", os.Getenv("SPORTFINDER_CONFIG"), "Path to a YAML or TOML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Set up logging with JSON output
	level, _ := cfg.Log.SlogLevel()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	if cfg.UsesDefaultSecret() {
		logger.Warn("using the development session secret; set SPORTFINDER_SESSION_SECRET in production")
	}

	factoryCfg := factory.Config{
		Logger:      logger,
		StorageType: cfg.Storage.Type,
		Backend: backend.Config{
			BaseURL: cfg.API.BaseURL,
			Timeout: cfg.API.Timeout,
		},
		AuthConfig: auth.Config{Secret: cfg.Session.Secret},
		Locator:    cfg.Location.Locator(),
		Policy:     cfg.Policy(),
	}

	if cfg.Storage.Type == factory.StorageTypeRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.Storage.RedisURL
		redisCfg.KeyPrefix = cfg.Storage.RedisKeyPrefix
		redisCfg.PoolSize = cfg.Storage.RedisPoolSize
		factoryCfg.RedisConfig = &redisCfg
	}

	// Create application factory
	app, err := factory.New(factoryCfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Warn("failed to close application", slog.String("error", err.Error()))
		}
	}()

	logger.Info("application configured",
		slog.String("storage", factoryCfg.StorageType),
		slog.String("backend", app.Backend.BaseURL()),
		slog.String("role_policy", string(app.Policy.Mode)),
	)

	apiRouter := api.NewRouter(api.RouterConfig{
		Logger:      logger,
		AuthService: app.AuthService,
		CookieName:  cfg.Session.CookieName,
		BackendURL:  app.Backend.BaseURL(),
	})

	webRouter := web.NewRouter(web.RouterConfig{
		Logger:      logger,
		AuthService: app.AuthService,
		Backend:     app.Backend,
		Locator:     app.Locator,
		Policy:      app.Policy,
		Latch:       app.Latch,
		Cookie: middleware.CookieConfig{
			Name:   cfg.Session.CookieName,
			Secure: cfg.Session.Secure,
		},
		StaticDir: cfg.Server.StaticDir,
	})

	// Combine routers
	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)
	mux.Handle("/", webRouter)

	server := api.NewServer(mux, api.ServerConfig{
		Host:            cfg.Server.Host,
		Port:            cfg.Server.Port,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	}, logger)

	// Handle graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}
