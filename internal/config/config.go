package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/mcoot/sportfinder/internal/geo"
	"github.com/mcoot/sportfinder/internal/guard"
)

// EnvPrefix is prepended to every environment override, e.g. SPORTFINDER_SERVER_PORT
const EnvPrefix = "SPORTFINDER"

// DefaultSessionSecret is only suitable for local development
const DefaultSessionSecret = "sportfinder-dev-secret-change-me"

// Config holds all server configuration
type Config struct {
	Server   ServerConfig
	API      APIConfig
	Storage  StorageConfig
	Session  SessionConfig
	Location LocationConfig
	Log      LogConfig
	// RolePolicy is "strict" or "permissive"
	RolePolicy string
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	StaticDir       string
}

// APIConfig points at the remote SportFinder API
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// StorageConfig selects the session store backend
type StorageConfig struct {
	Type           string
	RedisURL       string
	RedisKeyPrefix string
	RedisPoolSize  int
}

// SessionConfig holds the session cookie settings
type SessionConfig struct {
	Secret     string
	CookieName string
	Secure     bool
}

// LocationConfig is an optional fixed position offered in place of device geolocation
type LocationConfig struct {
	Lat string
	Lng string
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string
}

// Load reads configuration from defaults, an optional config file and SPORTFINDER_* env vars.
// An empty path skips the file.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := bindConfig(v)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.shutdown_timeout", "30s")
	v.SetDefault("server.static_dir", "")

	v.SetDefault("api.base_url", "https://us-central1-axilam.cloudfunctions.net/sport_api/api")
	v.SetDefault("api.timeout", "30s")

	v.SetDefault("storage.type", "memory")
	v.SetDefault("storage.redis_url", "")
	v.SetDefault("storage.redis_key_prefix", "sportfinder")
	v.SetDefault("storage.redis_pool_size", 10)

	v.SetDefault("session.secret", DefaultSessionSecret)
	v.SetDefault("session.cookie_name", "sportfinder_session")
	v.SetDefault("session.secure", false)

	v.SetDefault("location.lat", "")
	v.SetDefault("location.lng", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("role_policy", string(guard.ModeStrict))
}

func bindConfig(v *viper.Viper) *Config {
	return &Config{
		Server: ServerConfig{
			Host:            v.GetString("server.host"),
			Port:            v.GetInt("server.port"),
			ReadTimeout:     v.GetDuration("server.read_timeout"),
			WriteTimeout:    v.GetDuration("server.write_timeout"),
			ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
			StaticDir:       v.GetString("server.static_dir"),
		},
		API: APIConfig{
			BaseURL: v.GetString("api.base_url"),
			Timeout: v.GetDuration("api.timeout"),
		},
		Storage: StorageConfig{
			Type:           v.GetString("storage.type"),
			RedisURL:       v.GetString("storage.redis_url"),
			RedisKeyPrefix: v.GetString("storage.redis_key_prefix"),
			RedisPoolSize:  v.GetInt("storage.redis_pool_size"),
		},
		Session: SessionConfig{
			Secret:     v.GetString("session.secret"),
			CookieName: v.GetString("session.cookie_name"),
			Secure:     v.GetBool("session.secure"),
		},
		Location: LocationConfig{
			Lat: v.GetString("location.lat"),
			Lng: v.GetString("location.lng"),
		},
		Log: LogConfig{
			Level: v.GetString("log.level"),
		},
		RolePolicy: v.GetString("role_policy"),
	}
}

// Validate checks the configuration for values the server cannot start with
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.API.BaseURL == "" {
		return errors.New("api base url is required")
	}
	switch c.Storage.Type {
	case "memory":
	case "redis":
		if c.Storage.RedisURL == "" {
			return errors.New("storage.redis_url is required when storage.type is redis")
		}
	default:
		return fmt.Errorf("invalid storage type %q: must be 'memory' or 'redis'", c.Storage.Type)
	}
	if c.Session.Secret == "" {
		return errors.New("session secret is required")
	}
	if c.Session.CookieName == "" {
		return errors.New("session cookie name is required")
	}
	if _, err := guard.ParseMode(c.RolePolicy); err != nil {
		return err
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	if _, _, err := c.Location.Coordinates(); err != nil && !errors.Is(err, geo.ErrUnavailable) {
		return err
	}
	return nil
}

// Policy returns the configured role guard policy
func (c *Config) Policy() guard.Policy {
	mode, err := guard.ParseMode(c.RolePolicy)
	if err != nil {
		return guard.DefaultPolicy()
	}
	return guard.Policy{Mode: mode}
}

// SlogLevel parses the configured level name
func (c LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", c.Level, err)
	}
	return level, nil
}

// Coordinates returns the configured fixed position, or geo.ErrUnavailable when unset
func (c LocationConfig) Coordinates() (float64, float64, error) {
	if c.Lat == "" && c.Lng == "" {
		return 0, 0, geo.ErrUnavailable
	}
	return geo.ParseCoordinates(c.Lat, c.Lng)
}

// Locator builds the geolocation capability the forms use
func (c LocationConfig) Locator() geo.Locator {
	lat, lng, err := c.Coordinates()
	if err != nil {
		return geo.Unavailable{}
	}
	fixed, err := geo.NewFixed(lat, lng)
	if err != nil {
		return geo.Unavailable{}
	}
	return fixed
}

// UsesDefaultSecret reports whether the development session secret is in effect
func (c *Config) UsesDefaultSecret() bool {
	return c.Session.Secret == DefaultSessionSecret
}
