package cli

import (
	"os"
	"path/filepath"

	"github.com/mcoot/sportfinder/internal/backend"
	"github.com/mcoot/sportfinder/internal/config"
	"github.com/mcoot/sportfinder/internal/geo"
	"github.com/mcoot/sportfinder/internal/guard"
	"github.com/mcoot/sportfinder/internal/model"
)

// DefaultProfile is the session slot used when --profile is not given
const DefaultProfile = "default"

// Config holds CLI configuration
type Config struct {
	APIURL     string
	Home       string
	Profile    string
	RolePolicy string
	Lat        string
	Lng        string
	Output     string
	Verbose    bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		APIURL:     getEnvOrDefault("SPORTFINDER_API_BASE_URL", backend.DefaultBaseURL),
		Home:       getEnvOrDefault("SPORTFINDER_HOME", defaultHome()),
		Profile:    getEnvOrDefault("SPORTFINDER_PROFILE", DefaultProfile),
		RolePolicy: getEnvOrDefault("SPORTFINDER_ROLE_POLICY", string(guard.ModeStrict)),
		Lat:        os.Getenv("SPORTFINDER_LOCATION_LAT"),
		Lng:        os.Getenv("SPORTFINDER_LOCATION_LNG"),
		Output:     "text",
		Verbose:    false,
	}
}

// ProfilesDir is where each profile's Session Record is kept
func (c *Config) ProfilesDir() string {
	return filepath.Join(c.Home, "profiles")
}

// SessionKey is the store slot of the selected profile
func (c *Config) SessionKey() model.SessionKey {
	return model.SessionKey(c.Profile)
}

// Policy parses the configured role policy
func (c *Config) Policy() (guard.Policy, error) {
	mode, err := guard.ParseMode(c.RolePolicy)
	if err != nil {
		return guard.Policy{}, err
	}
	return guard.Policy{Mode: mode}, nil
}

// Locator answers the configured fixed position, or nothing
func (c *Config) Locator() geo.Locator {
	return config.LocationConfig{Lat: c.Lat, Lng: c.Lng}.Locator()
}

func defaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".sportfinder"
	}
	return filepath.Join(home, ".sportfinder")
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
