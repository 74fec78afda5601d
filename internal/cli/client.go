package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mcoot/sportfinder/internal/backend"
	"github.com/mcoot/sportfinder/internal/geo"
	"github.com/mcoot/sportfinder/internal/guard"
	"github.com/mcoot/sportfinder/internal/model"
	"github.com/mcoot/sportfinder/internal/storage"
	"github.com/mcoot/sportfinder/internal/storage/file"
)

// Client bundles what commands need: the API gateway and the profile's session slot
type Client struct {
	API     *backend.Client
	Store   storage.SessionStore
	Key     model.SessionKey
	Locator geo.Locator
	Policy  guard.Policy
	Logger  *slog.Logger
}

// NewClient creates a Client from the CLI configuration
func NewClient(c *Config) (*Client, error) {
	policy, err := c.Policy()
	if err != nil {
		return nil, err
	}
	if err := file.ValidateKey(c.SessionKey()); err != nil {
		return nil, &UserError{Text: fmt.Sprintf("Profile %q is not a valid profile name", c.Profile), Err: err}
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if c.Verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	apiCfg := backend.DefaultConfig()
	apiCfg.BaseURL = c.APIURL
	apiCfg.Logger = logger

	return &Client{
		API:     backend.New(apiCfg),
		Store:   file.New(c.ProfilesDir()),
		Key:     c.SessionKey(),
		Locator: c.Locator(),
		Policy:  policy,
		Logger:  logger,
	}, nil
}

// CurrentUser loads the profile's Session Record; nil means signed out
func (c *Client) CurrentUser(ctx context.Context) (*model.User, error) {
	user, err := c.Store.Load(ctx, c.Key)
	if errors.Is(err, model.ErrNoSession) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	return user, nil
}

// RequireRole loads the Session Record and applies the role policy.
// An empty role accepts any signed-in user.
func (c *Client) RequireRole(ctx context.Context, role model.Role) (*model.User, error) {
	user, err := c.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	switch c.Policy.Check(user, role) {
	case guard.OutcomeUnauthenticated:
		return nil, ErrNotSignedIn
	case guard.OutcomeUnauthorized:
		return nil, fmt.Errorf("this command is for %s accounts; signed in as %s", role.Title(), user.Role.Title())
	}
	return user, nil
}

// SignIn overwrites the profile's Session Record
func (c *Client) SignIn(ctx context.Context, user *model.User) error {
	if user == nil || !user.Role.Valid() {
		return ErrUnsupportedRole
	}
	if err := c.Store.Save(ctx, c.Key, user); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	c.Logger.Debug("session saved", slog.String("profile", string(c.Key)), slog.String("user_id", user.ID))
	return nil
}

// SignOut clears the profile's Session Record without calling the API
func (c *Client) SignOut(ctx context.Context) error {
	if err := c.Store.Clear(ctx, c.Key); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// Coordinates resolves explicit --lat/--lng flags, falling back to the locator when both are empty
func (c *Client) Coordinates(ctx context.Context, lat, lng string) (float64, float64, error) {
	if lat == "" && lng == "" {
		pos, err := c.Locator.Locate(ctx)
		if err != nil {
			c.Logger.Debug("location unavailable", slog.String("error", err.Error()))
			return 0, 0, ErrNoLocation
		}
		c.Logger.Debug("location obtained", slog.Float64("accuracy_m", pos.Accuracy))
		return pos.Lat, pos.Lng, nil
	}
	la, ln, err := geo.ParseCoordinates(lat, lng)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %w", ErrInvalidCoordinates, err)
	}
	return la, ln, nil
}
