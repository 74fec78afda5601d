package auth

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/hkdf"

	"github.com/mcoot/sportfinder/internal/dependencies/clock"
	"github.com/mcoot/sportfinder/internal/dependencies/ids"
	"github.com/mcoot/sportfinder/internal/model"
	"github.com/mcoot/sportfinder/internal/storage"
)

// Errors
var (
	ErrInvalidToken = errors.New("invalid session token")
)

const (
	defaultIssuer = "sportfinder"
	keyInfo       = "sportfinder session cookie v1"
)

// Config holds configuration for the auth service
type Config struct {
	// Secret is the operator secret the cookie signing key is derived from
	Secret string
	// Issuer is written to and required in every token
	Issuer string
}

// Service binds browser session cookies to Session Store slots.
// A cookie carries only the slot id; the Session Record itself lives in the store.
type Service struct {
	store  storage.SessionStore
	ids    ids.Generator
	clock  clock.Clock
	key    []byte
	issuer string
	logger *slog.Logger
}

// New creates a new auth Service
func New(store storage.SessionStore, gen ids.Generator, clk clock.Clock, cfg Config, logger *slog.Logger) (*Service, error) {
	if cfg.Secret == "" {
		return nil, errors.New("session secret is required")
	}
	if cfg.Issuer == "" {
		cfg.Issuer = defaultIssuer
	}
	key, err := deriveKey(cfg.Secret)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &Service{
		store:  store,
		ids:    gen,
		clock:  clk,
		key:    key,
		issuer: cfg.Issuer,
		logger: logger,
	}, nil
}

// deriveKey stretches the configured secret into a 256-bit HMAC key
func deriveKey(secret string) ([]byte, error) {
	key := make([]byte, 32)
	r := hkdf.New(sha256.New, []byte(secret), nil, []byte(keyInfo))
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("derive session key: %w", err)
	}
	return key, nil
}

// NewSlot allocates a fresh session slot id
func (s *Service) NewSlot() model.SessionKey {
	return s.ids.SessionKey()
}

// IssueToken signs a cookie value naming the given slot
func (s *Service) IssueToken(key model.SessionKey) (string, error) {
	claims := jwt.RegisteredClaims{
		Issuer:   s.issuer,
		Subject:  string(key),
		IssuedAt: jwt.NewNumericDate(s.clock.Now()),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return token, nil
}

// ParseToken verifies a cookie value and returns the slot it names
func (s *Service) ParseToken(token string) (model.SessionKey, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return s.key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(s.clock.Now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !ids.ValidSessionKey(claims.Subject) {
		return "", fmt.Errorf("%w: malformed slot", ErrInvalidToken)
	}
	return model.SessionKey(claims.Subject), nil
}

// CurrentUser resolves a cookie value to the Session Record in its slot.
// The slot key is returned whenever the token itself is valid, even if the slot is empty.
func (s *Service) CurrentUser(ctx context.Context, token string) (*model.User, model.SessionKey, error) {
	key, err := s.ParseToken(token)
	if err != nil {
		return nil, "", err
	}
	user, err := s.store.Load(ctx, key)
	if err != nil {
		if !errors.Is(err, model.ErrNoSession) {
			s.logger.Warn("session store load failed",
				slog.String("error", err.Error()),
			)
		}
		return nil, key, err
	}
	return user, key, nil
}

// SignIn persists user as the slot's Session Record, replacing any previous one
func (s *Service) SignIn(ctx context.Context, key model.SessionKey, user *model.User) error {
	if user == nil {
		return model.ErrInvalidRole
	}
	if err := user.Validate(); err != nil {
		return err
	}
	if err := s.store.Save(ctx, key, user); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	s.logger.Info("session started",
		slog.String("user_id", user.ID),
		slog.String("role", string(user.Role)),
	)
	return nil
}

// StartSession moves a browser onto a new slot holding user and returns the
// token naming it. The previous slot is cleared, so a token issued before
// sign-in never becomes authenticated.
func (s *Service) StartSession(ctx context.Context, previous model.SessionKey, user *model.User) (model.SessionKey, string, error) {
	key := s.NewSlot()
	if err := s.SignIn(ctx, key, user); err != nil {
		return "", "", err
	}
	token, err := s.IssueToken(key)
	if err != nil {
		_ = s.store.Clear(ctx, key)
		return "", "", err
	}
	if previous != "" && previous != key {
		if err := s.store.Clear(ctx, previous); err != nil {
			s.logger.Warn("failed to clear previous slot", slog.String("error", err.Error()))
		}
	}
	return key, token, nil
}

// SignOut removes the slot's Session Record. It never contacts the API.
func (s *Service) SignOut(ctx context.Context, key model.SessionKey) error {
	if err := s.store.Clear(ctx, key); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
