package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/mcoot/sportfinder/internal/guard"
	"github.com/mcoot/sportfinder/internal/model"
	"github.com/mcoot/sportfinder/internal/services/auth"
)

type contextKey string

const (
	userContextKey       contextKey = "user"
	sessionKeyContextKey contextKey = "sessionKey"
)

// Paths the guard redirects to
const (
	LoginPath        = "/login"
	UnauthorizedPath = "/unauthorized"
)

// cookieMaxAge is the longest lifetime browsers honour; the slot itself never expires
const cookieMaxAge = 400 * 24 * 60 * 60

// CookieConfig controls the session cookie
type CookieConfig struct {
	Name   string
	Secure bool
}

// DefaultCookieConfig returns the cookie settings used when none are configured
func DefaultCookieConfig() CookieConfig {
	return CookieConfig{Name: "sportfinder_session"}
}

// GetUser retrieves the Session Record from the request context
// Returns nil if the browser's slot is empty
func GetUser(ctx context.Context) *model.User {
	user, _ := ctx.Value(userContextKey).(*model.User)
	return user
}

// GetSessionKey retrieves the browser's session slot from the request context
func GetSessionKey(ctx context.Context) model.SessionKey {
	key, _ := ctx.Value(sessionKeyContextKey).(model.SessionKey)
	return key
}

// Session returns middleware that resolves the browser's session slot and Session Record.
// A browser without a valid cookie is given a fresh, empty slot.
func Session(authService *auth.Service, cookie CookieConfig, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var user *model.User
			var key model.SessionKey

			if c, err := r.Cookie(cookie.Name); err == nil && c.Value != "" {
				user, key, err = authService.CurrentUser(r.Context(), c.Value)
				switch {
				case err == nil, errors.Is(err, model.ErrNoSession):
				case errors.Is(err, auth.ErrInvalidToken):
					key = ""
				default:
					logger.Error("failed to load session",
						slog.String("error", err.Error()),
						slog.String("path", r.URL.Path),
					)
					http.Error(w, "Session store unavailable", http.StatusServiceUnavailable)
					return
				}
			}

			if key == "" {
				key = authService.NewSlot()
				token, err := authService.IssueToken(key)
				if err != nil {
					logger.Error("failed to issue session cookie", slog.String("error", err.Error()))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
					return
				}
				SetSessionCookie(w, cookie, token)
			}

			ctx := context.WithValue(r.Context(), sessionKeyContextKey, key)
			ctx = context.WithValue(ctx, userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole returns middleware that lets a request through only when the policy allows it.
// An empty role admits any signed-in user.
func RequireRole(policy guard.Policy, role model.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch policy.Check(GetUser(r.Context()), role) {
			case guard.OutcomeUnauthenticated:
				http.Redirect(w, r, LoginPath, http.StatusSeeOther)
			case guard.OutcomeUnauthorized:
				http.Redirect(w, r, UnauthorizedPath, http.StatusSeeOther)
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}

// SetSessionCookie writes the signed slot cookie
func SetSessionCookie(w http.ResponseWriter, cookie CookieConfig, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookie.Name,
		Value:    token,
		Path:     "/",
		MaxAge:   cookieMaxAge,
		HttpOnly: true,
		Secure:   cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the slot cookie
func ClearSessionCookie(w http.ResponseWriter, cookie CookieConfig) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookie.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
