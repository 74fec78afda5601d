package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mcoot/sportfinder/internal/api/apierr"
	"github.com/mcoot/sportfinder/internal/model"
	"github.com/mcoot/sportfinder/internal/services/auth"
)

type contextKey string

const (
	userContextKey       contextKey = "user"
	sessionKeyContextKey contextKey = "sessionKey"
)

// Auth creates middleware that resolves the caller's session slot.
// The slot token is read from a Bearer header, falling back to the browser cookie.
// Unlike the HTML surface no slot is minted: a caller without a token gets 401.
func Auth(authService *auth.Service, cookieName string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r, cookieName)
			if token == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			user, key, err := authService.CurrentUser(r.Context(), token)
			if err != nil && !errors.Is(err, model.ErrNoSession) {
				if !errors.Is(err, auth.ErrInvalidToken) {
					logger.Error("failed to load session", slog.String("error", err.Error()))
				}
				apierr.WriteError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), sessionKeyContextKey, key)
			ctx = context.WithValue(ctx, userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractToken extracts the session token from the request
func extractToken(r *http.Request, cookieName string) string {
	// Check Authorization header first
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	// Fall back to cookie
	cookie, err := r.Cookie(cookieName)
	if err == nil {
		return cookie.Value
	}

	return ""
}

// GetUser returns the Session Record from the request context, nil for an empty slot
func GetUser(ctx context.Context) *model.User {
	user, _ := ctx.Value(userContextKey).(*model.User)
	return user
}

// GetSessionKey returns the caller's session slot
func GetSessionKey(ctx context.Context) model.SessionKey {
	key, _ := ctx.Value(sessionKeyContextKey).(model.SessionKey)
	return key
}
