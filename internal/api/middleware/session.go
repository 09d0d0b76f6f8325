package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/example/pharmacare-storefront/internal/session"
)

// respondError writes a JSON error response
func respondError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

type contextKey string

const (
	SessionContextKey contextKey = "session"
)

// SessionReader resolves the signed-in session of this device.
type SessionReader interface {
	Current(ctx context.Context) (session.Session, error)
}

// RequireSession rejects requests made while signed out and adds the
// session to the request context.
func RequireSession(sessions SessionReader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, err := sessions.Current(r.Context())
			if err != nil {
				switch {
				case errors.Is(err, session.ErrExpiredToken):
					respondError(w, "session expired", http.StatusUnauthorized)
				case errors.Is(err, session.ErrNotAuthenticated), errors.Is(err, session.ErrInvalidToken):
					respondError(w, "unauthorized", http.StatusUnauthorized)
				default:
					respondError(w, "session unavailable", http.StatusInternalServerError)
				}
				return
			}

			ctx := context.WithValue(r.Context(), SessionContextKey, s)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSession retrieves the session stored by RequireSession
func GetSession(ctx context.Context) (session.Session, bool) {
	s, ok := ctx.Value(SessionContextKey).(session.Session)
	return s, ok
}

// GetUserID is a helper to get just the user ID from context
func GetUserID(ctx context.Context) string {
	s, ok := GetSession(ctx)
	if !ok {
		return ""
	}
	return s.User.ID
}
