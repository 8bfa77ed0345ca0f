package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/petrolog/petrolog-be/internal/models"
)

type contextKey string

const userContextKey = contextKey("authUser")

// UserDirectory resolves a token subject to an active user account.
type UserDirectory interface {
	GetActiveUserByID(ctx context.Context, id string) (models.User, error)
}

// Middleware creates a middleware for protecting routes. It extracts the
// bearer token, verifies it, loads the user behind the subject claim and
// attaches it to the request context. A missing token, a bad token, an
// unknown subject and a deactivated account all produce the same 401 so the
// response does not reveal which check failed.
func Middleware(tokens *TokenManager, users UserDirectory) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := bearerToken(r)
			if tokenStr == "" {
				unauthorized(w)
				return
			}

			claims, err := tokens.Verify(tokenStr)
			if err != nil {
				unauthorized(w)
				return
			}

			user, err := users.GetActiveUserByID(r.Context(), claims.Subject)
			if err != nil {
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext returns the authenticated user attached by Middleware.
func UserFromContext(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(userContextKey).(models.User)
	return user, ok
}

func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"detail":"Invalid or expired token"}`))
}
