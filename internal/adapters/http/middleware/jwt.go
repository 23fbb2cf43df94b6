package middleware

import (
	"context"
	"net/http"
	"strings"

	"keepup/internal/config"
	"keepup/internal/core/auth"
	"keepup/internal/domain"
)

type contextKey string

const userContextKey contextKey = "auth_user"

// JWT rejects requests without a verifiable bearer token before they reach
// any handler, and stores the recovered identity in the request context.
func JWT(cfg *config.Config) Middleware {
	secret := []byte(cfg.JWTSecret)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				http.Error(w, "missing authorization header", http.StatusUnauthorized)
				return
			}

			tokenString, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || tokenString == "" {
				http.Error(w, "invalid authorization header", http.StatusUnauthorized)
				return
			}

			user, err := auth.ParseToken(tokenString, secret)
			if err != nil {
				http.Error(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUser returns the authenticated identity placed by the JWT middleware.
func GetUser(ctx context.Context) (*domain.AuthUser, bool) {
	user, ok := ctx.Value(userContextKey).(*domain.AuthUser)
	return user, ok
}

// WithUser is used by tests to inject an identity without a token round trip.
func WithUser(ctx context.Context, user *domain.AuthUser) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}
