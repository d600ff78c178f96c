package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/cinephile-dev/cinephile/internal/auth"
	"github.com/cinephile-dev/cinephile/internal/domain/model"
	"github.com/cinephile-dev/cinephile/internal/domain/repository"
)

// UserLoader resolves a token subject to a user record.
type UserLoader interface {
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

// Authenticator enforces "Authorization: Bearer <token>" on protected
// routes, resolves the token subject to a user, and stores the user in
// the request context. Token problems are reported as a generic 403 so
// callers cannot distinguish which validation failed.
func Authenticator(tokens *auth.TokenManager, users UserLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				authError(w, http.StatusForbidden, "Not authenticated")
				return
			}

			subject, err := tokens.Validate(token)
			if err != nil {
				authError(w, http.StatusForbidden, "Could not validate credentials")
				return
			}

			user, err := users.GetByEmail(r.Context(), subject)
			if err != nil {
				if errors.Is(err, repository.ErrUserNotFound) {
					authError(w, http.StatusNotFound, "User not found")
					return
				}
				authError(w, http.StatusInternalServerError, "An unexpected error occurred")
				return
			}

			if user.Disabled {
				authError(w, http.StatusBadRequest, "Inactive user")
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUser retrieves the authenticated user placed in the context by
// Authenticator. Nil on unauthenticated routes.
func GetUser(ctx context.Context) *model.User {
	if user, ok := ctx.Value(userKey).(*model.User); ok {
		return user
	}
	return nil
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	return header[len(prefix):], true
}

func authError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": "auth_error", "message": message})
}
