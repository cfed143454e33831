package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/kelydev/apiPacientes/models"
	"github.com/kelydev/apiPacientes/repository"
	"github.com/kelydev/apiPacientes/utils"
)

// Define a key type for context values to avoid collisions
type contextKey string

const (
	currentUserKey  contextKey = "currentUser"
	currentTokenKey contextKey = "currentToken"
)

// TokenStore is the slice of the token store this middleware needs.
type TokenStore interface {
	Lookup(ctx context.Context, value string) (*models.AuthToken, error)
}

// UserStore is the slice of the user store this middleware needs.
type UserStore interface {
	GetByID(ctx context.Context, id int) (*models.Usuario, error)
}

// TokenAuth gates protected routes behind a bearer token. The token is
// resolved against the token store (a stored token is a valid token, no
// expiry), the owning user is loaded, and both are placed in the request
// context for the handler to consume explicitly.
func TokenAuth(users UserStore, tokens TokenStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// 1. Get the token from the Authorization header
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.RespondError(w, http.StatusUnauthorized, "Authorization header required")
				return
			}

			// Check if the header is in the format "Bearer <token>"
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				utils.RespondError(w, http.StatusUnauthorized, "Authorization header format must be Bearer {token}")
				return
			}
			value := parts[1]

			// 2. Resolve the token against the store
			token, err := tokens.Lookup(r.Context(), value)
			if err != nil {
				if errors.Is(err, repository.ErrTokenNotFound) {
					utils.RespondError(w, http.StatusUnauthorized, "No autenticado.")
					return
				}
				log.Printf("Error looking up token: %v", err)
				utils.RespondError(w, http.StatusInternalServerError, "Internal server error")
				return
			}

			// 3. Load the owning user. The FK cascade removes tokens with
			// their user, so a miss here means the token just lost its
			// owner mid-request.
			user, err := users.GetByID(r.Context(), token.UserID)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					utils.RespondError(w, http.StatusUnauthorized, "No autenticado.")
					return
				}
				log.Printf("Error loading user %d for token: %v", token.UserID, err)
				utils.RespondError(w, http.StatusInternalServerError, "Internal server error")
				return
			}

			// 4. Hand the authenticated user and token to the handler
			ctx := context.WithValue(r.Context(), currentUserKey, user)
			ctx = context.WithValue(ctx, currentTokenKey, value)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext returns the authenticated user placed by TokenAuth.
func UserFromContext(ctx context.Context) (*models.Usuario, bool) {
	user, ok := ctx.Value(currentUserKey).(*models.Usuario)
	return user, ok
}

// TokenFromContext returns the bearer token value that authenticated the
// current request.
func TokenFromContext(ctx context.Context) (string, bool) {
	value, ok := ctx.Value(currentTokenKey).(string)
	return value, ok
}
