package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/kelydev/apiPacientes/middleware"
	"github.com/kelydev/apiPacientes/models"
	"github.com/kelydev/apiPacientes/repository"
	"github.com/kelydev/apiPacientes/utils"
)

// invalidCredentialsMessage is shared by the unknown-email and
// wrong-password paths so a caller cannot tell which one failed.
const invalidCredentialsMessage = "Credenciales inválidas. Verifique su email y contraseña."

// LoginHandler verifies credentials and issues a fresh bearer token,
// invalidating any token the user already had ("last login wins").
func LoginHandler(users UserStore, tokens TokenStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var creds models.Credentials
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if verrs := utils.ValidateStruct(creds); verrs != nil {
			utils.RespondValidationErrors(w, verrs)
			return
		}

		user, err := users.GetByEmail(r.Context(), creds.Email)
		if err != nil {
			log.Printf("Error fetching user for login: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		if user == nil || !utils.CheckPasswordHash(creds.Password, user.Password) {
			utils.RespondError(w, http.StatusUnauthorized, invalidCredentialsMessage)
			return
		}

		value, err := utils.GenerateToken()
		if err != nil {
			log.Printf("Error generating token: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		// Single transaction: drops every previous token for this user
		// and stores the new one.
		token, err := tokens.Replace(r.Context(), user.ID, value)
		if err != nil {
			log.Printf("Error replacing tokens for user %d: %v", user.ID, err)
			utils.RespondError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		utils.RespondJSON(w, http.StatusOK, models.LoginResponse{
			Status:      "success",
			Message:     "Inicio de sesión exitoso.",
			AccessToken: token.Token,
			TokenType:   "Bearer",
			User:        user,
		})
	}
}

// LogoutHandler revokes exactly the token that authenticated the current
// request. The token value flows in from the auth middleware through the
// request context.
func LogoutHandler(tokens TokenStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		value, ok := middleware.TokenFromContext(r.Context())
		if !ok {
			utils.RespondError(w, http.StatusUnauthorized, "No autenticado.")
			return
		}

		if err := tokens.Delete(r.Context(), value); err != nil {
			if errors.Is(err, repository.ErrTokenNotFound) {
				// Already revoked (double logout): not an error worth a
				// 500, the caller simply is not authenticated anymore.
				utils.RespondError(w, http.StatusUnauthorized, "No autenticado.")
				return
			}
			log.Printf("Error deleting token: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		utils.RespondSuccess(w, http.StatusOK, "Sesión cerrada correctamente.", nil)
	}
}
