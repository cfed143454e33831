package routes

import (
	"database/sql"

	"github.com/gorilla/mux"
	"github.com/kelydev/apiPacientes/controllers"
	"github.com/kelydev/apiPacientes/middleware"
	"github.com/kelydev/apiPacientes/repository"
)

// SetupRoutes configures the application routes under the /v1 prefix.
func SetupRoutes(db *sql.DB) *mux.Router {
	users := repository.NewUsuarioRepo(db)
	tokens := repository.NewTokenRepo(db)

	r := mux.NewRouter()
	r.Use(middleware.RequestLogger)

	api := r.PathPrefix("/v1").Subrouter()

	// --- Public Routes (No Token Required) ---
	api.HandleFunc("/users", controllers.CreateUsuarioHandler(users)).Methods("POST") // registration
	api.HandleFunc("/login", controllers.LoginHandler(users, tokens)).Methods("POST")

	// --- Protected Routes (Bearer Token Required) ---
	authRouter := api.PathPrefix("").Subrouter()
	authRouter.Use(middleware.TokenAuth(users, tokens))

	authRouter.HandleFunc("/users", controllers.GetUsuariosHandler(users)).Methods("GET")
	authRouter.HandleFunc("/users/{id}", controllers.GetUsuarioHandler(users)).Methods("GET")
	authRouter.HandleFunc("/users/{id}", controllers.UpdateUsuarioHandler(users)).Methods("PUT", "PATCH")
	authRouter.HandleFunc("/users/{id}", controllers.DeleteUsuarioHandler(users)).Methods("DELETE")
	authRouter.HandleFunc("/logout", controllers.LogoutHandler(tokens)).Methods("POST")

	return r
}
