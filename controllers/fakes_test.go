package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/kelydev/apiPacientes/middleware"
	"github.com/kelydev/apiPacientes/models"
	"github.com/kelydev/apiPacientes/repository"
)

// In-memory stand-ins for the PostgreSQL stores so the handlers can be
// exercised without a database.

type fakeUserStore struct {
	nextID int
	users  map[int]models.Usuario
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int]models.Usuario)}
}

func (s *fakeUserStore) Create(_ context.Context, u *models.Usuario) error {
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return repository.ErrEmailTaken
		}
	}
	s.nextID++
	u.ID = s.nextID
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	s.users[u.ID] = *u
	return nil
}

func (s *fakeUserStore) GetByID(_ context.Context, id int) (*models.Usuario, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := u
	return &out, nil
}

func (s *fakeUserStore) GetByEmail(_ context.Context, email string) (*models.Usuario, error) {
	for _, u := range s.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, nil
}

func (s *fakeUserStore) List(_ context.Context) ([]models.Usuario, error) {
	out := []models.Usuario{}
	for id := 1; id <= s.nextID; id++ {
		if u, ok := s.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *fakeUserStore) Update(_ context.Context, u *models.Usuario) error {
	if _, ok := s.users[u.ID]; !ok {
		return repository.ErrNotFound
	}
	for id, existing := range s.users {
		if id != u.ID && existing.Email == u.Email {
			return repository.ErrEmailTaken
		}
	}
	u.UpdatedAt = time.Now()
	s.users[u.ID] = *u
	return nil
}

func (s *fakeUserStore) Delete(_ context.Context, id int) error {
	if _, ok := s.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.users, id)
	return nil
}

func (s *fakeUserStore) EmailInUse(_ context.Context, email string, excludeID int) (bool, error) {
	for id, u := range s.users {
		if id != excludeID && u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

type fakeTokenStore struct {
	tokens map[string]models.AuthToken
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: make(map[string]models.AuthToken)}
}

func (s *fakeTokenStore) Replace(_ context.Context, userID int, value string) (*models.AuthToken, error) {
	for v, t := range s.tokens {
		if t.UserID == userID {
			delete(s.tokens, v)
		}
	}
	token := models.AuthToken{Token: value, UserID: userID, CreatedAt: time.Now()}
	s.tokens[value] = token
	return &token, nil
}

func (s *fakeTokenStore) Lookup(_ context.Context, value string) (*models.AuthToken, error) {
	t, ok := s.tokens[value]
	if !ok {
		return nil, repository.ErrTokenNotFound
	}
	out := t
	return &out, nil
}

func (s *fakeTokenStore) Delete(_ context.Context, value string) error {
	if _, ok := s.tokens[value]; !ok {
		return repository.ErrTokenNotFound
	}
	delete(s.tokens, value)
	return nil
}

func (s *fakeTokenStore) countForUser(userID int) int {
	n := 0
	for _, t := range s.tokens {
		if t.UserID == userID {
			n++
		}
	}
	return n
}

// newTestRouter mirrors the production route table over the fakes.
func newTestRouter(users *fakeUserStore, tokens *fakeTokenStore) http.Handler {
	r := mux.NewRouter()
	api := r.PathPrefix("/v1").Subrouter()

	api.HandleFunc("/users", CreateUsuarioHandler(users)).Methods("POST")
	api.HandleFunc("/login", LoginHandler(users, tokens)).Methods("POST")

	authRouter := api.PathPrefix("").Subrouter()
	authRouter.Use(middleware.TokenAuth(users, tokens))
	authRouter.HandleFunc("/users", GetUsuariosHandler(users)).Methods("GET")
	authRouter.HandleFunc("/users/{id}", GetUsuarioHandler(users)).Methods("GET")
	authRouter.HandleFunc("/users/{id}", UpdateUsuarioHandler(users)).Methods("PUT", "PATCH")
	authRouter.HandleFunc("/users/{id}", DeleteUsuarioHandler(users)).Methods("DELETE")
	authRouter.HandleFunc("/logout", LogoutHandler(tokens)).Methods("POST")

	return r
}
