package controllers

import (
	"context"

	"github.com/kelydev/apiPacientes/models"
)

// UserStore is the persistence contract the user handlers depend on.
// Satisfied by repository.UsuarioRepo; tests swap in an in-memory stub.
type UserStore interface {
	Create(ctx context.Context, u *models.Usuario) error
	GetByID(ctx context.Context, id int) (*models.Usuario, error)
	GetByEmail(ctx context.Context, email string) (*models.Usuario, error)
	List(ctx context.Context) ([]models.Usuario, error)
	Update(ctx context.Context, u *models.Usuario) error
	Delete(ctx context.Context, id int) error
	EmailInUse(ctx context.Context, email string, excludeID int) (bool, error)
}

// TokenStore is the persistence contract for bearer tokens. Satisfied by
// repository.TokenRepo.
type TokenStore interface {
	Replace(ctx context.Context, userID int, value string) (*models.AuthToken, error)
	Lookup(ctx context.Context, value string) (*models.AuthToken, error)
	Delete(ctx context.Context, value string) error
}
