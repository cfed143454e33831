package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kelydev/apiPacientes/models"
	"github.com/lib/pq"
)

const usuarioColumns = `id, name, email, password, fecha_nacimiento, sexo, numero_seguro, historial_medico, contacto_emergencia, created_at, updated_at`

// UsuarioRepo is the PostgreSQL-backed user store.
type UsuarioRepo struct {
	db *sql.DB
}

// NewUsuarioRepo creates a user store on top of an open connection pool.
func NewUsuarioRepo(db *sql.DB) *UsuarioRepo {
	return &UsuarioRepo{db: db}
}

func scanUsuario(row interface{ Scan(...interface{}) error }, u *models.Usuario) error {
	return row.Scan(
		&u.ID, &u.Name, &u.Email, &u.Password,
		&u.FechaNacimiento, &u.Sexo, &u.NumeroSeguro,
		&u.HistorialMedico, &u.ContactoEmergencia,
		&u.CreatedAt, &u.UpdatedAt,
	)
}

// Create inserts a new user. The password on u must already be hashed by
// the caller. A unique-constraint violation on email is reported as
// ErrEmailTaken so the handler can answer with a conflict instead of a
// generic internal error.
func (r *UsuarioRepo) Create(ctx context.Context, u *models.Usuario) error {
	query := `INSERT INTO users (name, email, password, fecha_nacimiento, sexo, numero_seguro, historial_medico, contacto_emergencia)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query,
		u.Name, u.Email, u.Password, u.FechaNacimiento,
		u.Sexo, u.NumeroSeguro, u.HistorialMedico, u.ContactoEmergencia,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrEmailTaken
		}
		return fmt.Errorf("error inserting user: %w", err)
	}
	return nil
}

// GetByID retrieves a single user. Returns ErrNotFound when no row matches.
func (r *UsuarioRepo) GetByID(ctx context.Context, id int) (*models.Usuario, error) {
	var u models.Usuario
	query := `SELECT ` + usuarioColumns + ` FROM users WHERE id = $1`
	err := scanUsuario(r.db.QueryRowContext(ctx, query, id), &u)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error getting user by ID: %w", err)
	}
	return &u, nil
}

// GetByEmail retrieves a user by exact email match, including the stored
// password hash for credential checks. Returns nil, nil when not found so
// the login path can treat a miss and a bad password identically.
func (r *UsuarioRepo) GetByEmail(ctx context.Context, email string) (*models.Usuario, error) {
	var u models.Usuario
	query := `SELECT ` + usuarioColumns + ` FROM users WHERE email = $1`
	err := scanUsuario(r.db.QueryRowContext(ctx, query, email), &u)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error getting user by email: %w", err)
	}
	return &u, nil
}

// List retrieves every user record. No pagination: the dataset is expected
// to stay small, and callers get everything in one pass.
func (r *UsuarioRepo) List(ctx context.Context) ([]models.Usuario, error) {
	query := `SELECT ` + usuarioColumns + ` FROM users ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying users: %w", err)
	}
	defer rows.Close()

	usuarios := []models.Usuario{}
	for rows.Next() {
		var u models.Usuario
		if err := scanUsuario(rows, &u); err != nil {
			return nil, fmt.Errorf("error scanning user row: %w", err)
		}
		usuarios = append(usuarios, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating through user rows: %w", err)
	}
	return usuarios, nil
}

// Update persists the full record u (the handler has already merged the
// supplied fields over the stored ones). Returns ErrNotFound when the id
// no longer exists and ErrEmailTaken on a uniqueness race.
func (r *UsuarioRepo) Update(ctx context.Context, u *models.Usuario) error {
	query := `UPDATE users
		SET name = $1, email = $2, password = $3, fecha_nacimiento = $4, sexo = $5,
			numero_seguro = $6, historial_medico = $7, contacto_emergencia = $8,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $9
		RETURNING updated_at`
	err := r.db.QueryRowContext(ctx, query,
		u.Name, u.Email, u.Password, u.FechaNacimiento, u.Sexo,
		u.NumeroSeguro, u.HistorialMedico, u.ContactoEmergencia, u.ID,
	).Scan(&u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if isUniqueViolation(err) {
			return ErrEmailTaken
		}
		return fmt.Errorf("error updating user: %w", err)
	}
	return nil
}

// Delete removes a user row for good. Active tokens go with it via the
// foreign key cascade. Returns ErrNotFound when nothing was deleted.
func (r *UsuarioRepo) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting user: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking deleted rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// EmailInUse reports whether email belongs to a record other than
// excludeID. Pass excludeID 0 on the create path.
func (r *UsuarioRepo) EmailInUse(ctx context.Context, email string, excludeID int) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1 AND id <> $2)`
	if err := r.db.QueryRowContext(ctx, query, email, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking email uniqueness: %w", err)
	}
	return exists, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation"
}
