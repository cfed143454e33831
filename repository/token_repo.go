package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kelydev/apiPacientes/models"
)

// TokenRepo is the PostgreSQL-backed token store.
type TokenRepo struct {
	db *sql.DB
}

// NewTokenRepo creates a token store on top of an open connection pool.
func NewTokenRepo(db *sql.DB) *TokenRepo {
	return &TokenRepo{db: db}
}

// Replace deletes every token owned by userID and inserts value as the
// user's single active token, all in one transaction. Concurrent logins
// for the same account therefore never leave zero or two active tokens.
// The delete is a no-op when the user had no token.
func (r *TokenRepo) Replace(ctx context.Context, userID int, value string) (*models.AuthToken, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("error starting token transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM auth_tokens WHERE user_id = $1`, userID); err != nil {
		return nil, fmt.Errorf("error deleting previous tokens: %w", err)
	}

	token := models.AuthToken{Token: value, UserID: userID}
	err = tx.QueryRowContext(ctx,
		`INSERT INTO auth_tokens (token, user_id) VALUES ($1, $2) RETURNING created_at`,
		value, userID,
	).Scan(&token.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("error inserting token: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("error committing token transaction: %w", err)
	}
	return &token, nil
}

// Lookup fetches a token by its exact value. Returns ErrTokenNotFound for
// revoked or never-issued tokens; there is no expiry, a stored token is a
// valid token.
func (r *TokenRepo) Lookup(ctx context.Context, value string) (*models.AuthToken, error) {
	var token models.AuthToken
	err := r.db.QueryRowContext(ctx,
		`SELECT token, user_id, created_at FROM auth_tokens WHERE token = $1`,
		value,
	).Scan(&token.Token, &token.UserID, &token.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTokenNotFound
		}
		return nil, fmt.Errorf("error looking up token: %w", err)
	}
	return &token, nil
}

// Delete revokes exactly one token. Returns ErrTokenNotFound when the
// token was already gone, so a double logout stays a clean 401 rather
// than a crash.
func (r *TokenRepo) Delete(ctx context.Context, value string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM auth_tokens WHERE token = $1`, value)
	if err != nil {
		return fmt.Errorf("error deleting token: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking deleted tokens: %w", err)
	}
	if affected == 0 {
		return ErrTokenNotFound
	}
	return nil
}
