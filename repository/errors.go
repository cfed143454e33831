package repository

import "errors"

// Sentinel errors surfaced by the stores. Handlers translate these into
// HTTP statuses; anything else is an internal error.
var (
	ErrNotFound      = errors.New("record not found")
	ErrEmailTaken    = errors.New("email already registered")
	ErrTokenNotFound = errors.New("token not found")
)
