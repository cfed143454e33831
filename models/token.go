package models

import "time"

// AuthToken represents one active authenticated session. A user owns at
// most one row at a time; the replace transaction in the token repository
// enforces that, not the schema.
type AuthToken struct {
	Token     string    `json:"token" db:"token"`
	UserID    int       `json:"user_id" db:"user_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
