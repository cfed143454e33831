package models

import "time"

// Usuario represents a patient record in the application database.
type Usuario struct {
	ID                 int       `json:"id" db:"id"`
	Name               string    `json:"name" db:"name"`
	Email              string    `json:"email" db:"email"`
	Password           string    `json:"-" db:"password"` // Exclude password hash from JSON responses
	FechaNacimiento    Date      `json:"fecha_nacimiento" db:"fecha_nacimiento"`
	Sexo               string    `json:"sexo" db:"sexo"`
	NumeroSeguro       string    `json:"numero_seguro" db:"numero_seguro"`
	HistorialMedico    *string   `json:"historial_medico" db:"historial_medico"` // Optional free text
	ContactoEmergencia string    `json:"contacto_emergencia" db:"contacto_emergencia"`
	CreatedAt          time.Time `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time `json:"updated_at" db:"updated_at"`
}

// Valid values for the sexo field.
const (
	SexoMasculino = "Masculino"
	SexoFemenino  = "Femenino"
	SexoOtro      = "Otro"
)

// CreateUsuarioRequest is the registration payload. The validate tags are
// the single source of field rules for the create path.
type CreateUsuarioRequest struct {
	Name               string  `json:"name" validate:"required,max=255"`
	Email              string  `json:"email" validate:"required,email,max=255"`
	Password           string  `json:"password" validate:"required,min=8"`
	FechaNacimiento    string  `json:"fecha_nacimiento" validate:"required,datetime=2006-01-02"`
	Sexo               string  `json:"sexo" validate:"required,oneof=Masculino Femenino Otro"`
	NumeroSeguro       string  `json:"numero_seguro" validate:"required,max=50"`
	HistorialMedico    *string `json:"historial_medico"`
	ContactoEmergencia string  `json:"contacto_emergencia" validate:"required,max=20"`
}

// UpdateUsuarioRequest is the partial-update payload. Every field is
// optional; nil means "not supplied". A field supplied as an empty string
// is treated the same as absent and dropped, so this path cannot clear a
// stored value.
type UpdateUsuarioRequest struct {
	Name               *string `json:"name" validate:"omitempty,max=255"`
	Email              *string `json:"email" validate:"omitempty,email,max=255"`
	Password           *string `json:"password" validate:"omitempty,min=8"`
	FechaNacimiento    *string `json:"fecha_nacimiento" validate:"omitempty,datetime=2006-01-02"`
	Sexo               *string `json:"sexo" validate:"omitempty,oneof=Masculino Femenino Otro"`
	NumeroSeguro       *string `json:"numero_seguro" validate:"omitempty,max=50"`
	HistorialMedico    *string `json:"historial_medico"`
	ContactoEmergencia *string `json:"contacto_emergencia" validate:"omitempty,max=20"`
}

// Credentials represents the data needed for login.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
