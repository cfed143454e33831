package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/kelydev/apiPacientes/models"
	"github.com/kelydev/apiPacientes/repository"
	"github.com/kelydev/apiPacientes/utils"
)

const emailTakenMessage = "The email has already been taken."

// CreateUsuarioHandler handles public registration of a new user record.
func CreateUsuarioHandler(users UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.CreateUsuarioRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		// Every failing field is reported, not just the first.
		verrs := utils.ValidateStruct(req)
		if req.Email != "" {
			inUse, err := users.EmailInUse(r.Context(), req.Email, 0)
			if err != nil {
				log.Printf("Error checking email uniqueness: %v", err)
				utils.RespondError(w, http.StatusInternalServerError, "Internal server error")
				return
			}
			if inUse {
				if verrs == nil {
					verrs = map[string][]string{}
				}
				verrs["email"] = append(verrs["email"], emailTakenMessage)
			}
		}
		if verrs != nil {
			utils.RespondValidationErrors(w, verrs)
			return
		}

		fecha, err := models.ParseDate(req.FechaNacimiento)
		if err != nil {
			utils.RespondValidationErrors(w, map[string][]string{
				"fecha_nacimiento": {"The fecha_nacimiento is not a valid date."},
			})
			return
		}

		// Hashing is an explicit step here, never an implicit store-side
		// transform.
		hashed, err := utils.HashPassword(req.Password)
		if err != nil {
			log.Printf("Error hashing password: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		user := models.Usuario{
			Name:               req.Name,
			Email:              req.Email,
			Password:           hashed,
			FechaNacimiento:    fecha,
			Sexo:               req.Sexo,
			NumeroSeguro:       req.NumeroSeguro,
			HistorialMedico:    req.HistorialMedico,
			ContactoEmergencia: req.ContactoEmergencia,
		}

		if err := users.Create(r.Context(), &user); err != nil {
			if errors.Is(err, repository.ErrEmailTaken) {
				// Uniqueness race: the pre-check passed but the insert hit
				// the constraint. A client conflict, not a system fault.
				utils.RespondError(w, http.StatusConflict, "Email already registered")
				return
			}
			log.Printf("Error creating user: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		utils.RespondSuccess(w, http.StatusCreated, "User created successfully", user)
	}
}

// GetUsuariosHandler returns every user record.
func GetUsuariosHandler(users UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		usuarios, err := users.List(r.Context())
		if err != nil {
			log.Printf("Error listing users: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		utils.RespondSuccess(w, http.StatusOK, "", usuarios)
	}
}

// GetUsuarioHandler returns a single user by id.
func GetUsuarioHandler(users UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(w, r)
		if !ok {
			return
		}

		user, err := users.GetByID(r.Context(), id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				utils.RespondError(w, http.StatusNotFound, "User not found")
				return
			}
			log.Printf("Error getting user %d: %v", id, err)
			utils.RespondError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		utils.RespondSuccess(w, http.StatusOK, "", user)
	}
}

// UpdateUsuarioHandler applies a partial update: only supplied, non-empty
// fields change; everything else keeps its stored value. A field sent as
// an explicit empty string or null is dropped the same as an absent one,
// so this endpoint cannot clear a field.
func UpdateUsuarioHandler(users UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(w, r)
		if !ok {
			return
		}

		existing, err := users.GetByID(r.Context(), id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				utils.RespondError(w, http.StatusNotFound, "User not found")
				return
			}
			log.Printf("Error getting user %d for update: %v", id, err)
			utils.RespondError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		var req models.UpdateUsuarioRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		verrs := utils.ValidateStruct(req)
		if req.Email != nil && *req.Email != "" && *req.Email != existing.Email {
			// Uniqueness check excludes the record's own row.
			inUse, err := users.EmailInUse(r.Context(), *req.Email, id)
			if err != nil {
				log.Printf("Error checking email uniqueness: %v", err)
				utils.RespondError(w, http.StatusInternalServerError, "Internal server error")
				return
			}
			if inUse {
				if verrs == nil {
					verrs = map[string][]string{}
				}
				verrs["email"] = append(verrs["email"], emailTakenMessage)
			}
		}
		if verrs != nil {
			utils.RespondValidationErrors(w, verrs)
			return
		}

		if err := applyUpdates(existing, &req); err != nil {
			log.Printf("Error applying update to user %d: %v", id, err)
			utils.RespondError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		if err := users.Update(r.Context(), existing); err != nil {
			switch {
			case errors.Is(err, repository.ErrNotFound):
				utils.RespondError(w, http.StatusNotFound, "User not found")
			case errors.Is(err, repository.ErrEmailTaken):
				utils.RespondError(w, http.StatusConflict, "Email already registered")
			default:
				log.Printf("Error updating user %d: %v", id, err)
				utils.RespondError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		utils.RespondSuccess(w, http.StatusOK, "User updated successfully", existing)
	}
}

// DeleteUsuarioHandler hard-deletes a user record.
func DeleteUsuarioHandler(users UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(w, r)
		if !ok {
			return
		}

		if err := users.Delete(r.Context(), id); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				utils.RespondError(w, http.StatusNotFound, "User not found")
				return
			}
			log.Printf("Error deleting user %d: %v", id, err)
			utils.RespondError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		utils.RespondSuccess(w, http.StatusOK, "User deleted successfully", nil)
	}
}

// applyUpdates copies the supplied, non-empty request fields onto the
// stored record. Password is re-hashed here.
func applyUpdates(u *models.Usuario, req *models.UpdateUsuarioRequest) error {
	if req.Name != nil && *req.Name != "" {
		u.Name = *req.Name
	}
	if req.Email != nil && *req.Email != "" {
		u.Email = *req.Email
	}
	if req.Password != nil && *req.Password != "" {
		hashed, err := utils.HashPassword(*req.Password)
		if err != nil {
			return err
		}
		u.Password = hashed
	}
	if req.FechaNacimiento != nil && *req.FechaNacimiento != "" {
		fecha, err := models.ParseDate(*req.FechaNacimiento)
		if err != nil {
			return err
		}
		u.FechaNacimiento = fecha
	}
	if req.Sexo != nil && *req.Sexo != "" {
		u.Sexo = *req.Sexo
	}
	if req.NumeroSeguro != nil && *req.NumeroSeguro != "" {
		u.NumeroSeguro = *req.NumeroSeguro
	}
	if req.HistorialMedico != nil && *req.HistorialMedico != "" {
		u.HistorialMedico = req.HistorialMedico
	}
	if req.ContactoEmergencia != nil && *req.ContactoEmergencia != "" {
		u.ContactoEmergencia = *req.ContactoEmergencia
	}
	return nil
}

func parseIDParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	idStr := mux.Vars(r)["id"]
	id, err := strconv.Atoi(idStr)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid user ID")
		return 0, false
	}
	return id, true
}
