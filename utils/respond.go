package utils

import (
	"encoding/json"
	"net/http"

	"github.com/kelydev/apiPacientes/models"
)

// RespondJSON writes any payload with the given status code.
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// RespondSuccess writes a success envelope. Message and data may be empty.
func RespondSuccess(w http.ResponseWriter, status int, message string, data interface{}) {
	RespondJSON(w, status, models.APIResponse{
		Status:  "success",
		Message: message,
		Data:    data,
	})
}

// RespondError writes an error envelope with just a message.
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, models.APIResponse{
		Status:  "error",
		Message: message,
	})
}

// RespondValidationErrors writes a 422 envelope carrying the field error map.
func RespondValidationErrors(w http.ResponseWriter, errors map[string][]string) {
	RespondJSON(w, http.StatusUnprocessableEntity, models.APIResponse{
		Status:  "error",
		Message: "Validation failed",
		Errors:  errors,
	})
}
