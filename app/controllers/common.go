package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"journal/app/auth"
	"journal/app/repositories"

	"github.com/go-playground/validator/v10"
)

// sendJSON writes data as a JSON response
func sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// sendError writes an error message as a JSON response
func sendError(w http.ResponseWriter, message string, status int) {
	sendJSON(w, status, map[string]string{"error": message})
}

// sendTypedError recovers the error taxonomy into user-facing responses:
// NotFound and Conflict become form-style messages, Forbidden maps to 403,
// anything else is a generic storage failure.
func sendTypedError(w http.ResponseWriter, err error, conflictMsg string) {
	var validationErrs validator.ValidationErrors
	switch {
	case errors.As(err, &validationErrs):
		sendError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, repositories.ErrNotFound):
		sendError(w, "Not found", http.StatusNotFound)
	case errors.Is(err, repositories.ErrConflict):
		sendError(w, conflictMsg, http.StatusConflict)
	case errors.Is(err, auth.ErrForbidden):
		sendError(w, "Forbidden", http.StatusForbidden)
	default:
		sendError(w, "error!", http.StatusInternalServerError)
	}
}
