package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/edenniyi/shopstack-be/internal/models"
)

// respondJSON writes a JSON body with the given status code.
func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("Failed to encode response body")
	}
}

// respondMessage writes the standard {"message": ...} error body.
func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}

// respondServiceError classifies a service error and writes the matching
// status and message. Unclassified errors are logged and returned as a
// generic 500 so internal detail never reaches the client.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrEmailTaken):
		respondMessage(w, http.StatusBadRequest, "User with that email already exists")
	case errors.Is(err, models.ErrInvalidCredentials):
		respondMessage(w, http.StatusBadRequest, "Invalid email or password")
	case errors.Is(err, models.ErrUserNotFound):
		respondMessage(w, http.StatusNotFound, "User not found")
	case errors.Is(err, models.ErrProductNotFound):
		respondMessage(w, http.StatusNotFound, "Product not found")
	case errors.Is(err, models.ErrForbidden):
		respondMessage(w, http.StatusForbidden, "Forbidden")
	default:
		log.Error().Err(err).Msg("Unhandled service error")
		respondMessage(w, http.StatusInternalServerError, "Internal Server Error")
	}
}

// decodeJSON decodes a request body into dst. Mistyped fields (a string
// where a number is expected) surface here as decode errors.
func decodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}
