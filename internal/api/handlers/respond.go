package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/petrolog/petrolog-be/internal/services"
	"github.com/rs/zerolog/log"
)

// respondJSON writes v as the JSON response body with the given status.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response body")
	}
}

// respondError writes the uniform {"detail": ...} error body.
func respondError(w http.ResponseWriter, status int, detail string) {
	respondJSON(w, status, map[string]string{"detail": detail})
}

// respondServiceError maps a service error to an HTTP response. Validation
// problems name the offending field; anything unexpected is logged with full
// context and surfaced as a generic 500.
func respondServiceError(w http.ResponseWriter, err error, generic string) {
	var ve *services.ValidationError
	if errors.As(err, &ve) {
		respondError(w, http.StatusBadRequest, ve.Error())
		return
	}
	log.Error().Err(err).Msg(generic)
	respondError(w, http.StatusInternalServerError, generic)
}
