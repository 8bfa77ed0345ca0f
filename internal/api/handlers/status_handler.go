package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/petrolog/petrolog-be/internal/services"
)

// StatusHandler handles the unauthenticated root ping and status checks.
type StatusHandler struct {
	statuses services.StatusServiceProvider
}

// NewStatusHandler creates a new StatusHandler.
func NewStatusHandler(statuses services.StatusServiceProvider) *StatusHandler {
	return &StatusHandler{statuses: statuses}
}

// Root handles GET /.
func (h *StatusHandler) Root(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"message": "Hello World"})
}

// StatusCheckPayload defines the structure for status check requests.
type StatusCheckPayload struct {
	ClientName string `json:"client_name"`
}

// Create handles POST /status.
func (h *StatusHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload StatusCheckPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	check, err := h.statuses.CreateStatusCheck(r.Context(), payload.ClientName)
	if err != nil {
		respondServiceError(w, err, "Failed to create status check")
		return
	}
	respondJSON(w, http.StatusOK, check)
}

// GetAll handles GET /status.
func (h *StatusHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	checks, err := h.statuses.GetStatusChecks(r.Context())
	if err != nil {
		respondServiceError(w, err, "Failed to fetch status checks")
		return
	}
	respondJSON(w, http.StatusOK, checks)
}
