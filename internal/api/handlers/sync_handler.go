package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/petrolog/petrolog-be/internal/models"
	"github.com/petrolog/petrolog-be/internal/services"
	"github.com/rs/zerolog/log"
)

// SyncHandler handles full-state backup upload, download and export.
type SyncHandler struct {
	sync services.SyncServiceProvider
}

// NewSyncHandler creates a new SyncHandler.
func NewSyncHandler(sync services.SyncServiceProvider) *SyncHandler {
	return &SyncHandler{sync: sync}
}

// Upload handles POST /sync/upload. The payload replaces the stored document
// wholesale; the last writer wins.
func (h *SyncHandler) Upload(w http.ResponseWriter, r *http.Request) {
	user, ok := ownerFromContext(w, r)
	if !ok {
		return
	}

	var payload models.SyncData
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	lastSync, err := h.sync.Upload(r.Context(), user.ID, payload)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Sync upload error")
		respondError(w, http.StatusInternalServerError, "Sync failed")
		return
	}

	respondJSON(w, http.StatusOK, models.SyncResponse{
		Success:  true,
		Message:  "Data synced successfully",
		LastSync: lastSync,
	})
}

// Download handles GET /sync/download. Absence of a stored document is a
// valid state, answered with an empty default, never an error.
func (h *SyncHandler) Download(w http.ResponseWriter, r *http.Request) {
	user, ok := ownerFromContext(w, r)
	if !ok {
		return
	}

	data, lastSync, found, err := h.sync.Download(r.Context(), user.ID)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Sync download error")
		respondError(w, http.StatusInternalServerError, "Download failed")
		return
	}

	message := "Data retrieved successfully"
	if !found {
		message = "No cloud data found"
	}

	respondJSON(w, http.StatusOK, models.SyncResponse{
		Success:  true,
		Message:  message,
		Data:     &data,
		LastSync: lastSync,
	})
}

// Backup handles POST /sync/backup, exporting the account plus every record
// collection in one document.
func (h *SyncHandler) Backup(w http.ResponseWriter, r *http.Request) {
	user, ok := ownerFromContext(w, r)
	if !ok {
		return
	}

	backup, err := h.sync.Backup(r.Context(), user)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Backup export error")
		respondError(w, http.StatusInternalServerError, "Backup failed")
		return
	}

	respondJSON(w, http.StatusOK, backup)
}
