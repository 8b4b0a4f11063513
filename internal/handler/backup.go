package handler

import (
	"net/http"

	"github.com/lifetrackhq/lifetrack/internal/service"
)

type BackupHandler struct {
	backupService *service.BackupService
}

// NewBackupHandler accepts a nil service when cloud backup is not configured.
func NewBackupHandler(backupService *service.BackupService) *BackupHandler {
	return &BackupHandler{
		backupService: backupService,
	}
}

func (h *BackupHandler) Run(w http.ResponseWriter, r *http.Request) {
	if h.backupService == nil {
		writeError(w, http.StatusServiceUnavailable, "cloud backup is not configured")
		return
	}

	key, err := h.backupService.Run(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	url, err := h.backupService.DownloadURL(r.Context(), key)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"key": key,
		"url": url,
	})
}
