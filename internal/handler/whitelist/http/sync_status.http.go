package http

import (
	"encoding/json"
	"net/http"

	"github.com/krobus00/pairsync-service/internal/repository"
	"github.com/krobus00/pairsync-service/internal/service/whitelist"
)

const defaultRunHistoryLimit = 20

type Handler struct {
	syncService *whitelist.SyncService
	syncRunRepo *repository.SyncRunRepository
}

// NewSyncStatusHTTPHandler serves the worker's observability endpoints.
// syncRunRepo may be nil when the audit database is not configured.
func NewSyncStatusHTTPHandler(syncService *whitelist.SyncService, syncRunRepo *repository.SyncRunRepository) *Handler {
	return &Handler{syncService: syncService, syncRunRepo: syncRunRepo}
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/whitelist/v1/status", h.Status)
	mux.HandleFunc("/whitelist/v1/runs", h.Runs)
}

// Status serves the outcome of the most recent reconciliation cycle.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"error": "method not allowed"})
		return
	}

	report, ok := h.syncService.LastReport()
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "no sync cycle completed yet"})
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// Runs serves the most recent entries of the sync audit trail.
func (h *Handler) Runs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"error": "method not allowed"})
		return
	}

	if h.syncRunRepo == nil {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "sync audit trail not configured"})
		return
	}

	syncRuns, err := h.syncRunRepo.GetLatest(r.Context(), defaultRunHistoryLimit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "failed to load sync runs"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"runs": syncRuns})
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}
