package handler

import (
	"net/http"
	"strings"

	"codeviz/internal/gateway/service/telemetry"
)

type TraceHandler struct {
	store *telemetry.Store
}

func NewTraceHandler(store *telemetry.Store) *TraceHandler {
	return &TraceHandler{store: store}
}

// HandleRunLogs serves GET /debug/run-logs?run_id=...
func (h *TraceHandler) HandleRunLogs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	runID := strings.TrimSpace(r.URL.Query().Get("run_id"))
	if runID == "" {
		writeError(w, r, http.StatusBadRequest, "run_id is required")
		return
	}
	if h.store == nil {
		writeJSON(w, r, http.StatusOK, map[string]any{"run_id": runID, "events": []map[string]any{}})
		return
	}
	events, err := h.store.Read(runID)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{
		"run_id": runID,
		"events": events,
	})
}
