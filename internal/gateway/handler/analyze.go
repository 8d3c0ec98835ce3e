package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/google/uuid"

	"codeviz/internal/analyzer"
	"codeviz/internal/gateway/middleware"
	"codeviz/internal/gateway/service/telemetry"
)

// maxRequestBody bounds the JSON body of POST /api/analyze.
const maxRequestBody = 64 << 10

type analyzeRequest struct {
	RepoURL string `json:"repo_url"`
}

type AnalyzeHandler struct {
	svc       Analyzer
	telemetry *telemetry.Store
	origins   middleware.OriginSet
}

// NewAnalyzeHandler builds the analysis handlers. allowedOrigins gates the
// websocket handshake; browsers do not apply CORS to websockets.
func NewAnalyzeHandler(svc Analyzer, store *telemetry.Store, allowedOrigins []string) *AnalyzeHandler {
	return &AnalyzeHandler{
		svc:       svc,
		telemetry: store,
		origins:   middleware.NewOriginSet(allowedOrigins),
	}
}

// HandleAnalyze serves POST /api/analyze.
func (h *AnalyzeHandler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	defer r.Body.Close()

	var in analyzeRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, maxRequestBody))
	if err := dec.Decode(&in); err != nil {
		detail := "invalid json body"
		if errors.Is(err, io.EOF) {
			detail = "request body is required"
		}
		writeError(w, r, http.StatusBadRequest, detail)
		return
	}

	runID := uuid.NewString()
	w.Header().Set("X-Run-Id", runID)

	src, err := analyzer.ParseSource(in.RepoURL)
	if err != nil {
		status, detail := ErrorDetail(err)
		writeError(w, r, status, detail)
		return
	}

	ctx := analyzer.WithRunID(r.Context(), runID)
	res, err := h.svc.AnalyzeObserved(ctx, src, h.observer(runID))
	if err != nil {
		status, detail := ErrorDetail(err)
		log.Printf("analyze %s [%s]: %d %s", src, runID, status, detail)
		writeError(w, r, status, detail)
		return
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (h *AnalyzeHandler) observer(runID string) analyzer.Observer {
	if h.telemetry == nil {
		return nil
	}
	return h.telemetry.Observer(runID)
}
