// Package handler implements the HTTP and websocket surface of the gateway.
package handler

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"codeviz/internal/analyzer"
	"codeviz/internal/types"
)

// Analyzer is the pipeline as seen by the handlers.
type Analyzer interface {
	AnalyzeObserved(ctx context.Context, src analyzer.Source, obs analyzer.Observer) (*types.AnalysisResult, error)
}

type errorBody struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	if r != nil && r.URL.Query().Get("pretty") == "true" {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, detail string) {
	writeJSON(w, r, status, errorBody{Detail: detail})
}
