package server

import (
	"net/http"

	"codeviz/internal/gateway/handler"
	"codeviz/internal/gateway/middleware"
)

func NewMux(
	analyzeHandler *handler.AnalyzeHandler,
	traceHandler *handler.TraceHandler,
	allowedOrigins []string,
) http.Handler {
	mux := http.NewServeMux()

	// Analysis
	mux.HandleFunc("/api/analyze", analyzeHandler.HandleAnalyze)
	mux.HandleFunc("/api/analyze/ws", analyzeHandler.HandleAnalyzeWS)

	// Service
	mux.HandleFunc("/", handler.HandleRoot)
	mux.HandleFunc("/health", handler.HandleHealth)
	mux.HandleFunc("/favicon.ico", handler.HandleFavicon)

	// Debug Handlers
	mux.HandleFunc("/debug/run-logs", traceHandler.HandleRunLogs)

	// Middleware
	return middleware.CORS(allowedOrigins)(mux)
}
