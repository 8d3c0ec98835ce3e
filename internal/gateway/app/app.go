package app

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"codeviz/internal/analyzer"
	"codeviz/internal/cache/memory"
	"codeviz/internal/gateway/config"
	"codeviz/internal/gateway/handler"
	"codeviz/internal/gateway/server"
	"codeviz/internal/gateway/service/telemetry"
	"codeviz/internal/retrieve"
)

type App struct {
	server  *server.Server
	handler http.Handler
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return NewWithConfig(cfg)
}

func NewWithConfig(cfg *config.Config) (*App, error) {
	// Dependencies
	fetcher, err := retrieve.NewFetcher(cfg.Retrieval.Backend, cfg.Retrieval.GitBinary)
	if err != nil {
		return nil, fmt.Errorf("failed to create fetcher: %w", err)
	}
	store, err := telemetry.NewStore(cfg.TelemetryRuns)
	if err != nil {
		return nil, err
	}
	svc := analyzer.New(analyzer.Config{
		Retriever: retrieve.New(fetcher, cfg.Retrieval.Timeout),
		Failures:  memory.NewFailureCache(cfg.Failures.Size, cfg.Failures.TTL),
	})

	analyzeHandler := handler.NewAnalyzeHandler(svc, store, cfg.CORS.AllowedOrigins)
	traceHandler := handler.NewTraceHandler(store)

	// Routing & Server
	mux := server.NewMux(analyzeHandler, traceHandler, cfg.CORS.AllowedOrigins)
	log.Printf("env=%s backend=%s clone_timeout=%s", cfg.Env, cfg.Retrieval.Backend, cfg.Retrieval.Timeout)

	return &App{
		server:  server.New(cfg.Port, mux),
		handler: mux,
	}, nil
}

// Handler exposes the routed handler, middleware included.
func (a *App) Handler() http.Handler { return a.handler }

func (a *App) Start() error {
	return a.server.Start()
}

func (a *App) Shutdown(ctx context.Context) error {
	return a.server.Shutdown(ctx)
}
