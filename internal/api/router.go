package api

import (
	"net/http"
	"range-ring-service/internal/api/handlers"
	"range-ring-service/internal/platform/metrics"
	"range-ring-service/internal/ports"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
// cache may be nil, in which case every ring is computed on demand.
func NewRouter(repo ports.RingSetRepository, cache ports.RingCache) http.Handler {
	mux := http.NewServeMux()

	ringHandler := &handlers.RingHandler{
		Repo:  repo,
		Cache: cache,
	}
	ringSetHandler := &handlers.RingSetHandler{Repo: repo}

	mux.HandleFunc("/health", handlers.Health)
	mux.Handle("/metrics", metrics.Handler())
	mux.HandleFunc("/rings", ringHandler.Generate)
	mux.HandleFunc("/rings/export", ringHandler.Export)
	mux.HandleFunc("/ringsets", ringSetHandler.List)
	mux.HandleFunc("/ringsets/", ringSetHandler.Get)

	return requestIDMiddleware(loggingMiddleware(mux))
}
