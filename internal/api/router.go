package api

import (
	"nearest-route-service/internal/api/handlers"
	"nearest-route-service/internal/platform/obs"
	"nearest-route-service/internal/ports"
	"nearest-route-service/internal/services"
	"net/http"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(repo ports.BoardRepository, solver *services.Solver, counters *obs.Counters, batchLimit int) http.Handler {
	mux := http.NewServeMux()

	routeHandler := &handlers.RouteHandler{Solver: solver, BatchLimit: batchLimit}
	boardHandler := &handlers.BoardHandler{Repo: repo, Solver: solver}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/stats", handlers.Stats(counters))
	mux.HandleFunc("/routes", routeHandler.Solve)
	mux.HandleFunc("/routes/batch", routeHandler.Batch)

	mux.HandleFunc("POST /boards", boardHandler.Create)
	mux.HandleFunc("GET /boards", boardHandler.List)
	mux.HandleFunc("GET /boards/{id}", boardHandler.Get)
	mux.HandleFunc("DELETE /boards/{id}", boardHandler.Delete)
	mux.HandleFunc("POST /boards/{id}/mode", boardHandler.SetMode)
	mux.HandleFunc("POST /boards/{id}/points", boardHandler.Place)
	mux.HandleFunc("POST /boards/{id}/clear", boardHandler.Clear)
	mux.HandleFunc("POST /boards/{id}/solve", boardHandler.Solve)

	return accessLog(mux)
}
