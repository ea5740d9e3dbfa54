package api

import (
	"net/http"

	"waste-routing-service/internal/api/handlers"
	"waste-routing-service/internal/ports"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(
	reports ports.ReportRepository,
	collectors ports.CollectorRepository,
	clock ports.Clock,
	statsCache ports.StatsCache,
	defaultMaxPerCollector int,
) http.Handler {
	mux := http.NewServeMux()

	routeHandler := &handlers.RouteHandler{Repo: reports}
	reportHandler := &handlers.ReportHandler{Repo: reports}
	statsHandler := &handlers.StatsHandler{Repo: reports, Clock: clock, Cache: statsCache}
	assignHandler := &handlers.AssignmentHandler{
		Repo:                   reports,
		Collectors:             collectors,
		Clock:                  clock,
		DefaultMaxPerCollector: defaultMaxPerCollector,
	}

	mux.HandleFunc("GET /health", handlers.Health)
	mux.HandleFunc("GET /reports/pending", reportHandler.Pending)
	mux.HandleFunc("GET /collectors/{id}/route", routeHandler.Route)
	mux.HandleFunc("GET /collectors/{id}/stats", statsHandler.Stats)
	mux.HandleFunc("POST /assignments/auto", assignHandler.AutoAssign)
	mux.HandleFunc("POST /reports/{id}/assign", assignHandler.Assign)
	mux.HandleFunc("POST /reports/{id}/start", assignHandler.Start)
	mux.HandleFunc("POST /reports/{id}/complete", assignHandler.Complete)
	mux.HandleFunc("POST /reports/{id}/cancel", assignHandler.Cancel)

	return loggingMiddleware(mux)
}
