package api

import (
	"net/http"
	"relocation-planner-service/internal/api/handlers"
	"relocation-planner-service/internal/ports"
	"relocation-planner-service/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(repo ports.PopulationRepository, deps services.Deps, defaults handlers.PlannerDefaults) http.Handler {
	mux := http.NewServeMux()

	entityHandler := &handlers.EntityHandler{Repo: repo}
	planHandler := &handlers.PlanHandler{
		Repo:     repo,
		Deps:     deps,
		Defaults: defaults,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/entities", entityHandler.List)
	mux.HandleFunc("/plans", planHandler.Plan)

	return requestIDMiddleware(loggingMiddleware(mux))
}
