package routers

import (
	"intervai/internal/handlers"
	"intervai/internal/metrics"

	"github.com/go-chi/chi/v5"
)

func HealthRoutes(router *chi.Mux, healthHandler *handlers.HealthHandler) {
	router.Get("/healthz", healthHandler.HealthzHandler)
	router.Get("/readyz", healthHandler.ReadyzHandler)
	router.Method("GET", "/metrics", metrics.Handler())
}
