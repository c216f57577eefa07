package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/CampusPulse/Compass/internal/events"
	"github.com/CampusPulse/Compass/internal/scoring"
	"github.com/CampusPulse/Compass/internal/store"
)

func NewRouter(l store.Ledger, eng *scoring.Engine, ev events.Client, adminToken string, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(RateLimitMiddleware(120))

	predictions := NewPredictionsHandler(l, eng, ev)
	simulations := NewSimulationsHandler(l, eng, ev)
	schema := NewSchemaHandler(eng)
	admin := NewAdminHandler(l)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(ClientIDMiddleware)

		r.Post("/predictions", predictions.Create)
		r.Post("/predictions/preview", predictions.Preview)
		r.Get("/predictions", predictions.List)
		r.Get("/predictions/{id}", predictions.Get)
		r.Get("/predictions/{id}/explain", predictions.Explain)

		r.Post("/simulations", simulations.Create)

		r.Get("/schema", schema.Get)

		r.Group(func(r chi.Router) {
			r.Use(AdminAuthMiddleware(adminToken))
			r.Get("/stats", admin.Stats)
		})
	})

	return r
}

func NewMetricsRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}
