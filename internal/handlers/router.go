package handlers

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/triciahf/devops-capstone-project/internal/metrics"
	"github.com/triciahf/devops-capstone-project/internal/middleware"
	"github.com/triciahf/devops-capstone-project/internal/repositories"
)

// NewRouter assembles the full middleware chain and route table. The
// security headers sit outermost so every response carries them, 404s
// and panics included.
func NewRouter(repo repositories.AccountRepository) *chi.Mux {
	h := NewAccountHandler(repo)

	router := chi.NewRouter()
	router.Use(middleware.SecureHeaders)
	router.Use(metrics.Instrument)
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.Logger)
	router.Use(chimiddleware.Recoverer)

	router.Get("/", h.Index)
	router.Get("/health", h.Health)
	router.Handle("/metrics", metrics.Handler())

	router.Route("/accounts", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})

	return router
}
