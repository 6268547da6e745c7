package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.RequestLogger)

	router.Route("/api/sync", func(r chi.Router) {
		r.Post("/full", h.fullSync)
		r.Post("/incremental", h.incrementalSync)
		r.Post("/pause", h.pause)
		r.Post("/resume", h.resume)

		r.Get("/metrics", h.metrics)
		r.Get("/consistency", h.consistency)
		r.Get("/events", h.events)

		r.Put("/config/validation", h.configureValidation)
		r.Put("/config/batch", h.configureBatch)
	})

	return router
}
