package httpapi

import (
	"github.com/go-chi/chi/v5"
)

// NewRouter wires the HTTP surface.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(Recovery)
	r.Use(Logger)

	r.Get("/healthz", h.Health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/work-orders", h.WorkOrder)
		r.Post("/daily-reports", h.DailyReport)
		r.Post("/signatures", h.Signature)
	})

	return r
}
