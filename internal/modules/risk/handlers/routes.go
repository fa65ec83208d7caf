package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all risk metric routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/risk", func(r chi.Router) {
		r.Get("/metrics", h.HandleGetMetrics) // Stored metric set with risk levels
		r.Get("/dates", h.HandleGetDates)     // As-of dates with stored metrics
		r.Post("/compute", h.HandleCompute)   // Run a metric computation now
	})
}
