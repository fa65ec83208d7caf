package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all attribution routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/attribution", func(r chi.Router) {
		r.Get("/", h.HandleGetEffects)      // Stored effect rows for a date and window
		r.Post("/compute", h.HandleCompute) // Run an attribution decomposition now
	})
}
