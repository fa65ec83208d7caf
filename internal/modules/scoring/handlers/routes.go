package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all screener routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/screener", func(r chi.Router) {
		r.Post("/rank", h.HandleRank)           // Style-weighted ranking run
		r.Get("/styles", h.HandleGetStyles)     // Fixed style profile catalog
		r.Get("/balanced", h.HandleGetBalanced) // Sector-balanced shortlist
	})
}
