// Package handlers provides HTTP handlers for the screener.
package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/aristath/quantfolio/internal/modules/scoring"
	"github.com/rs/zerolog"
)

// Handler handles screener HTTP requests
type Handler struct {
	service *scoring.ScreenerService
	log     zerolog.Logger
}

// NewHandler creates a new screener handler
func NewHandler(service *scoring.ScreenerService, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "screener").Logger(),
	}
}

// HandleRank handles POST /api/screener/rank
// Scores the whole universe and returns the ranked shortlist for the
// requested style, optionally filtered to one sector.
func (h *Handler) HandleRank(w http.ResponseWriter, r *http.Request) {
	var req scoring.RankRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		h.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Style == "" {
		h.writeError(w, http.StatusBadRequest, "style is required")
		return
	}
	// Style names are static configuration, so an unknown one is a
	// client mistake rather than a computation failure.
	if _, err := scoring.Profile(req.Style); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	response, err := h.service.Rank(req)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": response,
		"metadata": map[string]interface{}{
			"request_id": response.RequestID,
			"timestamp":  time.Now().Format(time.RFC3339),
		},
	})
}

// HandleGetStyles handles GET /api/screener/styles
// Describes the fixed style profiles with their weights and threshold
// gates so clients can render them without hardcoding.
func (h *Handler) HandleGetStyles(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": h.service.Styles(),
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	})
}

// HandleGetBalanced handles GET /api/screener/balanced
// Builds the sector-balanced shortlist: the top two balanced-style
// names from each configured core sector.
func (h *Handler) HandleGetBalanced(w http.ResponseWriter, r *http.Request) {
	response, err := h.service.SectorBalanced()
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": response,
		"metadata": map[string]interface{}{
			"request_id": response.RequestID,
			"timestamp":  time.Now().Format(time.RFC3339),
		},
	})
}

// Helper methods

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
