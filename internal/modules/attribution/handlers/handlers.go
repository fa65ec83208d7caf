// Package handlers provides HTTP handlers for performance attribution.
package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/aristath/quantfolio/internal/modules/attribution"
	"github.com/rs/zerolog"
)

// Handler handles attribution HTTP requests
type Handler struct {
	service *attribution.Service
	log     zerolog.Logger
}

// NewHandler creates a new attribution handler
func NewHandler(service *attribution.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "attribution").Logger(),
	}
}

// HandleGetEffects handles GET /api/attribution?date=YYYY-MM-DD&lookback=N
// Returns the stored effect rows for one as-of date and lookback
// window. Without a date the latest stored run for that window is
// returned; without a lookback the daily window is assumed.
func (h *Handler) HandleGetEffects(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date != "" {
		if _, err := time.Parse("2006-01-02", date); err != nil {
			h.writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
	}

	lookback := 0
	if raw := r.URL.Query().Get("lookback"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "lookback must be an integer number of days")
			return
		}
		lookback = parsed
	}

	effects, err := h.service.EffectsForDate(date, lookback)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": effects,
		"metadata": map[string]interface{}{
			"asof_date":     effects[0].AsOfDate,
			"lookback_days": effects[0].LookbackDays,
			"timestamp":     time.Now().Format(time.RFC3339),
		},
	})
}

// HandleCompute handles POST /api/attribution/compute
// Runs a full attribution decomposition and replaces the stored run
// for the window. An empty body computes the daily window for today.
func (h *Handler) HandleCompute(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date         string `json:"date"`
		LookbackDays int    `json:"lookback_days"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		h.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Date != "" {
		if _, err := time.Parse("2006-01-02", req.Date); err != nil {
			h.writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
	}

	result, err := h.service.Compute(req.Date, req.LookbackDays)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": result,
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
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
