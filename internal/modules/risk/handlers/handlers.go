// Package handlers provides HTTP handlers for risk metrics.
package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/aristath/quantfolio/internal/modules/risk"
	"github.com/rs/zerolog"
)

// Handler handles risk metric HTTP requests
type Handler struct {
	service *risk.Service
	log     zerolog.Logger
}

// NewHandler creates a new risk handler
func NewHandler(service *risk.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "risk").Logger(),
	}
}

// HandleGetMetrics handles GET /api/risk/metrics?date=YYYY-MM-DD
// Returns the stored metric set for one as-of date with derived risk
// levels. Without a date parameter the latest stored set is returned.
func (h *Handler) HandleGetMetrics(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date != "" {
		if _, err := time.Parse("2006-01-02", date); err != nil {
			h.writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
	}

	records, err := h.service.MetricsForDate(date)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": records,
		"metadata": map[string]interface{}{
			"asof_date": records[0].AsOfDate,
			"timestamp": time.Now().Format(time.RFC3339),
		},
	})
}

// HandleGetDates handles GET /api/risk/dates
// Lists the as-of dates with stored metrics, newest first, for
// dashboard date pickers.
func (h *Handler) HandleGetDates(w http.ResponseWriter, r *http.Request) {
	dates, err := h.service.Dates(defaultDateLimit)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": dates,
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	})
}

const defaultDateLimit = 30

// HandleCompute handles POST /api/risk/compute
// Runs the full metric set for the requested as-of date and replaces
// the stored set. An empty body computes for today.
func (h *Handler) HandleCompute(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date string `json:"date"`
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

	result, err := h.service.Compute(req.Date)
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
