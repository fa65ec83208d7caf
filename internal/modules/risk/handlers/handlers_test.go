package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aristath/quantfolio/internal/modules/risk"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/mattn/go-sqlite3"
)

// newTestHandler builds a handler over a repo-backed service. The GET
// endpoints only touch the repository, so the market data side of the
// service stays nil.
func newTestHandler(t *testing.T) (*Handler, *risk.Repository) {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`
		CREATE TABLE risk_metrics (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			asof_date TEXT NOT NULL,
			metric_name TEXT NOT NULL,
			value REAL NOT NULL,
			category TEXT NOT NULL,
			lookback_days INTEGER,
			run_id TEXT,
			created_at TEXT NOT NULL DEFAULT (datetime('now')),
			UNIQUE (asof_date, metric_name)
		)
	`)
	require.NoError(t, err)

	log := zerolog.New(nil).Level(zerolog.Disabled)
	repo := risk.NewRepository(db, log)
	service := risk.NewService(nil, nil, nil, repo, nil, log)

	return NewHandler(service, log), repo
}

func newTestRouter(h *Handler) *chi.Mux {
	router := chi.NewRouter()
	router.Route("/api", func(r chi.Router) {
		h.RegisterRoutes(r)
	})
	return router
}

func seedMetrics(t *testing.T, repo *risk.Repository, asOfDate string) {
	t.Helper()

	window := 252
	err := repo.ReplaceForDate(asOfDate, []risk.MetricRecord{
		{AsOfDate: asOfDate, MetricName: risk.MetricVaR95, Value: -0.025, Category: risk.CategoryMarketRisk, LookbackDays: &window, RunID: "run-1"},
		{AsOfDate: asOfDate, MetricName: risk.MetricVolatilityAnn, Value: 0.12, Category: risk.CategoryMarketRisk, LookbackDays: &window, RunID: "run-1"},
		{AsOfDate: asOfDate, MetricName: risk.MetricHHISector, Value: 3000, Category: risk.CategoryConcentration, RunID: "run-1"},
	})
	require.NoError(t, err)
}

func TestHandler_GetMetrics_ReturnsStoredSetWithLevels(t *testing.T) {
	handler, repo := newTestHandler(t)
	seedMetrics(t, repo, "2025-01-07")
	router := newTestRouter(handler)

	req := httptest.NewRequest(http.MethodGet, "/api/risk/metrics?date=2025-01-07", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var response struct {
		Data     []risk.MetricRecord    `json:"data"`
		Metadata map[string]interface{} `json:"metadata"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))

	require.Len(t, response.Data, 3)
	assert.Equal(t, "2025-01-07", response.Metadata["asof_date"])

	// -2.5% VaR breaches the -2 band, 12% volatility sits under 15
	assert.Equal(t, risk.MetricVaR95, response.Data[0].MetricName)
	assert.Equal(t, "alert", response.Data[0].Level)
	assert.Equal(t, risk.MetricVolatilityAnn, response.Data[1].MetricName)
	assert.Equal(t, "ok", response.Data[1].Level)
	assert.Equal(t, risk.MetricHHISector, response.Data[2].MetricName)
	assert.Equal(t, "watch", response.Data[2].Level)
}

func TestHandler_GetMetrics_DefaultsToLatestDate(t *testing.T) {
	handler, repo := newTestHandler(t)
	seedMetrics(t, repo, "2025-01-06")
	seedMetrics(t, repo, "2025-01-07")
	router := newTestRouter(handler)

	req := httptest.NewRequest(http.MethodGet, "/api/risk/metrics", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var response struct {
		Data []risk.MetricRecord `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.NotEmpty(t, response.Data)
	assert.Equal(t, "2025-01-07", response.Data[0].AsOfDate)
}

func TestHandler_GetMetrics_BadDate(t *testing.T) {
	handler, _ := newTestHandler(t)
	router := newTestRouter(handler)

	req := httptest.NewRequest(http.MethodGet, "/api/risk/metrics?date=07-01-2025", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var response map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "date must be YYYY-MM-DD", response["error"])
}

func TestHandler_GetMetrics_NothingStored(t *testing.T) {
	handler, _ := newTestHandler(t)
	router := newTestRouter(handler)

	req := httptest.NewRequest(http.MethodGet, "/api/risk/metrics", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var response map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Contains(t, response["error"], "no risk metrics stored yet")
}

func TestHandler_GetDates(t *testing.T) {
	handler, repo := newTestHandler(t)
	seedMetrics(t, repo, "2025-01-06")
	seedMetrics(t, repo, "2025-01-07")
	router := newTestRouter(handler)

	req := httptest.NewRequest(http.MethodGet, "/api/risk/dates", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var response struct {
		Data []string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, []string{"2025-01-07", "2025-01-06"}, response.Data)
}

func TestHandler_Compute_RejectsMalformedBody(t *testing.T) {
	handler, _ := newTestHandler(t)
	router := newTestRouter(handler)

	req := httptest.NewRequest(http.MethodPost, "/api/risk/compute", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var response map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "invalid JSON body", response["error"])
}

func TestHandler_Compute_RejectsBadDate(t *testing.T) {
	handler, _ := newTestHandler(t)
	router := newTestRouter(handler)

	req := httptest.NewRequest(http.MethodPost, "/api/risk/compute", strings.NewReader(`{"date":"January 7"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var response map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "date must be YYYY-MM-DD", response["error"])
}
