package handlers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterRoutes(t *testing.T) {
	handler, _ := newTestHandler(t)

	router := chi.NewRouter()
	require.NotPanics(t, func() {
		router.Route("/api", func(r chi.Router) {
			handler.RegisterRoutes(r)
		})
	}, "RegisterRoutes should not panic")

	// 404 means route not found; anything else means it is wired. The
	// compute route gets a malformed body so the request stops at
	// validation instead of running a computation.
	testCases := []struct {
		method string
		path   string
		body   string
		name   string
	}{
		{"GET", "/api/attribution", "", "GetEffects"},
		{"POST", "/api/attribution/compute", "{bad", "Compute"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var body io.Reader
			if tc.body != "" {
				body = strings.NewReader(tc.body)
			}
			req := httptest.NewRequest(tc.method, tc.path, body)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.NotEqual(t, http.StatusNotFound, rec.Code, "route %s %s should be registered", tc.method, tc.path)
		})
	}
}
