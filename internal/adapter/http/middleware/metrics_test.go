package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/iho/agencyledger/internal/infrastructure/metrics"
)

func TestMetricsMiddlewareRecordsRequest(t *testing.T) {
	testCases := []struct {
		name       string
		method     string
		path       string
		wantLabel  string
		statusCode int
	}{
		{
			name:       "uses route pattern for ids",
			method:     http.MethodGet,
			path:       "/api/v1/expenses/01HABC",
			wantLabel:  "/api/v1/expenses/{id}",
			statusCode: http.StatusTeapot,
		},
		{
			name:       "static route",
			method:     http.MethodPost,
			path:       "/health",
			wantLabel:  "/health",
			statusCode: http.StatusCreated,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m := metrics.New(prometheus.NewRegistry())

			r := chi.NewRouter()
			r.Use(NewMetricsMiddleware(m).Wrap)
			handler := func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.statusCode)
			}
			r.Get("/api/v1/expenses/{id}", handler)
			r.Post("/health", handler)

			req := httptest.NewRequest(tc.method, tc.path, nil)
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)

			if rr.Code != tc.statusCode {
				t.Fatalf("expected status %d, got %d", tc.statusCode, rr.Code)
			}

			status := strconv.Itoa(tc.statusCode)
			if got := testutil.ToFloat64(m.HTTPRequests.WithLabelValues(tc.method, tc.wantLabel, status)); got != 1 {
				t.Fatalf("expected request counter to be 1, got %v", got)
			}
		})
	}
}

func TestRoutePatternWithoutRouter(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/plain", nil)

	if got := routePattern(req); got != "/plain" {
		t.Fatalf("expected raw path, got %q", got)
	}
}
