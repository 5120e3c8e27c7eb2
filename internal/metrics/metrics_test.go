package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func metricValue(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
	next:
		for _, m := range mf.GetMetric() {
			got := map[string]string{}
			for _, lp := range m.GetLabel() {
				got[lp.GetName()] = lp.GetValue()
			}
			for k, v := range labels {
				if got[k] != v {
					continue next
				}
			}
			if c := m.GetCounter(); c != nil {
				return c.GetValue()
			}
			if h := m.GetHistogram(); h != nil {
				return float64(h.GetSampleCount())
			}
		}
	}
	return 0
}

func TestRecordTransition(t *testing.T) {
	m := New()
	m.RecordTransition("event", "CANCELLED")
	m.RecordTransition("event", "CANCELLED")
	m.RecordTransition("venue", "MAINTENANCE")

	assert.Equal(t, 2.0, metricValue(t, m.Registry, "eventcatalog_lifecycle_transitions_total",
		map[string]string{"resource": "event", "status": "CANCELLED"}))
	assert.Equal(t, 1.0, metricValue(t, m.Registry, "eventcatalog_lifecycle_transitions_total",
		map[string]string{"resource": "venue", "status": "MAINTENANCE"}))
}

func TestMiddleware_labels_by_route_pattern(t *testing.T) {
	m := New()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /venues/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") == "0" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte("ok"))
	})
	handler := m.Middleware(mux)

	for _, path := range []string{"/venues/1", "/venues/2", "/venues/0", "/nowhere"} {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	}

	const total = "eventcatalog_http_requests_total"
	assert.Equal(t, 2.0, metricValue(t, m.Registry, total, map[string]string{"route": "/venues/{id}", "status": "200"}))
	assert.Equal(t, 1.0, metricValue(t, m.Registry, total, map[string]string{"route": "/venues/{id}", "status": "404"}))
	assert.Equal(t, 1.0, metricValue(t, m.Registry, total, map[string]string{"route": unmatchedRoute, "status": "404"}))
	assert.Equal(t, 3.0, metricValue(t, m.Registry, "eventcatalog_http_request_duration_seconds",
		map[string]string{"method": "GET", "route": "/venues/{id}"}))
}

func TestHandler_exposes_registry(t *testing.T) {
	m := New()
	m.RecordTransition("venue", "ACTIVE")

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	body, err := io.ReadAll(rr.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), `eventcatalog_lifecycle_transitions_total{resource="venue",status="ACTIVE"} 1`))
	assert.True(t, strings.Contains(string(body), "go_goroutines"))
}
