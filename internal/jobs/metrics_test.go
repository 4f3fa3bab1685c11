package jobmetrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
)

func scrape(t *testing.T, registry *prometheus.Registry) string {
	t.Helper()
	rr := httptest.NewRecorder()
	promhttp.HandlerFor(registry, promhttp.HandlerOpts{}).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	return rr.Body.String()
}

func TestTrackerRecordsOutcome(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewMetrics(registry)

	assert.NoError(t, m.Track("projection:refresh").End(nil))
	boom := errors.New("boom")
	assert.ErrorIs(t, m.Track("projection:refresh").End(boom), boom)

	body := scrape(t, registry)
	assert.Contains(t, body, `agriprojet_jobs_total{job="projection:refresh",status="success"} 1`)
	assert.Contains(t, body, `agriprojet_jobs_total{job="projection:refresh",status="failure"} 1`)
	assert.Contains(t, body, `agriprojet_jobs_failures_total{job="projection:refresh"} 1`)
	assert.Contains(t, body, `agriprojet_job_duration_seconds_count{job="projection:refresh"} 2`)
}

func TestAddUnbalancedIgnoresNonPositive(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewMetrics(registry)
	m.AddUnbalanced(0)
	m.AddUnbalanced(-2)
	m.AddUnbalanced(3)
	assert.Contains(t, scrape(t, registry), "agriprojet_unbalanced_sheets_total 3")
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	assert.NoError(t, m.Track("x").End(nil))
	m.AddUnbalanced(1)
}
