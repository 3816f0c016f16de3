package monitoring

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.RequestsTotal.WithLabelValues(http.MethodGet, "/api/v1/clients", "200").Inc()
	m.Throttled.Inc()

	assert.InDelta(t, 1.0, testutil.ToFloat64(m.Throttled), 0)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `hotelbook_http_requests_total{method="GET",path="/api/v1/clients",status="200"} 1`)
	assert.Contains(t, body, "hotelbook_http_requests_throttled_total 1")
	assert.Contains(t, body, "go_goroutines")
}

func TestNew_Independent(t *testing.T) {
	assert.NotPanics(t, func() {
		New()
		New()
	})
}
