// Package monitoring описывает метрики Prometheus HTTP-оболочки.
package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics — счётчики и гистограммы запросов.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	Throttled       prometheus.Counter

	gatherer prometheus.Gatherer
}

// New создаёт метрики и регистрирует их в новом реестре
// вместе со сборщиками процесса и рантайма Go.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "hotelbook",
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "hotelbook",
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests",
				Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5},
			},
			[]string{"method", "path"},
		),
		Throttled: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "hotelbook",
				Name:      "http_requests_throttled_total",
				Help:      "Requests rejected by the rate limiter",
			},
		),
		gatherer: reg,
	}
	reg.MustRegister(
		m.RequestsTotal,
		m.RequestDuration,
		m.Throttled,
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)
	return m
}

// Handler отдаёт метрики в текстовом формате Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
