// Package metrics exposes Prometheus collectors for HTTP traffic and
// recipe generation outcomes.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome label for a successful generation
const OutcomeSuccess = "success"

type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	generationsTotal    *prometheus.CounterVec
	generationDuration  prometheus.Histogram
	gatherer            prometheus.Gatherer
}

// New registers the collectors with reg
func New(reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		generationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "recipe_generations_total",
				Help: "Recipe generation requests by outcome",
			},
			[]string{"outcome"},
		),
		generationDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "recipe_generation_duration_seconds",
				Help:    "Time spent in the recipe generation flow",
				Buckets: []float64{0.5, 1, 2, 5, 10, 20, 40, 60},
			},
		),
		gatherer: reg,
	}
}

// ObserveGeneration records one generation attempt. outcome is
// OutcomeSuccess or a failure kind.
func (m *Metrics) ObserveGeneration(outcome string, d time.Duration) {
	m.generationsTotal.WithLabelValues(outcome).Inc()
	m.generationDuration.Observe(d.Seconds())
}

// Middleware records request counts and latency by route template
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.httpRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
