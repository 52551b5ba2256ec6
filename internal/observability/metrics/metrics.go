package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

// Metrics exposes application-level instruments.
type Metrics struct {
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// ActivityLogFailures is the diagnostics channel for the audit trail:
	// audit write errors are swallowed, this counter is the only place they
	// remain observable.
	ActivityLogFailures prometheus.Counter

	ImportRows *prometheus.CounterVec
}

// New registers the application instruments against reg. Tests pass a fresh
// prometheus.NewRegistry to read counters in isolation.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dukani_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dukani_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		ActivityLogFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dukani_activity_log_failures_total",
			Help: "Audit trail writes that failed and were discarded.",
		}),
		ImportRows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dukani_import_rows_total",
			Help: "Bulk import rows by outcome.",
		}, []string{"outcome"}),
	}

	reg.MustRegister(m.HTTPRequests, m.HTTPDuration, m.ActivityLogFailures, m.ImportRows)
	return m
}

// NewDefault registers against the process-wide default registry served on /metrics.
func NewDefault() *Metrics {
	return New(prometheus.DefaultRegisterer)
}

// GinMiddleware records request counts and latency per route.
func GinMiddleware(m *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}
		m.HTTPRequests.WithLabelValues(
			c.Request.Method,
			route,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
		m.HTTPDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

var Module = fx.Module("metrics",
	fx.Provide(NewDefault),
)
