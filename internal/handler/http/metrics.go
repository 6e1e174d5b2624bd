package http

import (
	"net/http"
	"strconv"
	"time"

	"newsroom/internal/handler/http/pathutil"
	"newsroom/internal/observability/slo"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Prometheus metrics
var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// httpRequestDuration tracks request latency with buckets covering
	// fast (5ms) through slow (10s) responses, so p95 and p99 stay accurate.
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current number of HTTP requests being served",
		},
	)

	httpRequestSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_size_bytes",
			Help:    "HTTP request size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "path"},
	)

	httpResponseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_response_size_bytes",
			Help:    "HTTP response size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "path"},
	)

	// Business metrics
	articlesPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "articles_published_total",
			Help: "Total number of articles that went live",
		},
		[]string{"kind"}, // "independent" or "approved"
	)

	newslettersPublishedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "newsletters_published_total",
			Help: "Total number of newsletters that went live",
		},
	)

	subscriptionTogglesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "subscription_toggles_total",
			Help: "Total number of subscription toggles",
		},
		[]string{"target", "result"}, // target: publisher|journalist, result: subscribed|unsubscribed
	)
)

// responseWriter wraps http.ResponseWriter to record status code and response size.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	size       int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	size, err := rw.ResponseWriter.Write(b)
	rw.size += size
	return size, err
}

// MetricsMiddleware records HTTP request metrics including duration, size, and
// status codes. Paths are normalized (/articles/123 -> /articles/:id) to keep
// label cardinality bounded.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		normalizedPath := pathutil.NormalizePath(r.URL.Path)

		if r.ContentLength > 0 {
			httpRequestSize.WithLabelValues(r.Method, normalizedPath).Observe(float64(r.ContentLength))
		}

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		start := time.Now()
		next.ServeHTTP(rw, r)
		duration := time.Since(start).Seconds()

		slo.Observe(rw.statusCode)

		status := strconv.Itoa(rw.statusCode)
		httpRequestsTotal.WithLabelValues(r.Method, normalizedPath, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, normalizedPath, status).Observe(duration)
		httpResponseSize.WithLabelValues(r.Method, normalizedPath).Observe(float64(rw.size))
	})
}

// MetricsHandler returns an HTTP handler for the Prometheus metrics endpoint.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}

// RecordArticlePublished records an article going live, either immediately
// on creation ("independent") or through editorial approval ("approved").
func RecordArticlePublished(kind string) {
	articlesPublishedTotal.WithLabelValues(kind).Inc()
}

// RecordNewsletterPublished records a newsletter going live.
func RecordNewsletterPublished() {
	newslettersPublishedTotal.Inc()
}

// RecordSubscriptionToggle records the outcome of a subscription toggle.
func RecordSubscriptionToggle(target string, subscribed bool) {
	result := "unsubscribed"
	if subscribed {
		result = "subscribed"
	}
	subscriptionTogglesTotal.WithLabelValues(target, result).Inc()
}
