package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"playbox/models"
)

var (
	// Registry holds the storefront collectors.
	Registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "playbox",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "playbox",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
		},
		[]string{"method", "path"},
	)

	apiRetries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "playbox",
			Subsystem: "api",
			Name:      "retries_total",
			Help:      "Remote API attempts that timed out and were retried.",
		},
		[]string{"route"},
	)

	checkouts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "playbox",
			Subsystem: "shop",
			Name:      "checkouts_total",
			Help:      "Checkout attempts by result.",
		},
		[]string{"method", "result"},
	)
)

func init() {
	Registry.MustRegister(
		httpRequests,
		httpDuration,
		apiRetries,
		checkouts,
		prometheus.NewGoCollector(),
	)
}

// Handler exposes the registry.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

func RecordAPIRetry(route string) {
	apiRetries.WithLabelValues(route).Inc()
}

// RecordCheckout counts a checkout attempt. Methods other than the supported
// gateways are recorded as "unknown" so callers cannot grow the label set.
func RecordCheckout(method, result string) {
	switch models.PaymentMethod(method) {
	case models.PaymentVisa, models.PaymentPayPal:
	default:
		method = "unknown"
	}
	checkouts.WithLabelValues(method, result).Inc()
}

// InstrumentHandler counts requests and observes their duration.
func InstrumentHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(rec, r)

		path := canonicalPath(r.URL.Path)
		method := strings.ToUpper(r.Method)
		httpRequests.WithLabelValues(method, path, strconv.Itoa(rec.status)).Inc()
		httpDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// canonicalPath keeps label cardinality bounded by dropping ids.
func canonicalPath(raw string) string {
	trimmed := strings.Trim(raw, "/")
	if trimmed == "" {
		return "/"
	}
	parts := strings.Split(trimmed, "/")
	switch {
	case len(parts) == 1:
		return "/" + parts[0]
	case parts[0] == "cart" && parts[1] == "items":
		return "/cart/items"
	case parts[0] == "orders" && len(parts) >= 3:
		return "/orders/:id/" + parts[2]
	case parts[0] == "products" && parts[1] != "refresh":
		return "/products/:id"
	}
	return "/" + parts[0] + "/" + parts[1]
}
