package metrics

import (
	"regexp"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestDuration tracks HTTP request duration in seconds by method, path, status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts HTTP requests by method, path, status.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// AuthEventsTotal counts register/login attempts by outcome.
	AuthEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_events_total",
			Help: "Total number of authentication events by event and result",
		},
		[]string{"event", "result"},
	)

	// DestinationOpsTotal counts destination operations by operation and result.
	DestinationOpsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "destination_operations_total",
			Help: "Total number of destination operations by operation and result",
		},
		[]string{"op", "result"},
	)
)

var (
	numericPathSegment = regexp.MustCompile(`/[0-9]+(/|$)`)
	initOnce           sync.Once
)

func init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestDuration, RequestTotal, AuthEventsTotal, DestinationOpsTotal)
	})
}

// NormalizePath reduces cardinality by replacing numeric path segments with {id}.
// E.g. /destinations/123 -> /destinations/{id}.
func NormalizePath(path string) string {
	return numericPathSegment.ReplaceAllString(path, "/{id}$1")
}

// RecordRequest records duration and count for an HTTP request. Call from middleware with method, path, statusCode, duration.
func RecordRequest(method, path string, statusCode int, durationSeconds float64) {
	path = NormalizePath(path)
	status := strconv.Itoa(statusCode)
	RequestDuration.WithLabelValues(method, path, status).Observe(durationSeconds)
	RequestTotal.WithLabelValues(method, path, status).Inc()
}

// IncAuthEvent counts an auth event (register, login) with its result (ok, conflict, unauthorized, ...).
func IncAuthEvent(event, result string) {
	AuthEventsTotal.WithLabelValues(event, result).Inc()
}

// IncDestinationOp counts a destination operation with its result.
func IncDestinationOp(op, result string) {
	DestinationOpsTotal.WithLabelValues(op, result).Inc()
}
