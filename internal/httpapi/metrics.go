package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"bookslib/internal/manager"
)

const opsRoute = "/ops/{op}"

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bookslib",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route pattern, method and status",
		},
		[]string{"path", "method", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "bookslib",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency; POST /ops/{op}?wait=1 includes settlement",
			Buckets:   []float64{.005, .025, .1, .5, 1, 2.5, 5, 15, 30, 60},
		},
		[]string{"path", "method", "status"},
	)

	httpInflight = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "bookslib",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "In-flight HTTP requests",
		},
		[]string{"method"},
	)

	opRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bookslib",
			Subsystem: "http",
			Name:      "op_requests_total",
			Help:      "POST /ops/{op} requests by operation and result",
		},
		[]string{"op", "result"},
	)

	// reasons match bookslib_rejected_triggers_total, plus rate_limit
	rejectionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bookslib",
			Subsystem: "http",
			Name:      "rejections_total",
			Help:      "Requests turned away before reaching the controller or refused by it",
		},
		[]string{"reason"},
	)
)

func init() {
	prometheus.MustRegister(httpRequestsTotal, httpRequestDuration, httpInflight, opRequestsTotal, rejectionsTotal)
}

// statusRecorder wraps http.ResponseWriter to capture status code
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

// MetricsMiddleware instruments requests for Prometheus. Install it with
// Router.Use so the chi route context is shared with the router.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method := r.Method
		httpInflight.WithLabelValues(method).Inc()
		defer httpInflight.WithLabelValues(method).Dec()

		sr := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(sr, r)
		// the route pattern is only known once chi has routed the request
		path := routePatternOrPath(r)
		status := strconv.Itoa(sr.status)
		httpRequestsTotal.WithLabelValues(path, method, status).Inc()
		httpRequestDuration.WithLabelValues(path, method, status).Observe(time.Since(start).Seconds())
		if path == opsRoute {
			observeOpRequest(chi.URLParam(r, "op"), sr.status)
		}
	})
}

// observeOpRequest counts a trigger request. Unknown operation names collapse
// to "unknown" to keep label cardinality bounded.
func observeOpRequest(name string, status int) {
	op := "unknown"
	if parsed, err := manager.ParseOp(name); err == nil {
		op = string(parsed)
	}
	result := opResult(status)
	opRequestsTotal.WithLabelValues(op, result).Inc()
	switch result {
	case "busy", "not_connected":
		countRejection(result)
	}
}

// opResult names the outcome of POST /ops/{op} from its status code.
func opResult(status int) string {
	switch status {
	case http.StatusOK:
		return "settled"
	case http.StatusAccepted:
		return "accepted"
	case http.StatusConflict:
		return "busy"
	case http.StatusServiceUnavailable:
		return "not_connected"
	case http.StatusTooManyRequests:
		return "rate_limit"
	case http.StatusNotFound:
		return "unknown_op"
	}
	return "error"
}

// routePatternOrPath returns the chi route pattern if available, otherwise
// falls back to URL path. This avoids high-cardinality label values.
func routePatternOrPath(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return r.URL.Path
}

func countRejection(reason string) {
	if reason == "" {
		reason = "unspecified"
	}
	rejectionsTotal.WithLabelValues(reason).Inc()
}
