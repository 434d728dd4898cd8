package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	requestsTotal          = "http_requests_total"
	requestDurationSeconds = "http_request_duration_seconds"

	unmatchedRoute = "unmatched"
)

var defaultLatencyBuckets = []float64{.01, .05, .1, .5, 1, 5, 30}

// Middleware counts the HTTP requests of a server and times them, partitioned by
// status code, method and chi route pattern.
type Middleware struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

// NewMiddleware returns the request metrics of the named server. Buckets are in
// seconds; nil selects the default ones.
func NewMiddleware(name string, buckets []float64) *Middleware {
	if len(buckets) == 0 {
		buckets = defaultLatencyBuckets
	}

	labels := []string{"code", "method", "path"}
	return &Middleware{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Subsystem:   watchair,
			Name:        requestsTotal,
			Help:        "Number of HTTP requests partitioned by status code, method and route.",
			ConstLabels: prometheus.Labels{"server": name},
		}, labels),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Subsystem:   watchair,
			Name:        requestDurationSeconds,
			Help:        "Time spent serving HTTP requests partitioned by status code, method and route.",
			ConstLabels: prometheus.Labels{"server": name},
			Buckets:     buckets,
		}, labels),
	}
}

func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		// the route pattern is only known once the router matched the request
		route := unmatchedRoute
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}

		code := strconv.Itoa(ww.Status())
		m.requests.WithLabelValues(code, r.Method, route).Inc()
		m.latency.WithLabelValues(code, r.Method, route).Observe(time.Since(start).Seconds())
	})
}

func (m *Middleware) Collectors() []prometheus.Collector {
	return []prometheus.Collector{m.requests, m.latency}
}

// MustRegister registers the collectors with reg.
func (m *Middleware) MustRegister(reg prometheus.Registerer) {
	reg.MustRegister(m.Collectors()...)
}
