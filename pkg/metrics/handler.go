package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/watchair/watchair/internal/store"
)

type PrometheusMetricsHandler struct {
	gatherer prometheus.Gatherer
}

func NewPrometheusMetricsHandler() *PrometheusMetricsHandler {
	return &PrometheusMetricsHandler{gatherer: prometheus.DefaultGatherer}
}

func (h *PrometheusMetricsHandler) Handler() http.Handler {
	return promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{})
}

// RegisterStatsCollector exposes the domain statistics gauges backed by the store.
func RegisterStatsCollector(s store.Store) {
	prometheus.MustRegister(newStatsCollector(s))
}
