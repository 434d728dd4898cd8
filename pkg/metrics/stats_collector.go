package metrics

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/watchair/watchair/internal/store"
	"go.uber.org/zap"
)

type statsCollector struct {
	store            store.Store
	totalDomains     *prometheus.Desc
	totalSubmissions *prometheus.Desc
	totalReviews     *prometheus.Desc
	jobsByStatus     *prometheus.Desc
}

func newStatsCollector(s store.Store) prometheus.Collector {
	fqName := func(name string) string {
		return fmt.Sprintf("%s_%s", watchair, name)
	}

	return &statsCollector{
		store: s,
		totalDomains: prometheus.NewDesc(
			fqName("domains_total"),
			"Total number of domains.",
			nil,
			prometheus.Labels{},
		),
		totalSubmissions: prometheus.NewDesc(
			fqName("submissions_total"),
			"Total number of submissions across domains.",
			nil,
			prometheus.Labels{},
		),
		totalReviews: prometheus.NewDesc(
			fqName("reviews_total"),
			"Total number of reviews across domains.",
			nil,
			prometheus.Labels{},
		),
		jobsByStatus: prometheus.NewDesc(
			fqName("jobs_by_status"),
			"Number of stored processing jobs per status",
			[]string{"status"},
			prometheus.Labels{},
		),
	}
}

func (c *statsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.totalDomains
	ch <- c.totalSubmissions
	ch <- c.totalReviews
	ch <- c.jobsByStatus
}

func (c *statsCollector) Collect(ch chan<- prometheus.Metric) {
	stats, err := c.store.Statistics(context.Background())
	if err != nil {
		zap.S().Named("stats_collector").Errorf("failed to collect statistics: %s", err)
		return
	}
	ch <- prometheus.MustNewConstMetric(c.totalDomains, prometheus.GaugeValue, float64(stats.Domains))
	ch <- prometheus.MustNewConstMetric(c.totalSubmissions, prometheus.GaugeValue, float64(stats.Submissions))
	ch <- prometheus.MustNewConstMetric(c.totalReviews, prometheus.GaugeValue, float64(stats.Reviews))

	for status, total := range stats.JobsByStatus {
		ch <- prometheus.MustNewConstMetric(c.jobsByStatus, prometheus.GaugeValue, float64(total), status)
	}
}
