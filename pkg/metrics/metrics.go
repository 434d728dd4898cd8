package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	watchair = "watchair"

	// Job metrics
	jobsTotal           = "jobs_total"
	jobDurationSeconds  = "job_duration_seconds"
	jobsScheduledTotal  = "jobs_scheduled_total"
	ingestedRecordTotal = "ingested_records_total"

	// Labels
	jobTypeLabel    = "type"
	jobSubtypeLabel = "subtype"
	jobStatusLabel  = "status"
	recordKindLabel = "kind"
)

var jobLabels = []string{
	jobTypeLabel,
	jobSubtypeLabel,
	jobStatusLabel,
}

/**
* Metrics definition
**/
var jobsTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: watchair,
		Name:      jobsTotal,
		Help:      "number of processing jobs that reached a terminal status",
	},
	jobLabels,
)

var jobDurationMetric = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Subsystem: watchair,
		Name:      jobDurationSeconds,
		Help:      "time between the creation of a processing job and its terminal status",
		Buckets:   []float64{0.1, 0.5, 1, 5, 15, 60, 300},
	},
	jobLabels,
)

var jobsScheduledMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: watchair,
		Name:      jobsScheduledTotal,
		Help:      "number of background tasks handed to the scheduler",
	},
	[]string{jobTypeLabel},
)

var ingestedRecordsMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: watchair,
		Name:      ingestedRecordTotal,
		Help:      "number of records extracted from uploaded workbooks",
	},
	[]string{recordKindLabel},
)

func IncreaseJobsTotalMetric(jobType, subtype, status string, duration time.Duration) {
	labels := prometheus.Labels{
		jobTypeLabel:    jobType,
		jobSubtypeLabel: subtype,
		jobStatusLabel:  status,
	}
	jobsTotalMetric.With(labels).Inc()
	jobDurationMetric.With(labels).Observe(duration.Seconds())
}

func IncreaseJobsScheduledMetric(jobType string) {
	jobsScheduledMetric.With(prometheus.Labels{jobTypeLabel: jobType}).Inc()
}

func AddIngestedRecordsMetric(kind string, count int) {
	ingestedRecordsMetric.With(prometheus.Labels{recordKindLabel: kind}).Add(float64(count))
}

func init() {
	registerMetrics()
}

func registerMetrics() {
	prometheus.MustRegister(jobsTotalMetric)
	prometheus.MustRegister(jobDurationMetric)
	prometheus.MustRegister(jobsScheduledMetric)
	prometheus.MustRegister(ingestedRecordsMetric)
}
