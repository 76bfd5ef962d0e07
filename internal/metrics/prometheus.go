// Package metrics exports Prometheus metrics for matches and background jobs.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/gcbaptista/go-survey-catalog/model"
)

const namespace = "catalog"

// Match outcomes used as the result label
const (
	ResultHit      = "hit"
	ResultEmpty    = "empty"
	ResultRejected = "rejected"
	ResultTimeout  = "timeout"
)

// Metrics holds the collectors of one registry. A nil *Metrics records nothing.
type Metrics struct {
	matches       *prometheus.CounterVec
	matchDuration *prometheus.HistogramVec
	resultSize    prometheus.Histogram
	jobs          *prometheus.CounterVec
	jobDuration   *prometheus.HistogramVec
}

// New registers the collectors with reg
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		// Labels: catalog, result (hit, empty, rejected, timeout)
		matches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "match_total",
			Help:      "Total match requests by outcome",
		}, []string{"catalog", "result"}),

		matchDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "match_duration_seconds",
			Help:      "Time spent matching a query against a catalog",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2},
		}, []string{"catalog"}),

		resultSize: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "match_result_size",
			Help:      "Number of entries returned per match",
			Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100, 500},
		}),

		// Labels: type, status (completed, failed, cancelled)
		jobs: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "jobs_total",
			Help:      "Background jobs that reached a terminal state",
		}, []string{"type", "status"}),

		jobDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "job_duration_seconds",
			Help:      "Execution time of background jobs",
			Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 30, 120},
		}, []string{"type"}),
	}
}

// ObserveMatch records a finished match. Only hits and empty results carry a duration and size.
func (m *Metrics) ObserveMatch(catalog, result string, took time.Duration, size int) {
	if m == nil {
		return
	}
	m.matches.WithLabelValues(catalog, result).Inc()
	if result == ResultHit || result == ResultEmpty {
		m.matchDuration.WithLabelValues(catalog).Observe(took.Seconds())
		m.resultSize.Observe(float64(size))
	}
}

// ObserveJob records a job reaching a terminal state. It has the shape of jobs.Observer.
func (m *Metrics) ObserveJob(jobType model.JobType, status model.JobStatus, took time.Duration) {
	if m == nil {
		return
	}
	m.jobs.WithLabelValues(string(jobType), string(status)).Inc()
	if status == model.JobStatusCompleted {
		m.jobDuration.WithLabelValues(string(jobType)).Observe(took.Seconds())
	}
}
