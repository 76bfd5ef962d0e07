package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/go-survey-catalog/model"
)

// counterValue sums every sample of the named counter whose labels include want
func counterValue(t *testing.T, reg *prometheus.Registry, name string, want map[string]string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)

	total := 0.0
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, metric := range family.GetMetric() {
			labels := make(map[string]string)
			for _, pair := range metric.GetLabel() {
				labels[pair.GetName()] = pair.GetValue()
			}
			matches := true
			for k, v := range want {
				if labels[k] != v {
					matches = false
				}
			}
			if matches {
				total += metric.GetCounter().GetValue()
			}
		}
	}
	return total
}

func histogramCount(t *testing.T, reg *prometheus.Registry, name string) uint64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)

	var count uint64
	for _, family := range families {
		if family.GetName() == name {
			for _, metric := range family.GetMetric() {
				count += metric.GetHistogram().GetSampleCount()
			}
		}
	}
	return count
}

func TestMetrics_ObserveMatch(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveMatch("rules", ResultHit, 2*time.Millisecond, 3)
	m.ObserveMatch("rules", ResultHit, time.Millisecond, 1)
	m.ObserveMatch("rules", ResultEmpty, time.Millisecond, 0)
	m.ObserveMatch("rules", ResultRejected, 0, 0)
	m.ObserveMatch("other", ResultTimeout, 0, 0)

	assert.Equal(t, 2.0, counterValue(t, reg, "catalog_match_total", map[string]string{"catalog": "rules", "result": "hit"}))
	assert.Equal(t, 4.0, counterValue(t, reg, "catalog_match_total", map[string]string{"catalog": "rules"}))
	assert.Equal(t, 1.0, counterValue(t, reg, "catalog_match_total", map[string]string{"result": "timeout"}))
	assert.Equal(t, uint64(3), histogramCount(t, reg, "catalog_match_duration_seconds"))
	assert.Equal(t, uint64(3), histogramCount(t, reg, "catalog_match_result_size"))
}

func TestMetrics_ObserveJob(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveJob(model.JobTypeImportEntries, model.JobStatusCompleted, time.Second)
	m.ObserveJob(model.JobTypeImportEntries, model.JobStatusFailed, time.Second)
	m.ObserveJob(model.JobTypeDeleteAllEntries, model.JobStatusCompleted, time.Millisecond)

	assert.Equal(t, 1.0, counterValue(t, reg, "catalog_jobs_total", map[string]string{"type": "import_entries", "status": "failed"}))
	assert.Equal(t, 2.0, counterValue(t, reg, "catalog_jobs_total", map[string]string{"status": "completed"}))
	assert.Equal(t, uint64(2), histogramCount(t, reg, "catalog_job_duration_seconds"))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveMatch("rules", ResultHit, time.Millisecond, 1)
		m.ObserveJob(model.JobTypeImportEntries, model.JobStatusCompleted, time.Second)
	})
}
