package jobs

import (
	"sync"
	"time"

	"github.com/gcbaptista/go-survey-catalog/model"
)

// recentDurations is how many execution times are kept per job type
const recentDurations = 100

// JobMetricsData is a point-in-time copy of the job metrics
type JobMetricsData struct {
	JobsCreated          int64                           `json:"jobs_created"`
	JobsCompleted        int64                           `json:"jobs_completed"`
	JobsFailed           int64                           `json:"jobs_failed"`
	AverageExecutionTime time.Duration                   `json:"average_execution_time_ns"`
	AverageByType        map[model.JobType]time.Duration `json:"average_execution_time_by_type_ns"`
	JobsByType           map[model.JobType]int64         `json:"jobs_by_type"`
	JobsByStatus         map[model.JobStatus]int64       `json:"jobs_by_status"`
	SuccessRate          float64                         `json:"success_rate"`
	LastUpdated          time.Time                       `json:"last_updated"`
}

// JobMetrics tracks counters and execution times of jobs
type JobMetrics struct {
	mu           sync.RWMutex
	created      int64
	completed    int64
	failed       int64
	totalTime    time.Duration
	byType       map[model.JobType]int64
	byStatus     map[model.JobStatus]int64
	recentByType map[model.JobType][]time.Duration
	lastUpdated  time.Time
}

// NewJobMetrics creates a new metrics collector
func NewJobMetrics() *JobMetrics {
	return &JobMetrics{
		byType:       make(map[model.JobType]int64),
		byStatus:     make(map[model.JobStatus]int64),
		recentByType: make(map[model.JobType][]time.Duration),
		lastUpdated:  time.Now(),
	}
}

// RecordJobCreated counts a new pending job
func (m *JobMetrics) RecordJobCreated(jobType model.JobType) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.created++
	m.byType[jobType]++
	m.byStatus[model.JobStatusPending]++
	m.lastUpdated = time.Now()
}

// RecordJobStatusChange moves one job between status counters
func (m *JobMetrics) RecordJobStatusChange(oldStatus, newStatus model.JobStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if oldStatus != "" && m.byStatus[oldStatus] > 0 {
		m.byStatus[oldStatus]--
	}
	m.byStatus[newStatus]++
	m.lastUpdated = time.Now()
}

// RecordJobCompleted records successful job completion
func (m *JobMetrics) RecordJobCompleted(jobType model.JobType, took time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.completed++
	m.totalTime += took

	recent := append(m.recentByType[jobType], took)
	if len(recent) > recentDurations {
		recent = recent[len(recent)-recentDurations:]
	}
	m.recentByType[jobType] = recent
	m.lastUpdated = time.Now()
}

// RecordJobFailed records job failure
func (m *JobMetrics) RecordJobFailed(jobType model.JobType) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.failed++
	m.lastUpdated = time.Now()
}

// GetMetrics returns a copy of the current metrics
func (m *JobMetrics) GetMetrics() JobMetricsData {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data := JobMetricsData{
		JobsCreated:   m.created,
		JobsCompleted: m.completed,
		JobsFailed:    m.failed,
		AverageByType: make(map[model.JobType]time.Duration, len(m.recentByType)),
		JobsByType:    make(map[model.JobType]int64, len(m.byType)),
		JobsByStatus:  make(map[model.JobStatus]int64, len(m.byStatus)),
		SuccessRate:   m.successRate(),
		LastUpdated:   m.lastUpdated,
	}
	if m.completed > 0 {
		data.AverageExecutionTime = m.totalTime / time.Duration(m.completed)
	}
	for jobType := range m.recentByType {
		data.AverageByType[jobType] = m.averageByType(jobType)
	}
	for k, v := range m.byType {
		data.JobsByType[k] = v
	}
	for k, v := range m.byStatus {
		data.JobsByStatus[k] = v
	}
	return data
}

// GetAverageExecutionTimeByType returns the mean of the recent execution times of a job type
func (m *JobMetrics) GetAverageExecutionTimeByType(jobType model.JobType) time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.averageByType(jobType)
}

// GetSuccessRate returns the success rate (0.0 to 1.0)
func (m *JobMetrics) GetSuccessRate() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.successRate()
}

// GetCurrentWorkload returns the number of pending and running jobs
func (m *JobMetrics) GetCurrentWorkload() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.byStatus[model.JobStatusPending] + m.byStatus[model.JobStatusRunning]
}

func (m *JobMetrics) averageByType(jobType model.JobType) time.Duration {
	times := m.recentByType[jobType]
	if len(times) == 0 {
		return 0
	}
	var total time.Duration
	for _, t := range times {
		total += t
	}
	return total / time.Duration(len(times))
}

func (m *JobMetrics) successRate() float64 {
	finished := m.completed + m.failed
	if finished == 0 {
		return 1.0 // no jobs yet
	}
	return float64(m.completed) / float64(finished)
}
