// Package jobs runs catalog maintenance work in the background with a bounded number of workers.
package jobs

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gcbaptista/go-survey-catalog/internal/errors"
	"github.com/gcbaptista/go-survey-catalog/model"
)

const (
	cleanupInterval = time.Hour
	finishedJobTTL  = 24 * time.Hour
)

// Func is the work a job performs. ctx is cancelled when the manager stops.
type Func func(ctx context.Context, job model.Job) error

// Observer is told about every job that reaches a terminal state.
type Observer func(jobType model.JobType, status model.JobStatus, took time.Duration)

// Manager handles background job execution and tracking
type Manager struct {
	mu        sync.RWMutex
	jobs      map[string]*model.Job
	workers   chan struct{} // limits concurrent jobs
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	stopOnce  sync.Once
	stopped   bool
	metrics   *JobMetrics
	observers []Observer
}

// NewManager creates a new job manager with specified worker count
func NewManager(maxWorkers int, observers ...Observer) *Manager {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		jobs:      make(map[string]*model.Job),
		workers:   make(chan struct{}, maxWorkers),
		ctx:       ctx,
		cancel:    cancel,
		metrics:   NewJobMetrics(),
		observers: observers,
	}
}

// Start starts the background cleanup of finished jobs
func (m *Manager) Start() {
	log.Printf("Info: Job manager started with %d max workers", cap(m.workers))

	m.wg.Add(1)
	go m.cleanupRoutine()
}

// Stop cancels running jobs and waits for them to return. Safe to call more than once.
func (m *Manager) Stop() {
	m.stopOnce.Do(func() {
		m.mu.Lock()
		m.stopped = true
		m.mu.Unlock()

		m.cancel()
		m.wg.Wait()
		log.Printf("Info: Job manager stopped")
	})
}

// CreateJob registers a pending job and returns its ID
func (m *Manager) CreateJob(jobType model.JobType, catalogName string, metadata map[string]string) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	job := &model.Job{
		ID:          uuid.New().String(),
		Type:        jobType,
		Status:      model.JobStatusPending,
		CatalogName: catalogName,
		CreatedAt:   time.Now(),
		Metadata:    metadata,
	}

	m.jobs[job.ID] = job
	m.metrics.RecordJobCreated(jobType)
	log.Printf("Info: Created job %s (type: %s) for catalog '%s'", job.ID, job.Type, job.CatalogName)
	return job.ID
}

// GetJob retrieves a copy of a job by ID
func (m *Manager) GetJob(jobID string) (*model.Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	job, exists := m.jobs[jobID]
	if !exists {
		return nil, errors.NewJobNotFoundError(jobID)
	}
	return copyJob(job), nil
}

// ListJobs returns the jobs of a catalog, oldest first, optionally filtered by status
func (m *Manager) ListJobs(catalogName string, status *model.JobStatus) []*model.Job {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*model.Job, 0)
	for _, job := range m.jobs {
		if job.CatalogName != catalogName {
			continue
		}
		if status != nil && job.Status != *status {
			continue
		}
		result = append(result, copyJob(job))
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result
}

// ExecuteJob runs fn for a pending job in the background. The job waits for a free worker
// slot without blocking the caller.
func (m *Manager) ExecuteJob(jobID string, fn Func) error {
	m.mu.Lock()
	if m.stopped {
		m.mu.Unlock()
		return fmt.Errorf("job manager is shutting down")
	}
	job, exists := m.jobs[jobID]
	if !exists {
		m.mu.Unlock()
		return errors.NewJobNotFoundError(jobID)
	}
	if job.Status != model.JobStatusPending {
		m.mu.Unlock()
		return fmt.Errorf("job with ID '%s' is not in pending status (current: %s)", jobID, job.Status)
	}
	snapshot := *job
	m.wg.Add(1)
	m.mu.Unlock()

	go func() {
		defer m.wg.Done()

		select {
		case m.workers <- struct{}{}:
		case <-m.ctx.Done():
			m.finish(jobID, model.JobStatusCancelled, "job manager shutting down", 0)
			return
		}
		defer func() { <-m.workers }()

		m.markRunning(jobID)
		startTime := time.Now()
		err := fn(m.ctx, snapshot)
		took := time.Since(startTime)

		switch {
		case err != nil && m.ctx.Err() != nil:
			m.finish(jobID, model.JobStatusCancelled, err.Error(), took)
			log.Printf("Warning: Job %s cancelled after %v: %v", jobID, took, err)
		case err != nil:
			m.finish(jobID, model.JobStatusFailed, err.Error(), took)
			log.Printf("Warning: Job %s failed after %v: %v", jobID, took, err)
		default:
			m.finish(jobID, model.JobStatusCompleted, "", took)
			log.Printf("Info: Job %s completed in %v", jobID, took)
		}
	}()

	return nil
}

// UpdateJobProgress updates the progress of a running job
func (m *Manager) UpdateJobProgress(jobID string, current, total int, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	job, exists := m.jobs[jobID]
	if !exists {
		return
	}
	if job.Progress == nil {
		job.Progress = &model.JobProgress{}
	}
	job.Progress.Current = current
	job.Progress.Total = total
	job.Progress.Message = message
}

func (m *Manager) markRunning(jobID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	job, exists := m.jobs[jobID]
	if !exists {
		return
	}
	now := time.Now()
	job.StartedAt = &now
	m.metrics.RecordJobStatusChange(job.Status, model.JobStatusRunning)
	job.Status = model.JobStatusRunning
}

func (m *Manager) finish(jobID string, status model.JobStatus, errorMsg string, took time.Duration) {
	m.mu.Lock()
	job, exists := m.jobs[jobID]
	if !exists {
		m.mu.Unlock()
		return
	}
	jobType := job.Type
	m.metrics.RecordJobStatusChange(job.Status, status)
	job.Status = status
	job.Error = errorMsg
	now := time.Now()
	job.CompletedAt = &now
	switch status {
	case model.JobStatusCompleted:
		m.metrics.RecordJobCompleted(jobType, took)
	case model.JobStatusFailed:
		m.metrics.RecordJobFailed(jobType)
	}
	m.mu.Unlock()

	for _, observe := range m.observers {
		observe(jobType, status, took)
	}
}

func (m *Manager) cleanupRoutine() {
	defer m.wg.Done()

	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.CleanupOldJobs(finishedJobTTL)
		case <-m.ctx.Done():
			return
		}
	}
}

// CleanupOldJobs removes finished jobs that completed more than maxAge ago
func (m *Manager) CleanupOldJobs(maxAge time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	cleaned := 0
	for jobID, job := range m.jobs {
		if job.CompletedAt != nil && job.CompletedAt.Before(cutoff) {
			delete(m.jobs, jobID)
			cleaned++
		}
	}

	if cleaned > 0 {
		log.Printf("Info: Cleaned up %d old jobs", cleaned)
	}
	return cleaned
}

// GetMetrics returns current job performance metrics
func (m *Manager) GetMetrics() JobMetricsData {
	return m.metrics.GetMetrics()
}

// GetJobSuccessRate returns the overall job success rate
func (m *Manager) GetJobSuccessRate() float64 {
	return m.metrics.GetSuccessRate()
}

// GetCurrentWorkload returns the number of pending and running jobs
func (m *Manager) GetCurrentWorkload() int64 {
	return m.metrics.GetCurrentWorkload()
}

func copyJob(job *model.Job) *model.Job {
	jobCopy := *job
	if job.Progress != nil {
		progressCopy := *job.Progress
		jobCopy.Progress = &progressCopy
	}
	if job.Metadata != nil {
		jobCopy.Metadata = make(map[string]string, len(job.Metadata))
		for k, v := range job.Metadata {
			jobCopy.Metadata[k] = v
		}
	}
	return &jobCopy
}
