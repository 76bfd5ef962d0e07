// Package engine ties catalog storage, matching, background jobs, analytics and metrics together.
package engine

import (
	"log"
	"time"

	"github.com/gcbaptista/go-survey-catalog/config"
	"github.com/gcbaptista/go-survey-catalog/internal/catalog"
	"github.com/gcbaptista/go-survey-catalog/internal/jobs"
	"github.com/gcbaptista/go-survey-catalog/internal/metrics"
	"github.com/gcbaptista/go-survey-catalog/model"
	"github.com/gcbaptista/go-survey-catalog/services"
)

const (
	defaultMaxWorkers   = 4
	defaultMatchTimeout = 2 * time.Second
	importBatchSize     = 500
)

// Engine manages catalogs and answers match requests against them.
// It implements services.CatalogService.
type Engine struct {
	store        catalog.Store
	jobManager   *jobs.Manager
	tracker      services.MatchTracker
	metrics      *metrics.Metrics
	matchTimeout time.Duration
	maxWorkers   int
}

// Option configures an Engine
type Option func(*Engine)

// WithMatchTracker sends one event per match to tracker
func WithMatchTracker(tracker services.MatchTracker) Option {
	return func(e *Engine) { e.tracker = tracker }
}

// WithMetrics records match and job metrics
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithMatchTimeout bounds the wall-clock time of a single match. Zero or less disables the bound.
func WithMatchTimeout(timeout time.Duration) Option {
	return func(e *Engine) { e.matchTimeout = timeout }
}

// WithMaxWorkers sets how many background jobs run at once
func WithMaxWorkers(n int) Option {
	return func(e *Engine) { e.maxWorkers = n }
}

// NewEngine creates an engine over store and starts its job manager.
func NewEngine(store catalog.Store, opts ...Option) *Engine {
	eng := &Engine{
		store:        store,
		matchTimeout: defaultMatchTimeout,
		maxWorkers:   defaultMaxWorkers,
	}
	for _, opt := range opts {
		opt(eng)
	}

	eng.jobManager = jobs.NewManager(eng.maxWorkers, eng.metrics.ObserveJob)
	eng.jobManager.Start()

	log.Printf("Info: Engine ready with %d catalogs (match timeout %v)", len(store.ListCatalogs()), eng.matchTimeout)
	return eng
}

// Close stops background jobs
func (e *Engine) Close() {
	e.jobManager.Stop()
}

// CreateCatalog creates an empty catalog
func (e *Engine) CreateCatalog(settings config.CatalogSettings) (model.Catalog, error) {
	created, err := e.store.CreateCatalog(settings)
	if err != nil {
		return model.Catalog{}, err
	}
	log.Printf("Info: Catalog '%s' created with fields %v", created.Settings.Name, created.Settings.Fields)
	return created, nil
}

// GetCatalog returns a catalog description
func (e *Engine) GetCatalog(name string) (model.Catalog, error) {
	return e.store.GetCatalog(name)
}

// ListCatalogs returns every catalog sorted by name
func (e *Engine) ListCatalogs() []model.Catalog {
	return e.store.ListCatalogs()
}

// UpdateCatalogSettings replaces the settings of a catalog. Entries are kept as they are.
func (e *Engine) UpdateCatalogSettings(name string, settings config.CatalogSettings) (model.Catalog, error) {
	updated, err := e.store.UpdateSettings(name, settings)
	if err != nil {
		return model.Catalog{}, err
	}
	log.Printf("Info: Catalog '%s' settings updated (wildcard policy %s, max query fields %d)",
		name, updated.Settings.WildcardPolicy, updated.Settings.MaxQueryFields)
	return updated, nil
}

// DeleteCatalog deletes a catalog and its entries
func (e *Engine) DeleteCatalog(name string) error {
	if err := e.store.DeleteCatalog(name); err != nil {
		return err
	}
	log.Printf("Info: Catalog '%s' deleted", name)
	return nil
}

// GetJob returns a background job by ID
func (e *Engine) GetJob(jobID string) (*model.Job, error) {
	return e.jobManager.GetJob(jobID)
}

// ListJobs returns the jobs of a catalog
func (e *Engine) ListJobs(catalogName string, status *model.JobStatus) []*model.Job {
	return e.jobManager.ListJobs(catalogName, status)
}

// GetJobMetrics returns job performance metrics
func (e *Engine) GetJobMetrics() jobs.JobMetricsData {
	return e.jobManager.GetMetrics()
}

// GetJobSuccessRate returns the share of finished jobs that completed
func (e *Engine) GetJobSuccessRate() float64 {
	return e.jobManager.GetJobSuccessRate()
}

// GetCurrentWorkload returns the number of pending and running jobs
func (e *Engine) GetCurrentWorkload() int64 {
	return e.jobManager.GetCurrentWorkload()
}
