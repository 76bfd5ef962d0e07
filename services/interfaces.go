package services

import (
	"context"

	"github.com/gcbaptista/go-survey-catalog/config"
	"github.com/gcbaptista/go-survey-catalog/internal/jobs"
	"github.com/gcbaptista/go-survey-catalog/model"
)

// CatalogLister exposes the catalogs known to the service
type CatalogLister interface {
	ListCatalogs() []model.Catalog
}

// CatalogManager manages the lifecycle of catalogs
type CatalogManager interface {
	CatalogLister
	CreateCatalog(settings config.CatalogSettings) (model.Catalog, error)
	GetCatalog(name string) (model.Catalog, error)
	UpdateCatalogSettings(name string, settings config.CatalogSettings) (model.Catalog, error)
	DeleteCatalog(name string) error
}

// EntryManager defines operations on the rows of a catalog
type EntryManager interface {
	AddEntries(catalogName string, entries []model.Entry) ([]model.Entry, error)
	GetEntry(catalogName, entryID string) (model.Entry, error)
	ListEntries(catalogName string, offset, limit int) ([]model.Entry, int, error)
	DeleteEntry(catalogName, entryID string) error
	DeleteAllEntries(catalogName string) error
}

// AsyncEntryManager runs bulk entry operations as background jobs
type AsyncEntryManager interface {
	ImportEntriesAsync(catalogName string, entries []model.Entry) (string, error) // Returns job ID
	DeleteAllEntriesAsync(catalogName string) (string, error)                     // Returns job ID
}

// EntryMatcher finds the best matching entries of a catalog for a query
type EntryMatcher interface {
	Match(ctx context.Context, catalogName string, query model.Query) (model.MatchResult, error)
}

// JobManager defines operations for inspecting background jobs
type JobManager interface {
	GetJob(jobID string) (*model.Job, error)
	ListJobs(catalogName string, status *model.JobStatus) []*model.Job
}

// JobMetricsProvider reports on background job performance
type JobMetricsProvider interface {
	GetJobMetrics() jobs.JobMetricsData
	GetJobSuccessRate() float64
	GetCurrentWorkload() int64
}

// DashboardProvider builds the analytics dashboard
type DashboardProvider interface {
	GetDashboardData() model.AnalyticsDashboard
}

// MatchTracker receives one event per completed match
type MatchTracker interface {
	TrackMatchEvent(event model.MatchEvent)
}

// CatalogService is everything the HTTP layer needs from the engine
type CatalogService interface {
	CatalogManager
	EntryManager
	AsyncEntryManager
	EntryMatcher
	JobManager
	JobMetricsProvider
}
