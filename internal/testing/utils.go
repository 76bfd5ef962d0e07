// Package testing provides fixtures and helpers shared by the catalog service tests.
package testing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/go-survey-catalog/config"
	"github.com/gcbaptista/go-survey-catalog/model"
	"github.com/gcbaptista/go-survey-catalog/services"
)

// SurveyCatalogName is the name CreateSurveyCatalog registers the fixture under.
const SurveyCatalogName = "rules"

// SurveyFields are the lookup dimensions of the survey fixture, in catalog order.
var SurveyFields = []string{"outcome", "species", "method", "season"}

// CatalogWriter can create a catalog and fill it synchronously.
type CatalogWriter interface {
	services.CatalogManager
	services.EntryManager
}

// SurveyEntries returns the six-row survey catalog. Null values leave a field open.
func SurveyEntries() []model.Entry {
	return []model.Entry{
		{"entryID": "full", "outcome": 1.0, "species": 2.0, "method": 3.0, "season": 4.0},
		{"entryID": "open", "outcome": nil, "species": nil, "method": nil, "season": nil},
		{"entryID": "outcome-method", "outcome": 1.0, "species": nil, "method": 3.0, "season": nil},
		{"entryID": "species-season", "outcome": nil, "species": 2.0, "method": nil, "season": 4.0},
		{"entryID": "outcome-species", "outcome": 2.0, "species": 2.0, "method": nil, "season": nil},
		{"entryID": "outcome-season", "outcome": 3.0, "species": nil, "method": nil, "season": 4.0},
	}
}

// SurveyQuery returns {outcome: null, species: 2, method: 3, season: 4}.
// Against SurveyEntries it matches species-season, then open.
func SurveyQuery() model.Query {
	return model.NewQuery(
		model.Criterion{Field: "outcome", Value: nil},
		model.Criterion{Field: "species", Value: 2.0},
		model.Criterion{Field: "method", Value: 3.0},
		model.Criterion{Field: "season", Value: 4.0},
	)
}

// CreateSurveyCatalog creates the survey catalog and loads SurveyEntries into it.
// Each mutate func may adjust the settings before creation.
func CreateSurveyCatalog(t *testing.T, w CatalogWriter, mutate ...func(*config.CatalogSettings)) config.CatalogSettings {
	t.Helper()
	settings := config.CatalogSettings{
		Name:   SurveyCatalogName,
		Fields: append([]string{}, SurveyFields...),
	}
	for _, m := range mutate {
		m(&settings)
	}

	_, err := w.CreateCatalog(settings)
	require.NoError(t, err, "Failed to create survey catalog")
	_, err = w.AddEntries(settings.Name, SurveyEntries())
	require.NoError(t, err, "Failed to add survey entries")
	return settings
}

// EntryIDs lists the entry IDs of entries in order.
func EntryIDs(entries []model.Entry) []string {
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		id, _ := e.GetEntryID()
		ids = append(ids, id)
	}
	return ids
}

// JobPollingOptions configures job polling behavior
type JobPollingOptions struct {
	Timeout      time.Duration
	PollInterval time.Duration
}

// DefaultJobPollingOptions returns sensible defaults for job polling
func DefaultJobPollingOptions() JobPollingOptions {
	return JobPollingOptions{
		Timeout:      5 * time.Second,
		PollInterval: 5 * time.Millisecond,
	}
}

// WaitForJob polls a job until it reaches a final status and returns it
func WaitForJob(t *testing.T, jobManager services.JobManager, jobID string, opts JobPollingOptions) *model.Job {
	t.Helper()
	var job *model.Job
	require.Eventually(t, func() bool {
		current, err := jobManager.GetJob(jobID)
		if err != nil {
			return false
		}
		job = current
		return job.IsFinished()
	}, opts.Timeout, opts.PollInterval, "Job %s did not finish within %v", jobID, opts.Timeout)
	return job
}

// AssertJobCompleted verifies that a job completed successfully
func AssertJobCompleted(t *testing.T, job *model.Job, expectedType model.JobType, expectedCatalog string) {
	t.Helper()
	assert.Equal(t, model.JobStatusCompleted, job.Status, "Job should be completed")
	assert.Equal(t, expectedType, job.Type, "Job type should match")
	assert.Equal(t, expectedCatalog, job.CatalogName, "Job catalog name should match")
	assert.NotNil(t, job.CompletedAt, "Job should have completion timestamp")
	assert.Empty(t, job.Error, "Job should not have error")
}
