package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-survey-catalog/model"
)

// GetJobHandler handles requests to get job status by ID
func (api *API) GetJobHandler(c *gin.Context) {
	jobID := c.Param("jobId")

	job, err := api.engine.GetJob(jobID)
	if err != nil {
		SendJobNotFoundError(c, jobID)
		return
	}
	c.JSON(http.StatusOK, job)
}

// ListJobsHandler handles requests to list jobs for a catalog
func (api *API) ListJobsHandler(c *gin.Context) {
	name := c.Param("name")
	if _, err := api.engine.GetCatalog(name); err != nil {
		SendEngineError(c, "list jobs", err)
		return
	}

	var statusFilter *model.JobStatus
	if statusParam := c.Query("status"); statusParam != "" {
		status := model.JobStatus(statusParam)
		statusFilter = &status
	}

	jobs := api.engine.ListJobs(name, statusFilter)
	c.JSON(http.StatusOK, gin.H{
		"jobs":         jobs,
		"catalog_name": name,
		"total":        len(jobs),
	})
}

// GetJobMetricsHandler handles requests to get job performance metrics
func (api *API) GetJobMetricsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"metrics":          api.engine.GetJobMetrics(),
		"success_rate":     api.engine.GetJobSuccessRate(),
		"current_workload": api.engine.GetCurrentWorkload(),
	})
}
