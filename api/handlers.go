package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gcbaptista/go-survey-catalog/services"
)

// API holds dependencies for API handlers.
type API struct {
	engine    services.CatalogService
	analytics services.DashboardProvider
}

// NewAPI creates a new API handler structure.
func NewAPI(engine services.CatalogService, analytics services.DashboardProvider) *API {
	return &API{
		engine:    engine,
		analytics: analytics,
	}
}

// SetupRoutes defines all the API routes of the catalog service.
func SetupRoutes(router *gin.Engine, engine services.CatalogService, analytics services.DashboardProvider) {
	apiHandler := NewAPI(engine, analytics)

	router.GET("/health", apiHandler.HealthCheckHandler)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/analytics", apiHandler.GetAnalyticsHandler)

	// Job management routes
	jobRoutes := router.Group("/jobs")
	{
		jobRoutes.GET("/metrics", apiHandler.GetJobMetricsHandler) // Get job performance metrics
		jobRoutes.GET("/:jobId", apiHandler.GetJobHandler)         // Get job status by ID
	}

	// Catalog management routes
	catalogRoutes := router.Group("/catalogs")
	{
		catalogRoutes.POST("", apiHandler.CreateCatalogHandler)                         // Create a new catalog
		catalogRoutes.GET("", apiHandler.ListCatalogsHandler)                           // List all catalogs
		catalogRoutes.GET("/:name", apiHandler.GetCatalogHandler)                       // Get catalog settings and size
		catalogRoutes.DELETE("/:name", apiHandler.DeleteCatalogHandler)                 // Delete a catalog
		catalogRoutes.PATCH("/:name/settings", apiHandler.UpdateCatalogSettingsHandler) // Update catalog settings
		catalogRoutes.GET("/:name/jobs", apiHandler.ListJobsHandler)                    // List jobs for a catalog

		// Entry management routes per catalog
		entryRoutes := catalogRoutes.Group("/:name/entries")
		{
			entryRoutes.PUT("", apiHandler.AddEntriesHandler)              // Add/Update entries
			entryRoutes.GET("", apiHandler.ListEntriesHandler)             // List entries with pagination
			entryRoutes.DELETE("", apiHandler.DeleteAllEntriesHandler)     // Delete all entries
			entryRoutes.GET("/:entryId", apiHandler.GetEntryHandler)       // Get specific entry
			entryRoutes.DELETE("/:entryId", apiHandler.DeleteEntryHandler) // Delete specific entry
		}

		// Match route per catalog
		catalogRoutes.POST("/:name/_match", apiHandler.MatchHandler)
	}
}
