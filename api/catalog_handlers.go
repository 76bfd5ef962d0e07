package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-survey-catalog/config"
)

// CreateCatalogHandler handles the request to create a new catalog.
// Request Body: config.CatalogSettings
func (api *API) CreateCatalogHandler(c *gin.Context) {
	var settings config.CatalogSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	if result := ValidateCatalogSettings(&settings); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	created, err := api.engine.CreateCatalog(settings)
	if err != nil {
		SendEngineError(c, "create catalog", err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// ListCatalogsHandler lists every catalog
func (api *API) ListCatalogsHandler(c *gin.Context) {
	catalogs := api.engine.ListCatalogs()
	c.JSON(http.StatusOK, gin.H{
		"catalogs": catalogs,
		"total":    len(catalogs),
	})
}

// GetCatalogHandler returns the settings and size of one catalog
func (api *API) GetCatalogHandler(c *gin.Context) {
	name := c.Param("name")

	catalog, err := api.engine.GetCatalog(name)
	if err != nil {
		SendEngineError(c, "get catalog", err)
		return
	}
	c.JSON(http.StatusOK, catalog)
}

// UpdateCatalogSettingsHandler replaces the settings of a catalog.
// The body may omit the name; a different name is rejected.
func (api *API) UpdateCatalogSettingsHandler(c *gin.Context) {
	name := c.Param("name")
	if result := ValidateCatalogName(name); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	var settings config.CatalogSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		SendInvalidJSONError(c, err)
		return
	}
	if settings.Name != "" && settings.Name != name {
		result := &ValidationResult{Valid: true}
		result.AddError("name", "Catalog name cannot be changed through a settings update")
		SendValidationError(c, result)
		return
	}

	updated, err := api.engine.UpdateCatalogSettings(name, settings)
	if err != nil {
		SendEngineError(c, "update catalog settings", err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteCatalogHandler deletes a catalog and all of its entries
func (api *API) DeleteCatalogHandler(c *gin.Context) {
	name := c.Param("name")

	if err := api.engine.DeleteCatalog(name); err != nil {
		SendEngineError(c, "delete catalog", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Catalog '" + name + "' deleted"})
}
