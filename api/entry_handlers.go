package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AddEntriesHandler upserts one entry or an array of entries in a background job.
func (api *API) AddEntriesHandler(c *gin.Context) {
	name := c.Param("name")

	var raw interface{}
	if err := c.ShouldBindJSON(&raw); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	entries, result := ParseEntries(raw)
	if result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	jobID, err := api.engine.ImportEntriesAsync(name, entries)
	if err != nil {
		SendEngineError(c, "import entries", err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"status":      "accepted",
		"message":     fmt.Sprintf("Entry import started for catalog '%s' (%d entries)", name, len(entries)),
		"job_id":      jobID,
		"entry_count": len(entries),
	})
}

// EntryListRequest defines the query parameters of entry listing requests
type EntryListRequest struct {
	Page     int `form:"page" json:"page"`
	PageSize int `form:"page_size" json:"page_size"`
}

// ListEntriesHandler lists the entries of a catalog in stored order
func (api *API) ListEntriesHandler(c *gin.Context) {
	name := c.Param("name")

	var req EntryListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidRequest, "Invalid query parameters: "+err.Error())
		return
	}
	page, pageSize := ValidatePagination(req.Page, req.PageSize)

	entries, total, err := api.engine.ListEntries(name, (page-1)*pageSize, pageSize)
	if err != nil {
		SendEngineError(c, "list entries", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entries":   entries,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// GetEntryHandler returns one entry
func (api *API) GetEntryHandler(c *gin.Context) {
	name := c.Param("name")
	entryID := c.Param("entryId")
	if result := ValidateEntryID(entryID); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	entry, err := api.engine.GetEntry(name, entryID)
	if err != nil {
		SendEngineError(c, "get entry", err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// DeleteEntryHandler deletes one entry
func (api *API) DeleteEntryHandler(c *gin.Context) {
	name := c.Param("name")
	entryID := c.Param("entryId")
	if result := ValidateEntryID(entryID); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	if err := api.engine.DeleteEntry(name, entryID); err != nil {
		SendEngineError(c, "delete entry", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Entry '" + entryID + "' deleted from catalog '" + name + "'"})
}

// DeleteAllEntriesHandler empties a catalog in a background job
func (api *API) DeleteAllEntriesHandler(c *gin.Context) {
	name := c.Param("name")

	jobID, err := api.engine.DeleteAllEntriesAsync(name)
	if err != nil {
		SendEngineError(c, "delete all entries", err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"status":  "accepted",
		"message": fmt.Sprintf("Entry deletion started for catalog '%s'", name),
		"job_id":  jobID,
	})
}
