// Package api exposes catalogs, entries, matching and jobs over HTTP.
package api

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-survey-catalog/config"
	"github.com/gcbaptista/go-survey-catalog/model"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// ValidationError represents a validation error with field context
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult holds the result of validation operations
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// AddError adds a validation error to the result
func (vr *ValidationResult) AddError(field, message string) {
	vr.Valid = false
	vr.Errors = append(vr.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors
func (vr *ValidationResult) HasErrors() bool {
	return len(vr.Errors) > 0
}

// ValidateCatalogName validates a catalog name parameter
func ValidateCatalogName(catalogName string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if catalogName == "" {
		result.AddError("catalogName", "Catalog name is required")
		return result
	}
	if strings.TrimSpace(catalogName) != catalogName {
		result.AddError("catalogName", "Catalog name cannot have leading or trailing whitespace")
	}
	return result
}

// ValidateEntryID validates an entry ID parameter
func ValidateEntryID(entryID string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if entryID == "" {
		result.AddError("entryID", "Entry ID is required")
		return result
	}
	if strings.TrimSpace(entryID) != entryID {
		result.AddError("entryID", "Entry ID cannot have leading or trailing whitespace")
	}
	return result
}

// ValidateCatalogSettings applies defaults and reports every settings problem
func ValidateCatalogSettings(settings *config.CatalogSettings) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if settings == nil {
		result.AddError("settings", "Catalog settings are required")
		return result
	}

	settings.ApplyDefaults()
	for _, problem := range settings.Validate() {
		result.AddError("settings", problem)
	}
	return result
}

// ValidatePagination clamps pagination parameters to sane values
func ValidatePagination(page, pageSize int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

// ParseEntries accepts a decoded JSON body holding one entry object or an array of them
func ParseEntries(raw interface{}) ([]model.Entry, *ValidationResult) {
	result := &ValidationResult{Valid: true}

	switch body := raw.(type) {
	case map[string]interface{}:
		return []model.Entry{body}, result
	case []interface{}:
		if len(body) == 0 {
			result.AddError("entries", "No entries provided")
			return nil, result
		}
		entries := make([]model.Entry, 0, len(body))
		for i, item := range body {
			entry, ok := item.(map[string]interface{})
			if !ok {
				result.AddError(fmt.Sprintf("entries[%d]", i), "Entry is not a valid object")
				continue
			}
			entries = append(entries, entry)
		}
		return entries, result
	default:
		result.AddError("request_body", "Expecting an entry object or an array of entries")
		return nil, result
	}
}

// SendValidationError sends a standardized validation error response
func SendValidationError(c *gin.Context, result *ValidationResult) {
	SendStructuredValidationError(c, result)
}
