package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/go-survey-catalog/config"
)

func TestValidationResult_AddError(t *testing.T) {
	result := &ValidationResult{Valid: true}
	assert.False(t, result.HasErrors())

	result.AddError("field1", "error message")

	assert.False(t, result.Valid)
	assert.True(t, result.HasErrors())
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "field1", result.Errors[0].Field)
	assert.Equal(t, "error message", result.Errors[0].Message)
}

func TestValidateCatalogName(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expectErr bool
	}{
		{"valid", "rules", false},
		{"empty", "", true},
		{"leading space", " rules", true},
		{"trailing space", "rules ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectErr, ValidateCatalogName(tt.input).HasErrors())
		})
	}
}

func TestValidateEntryID(t *testing.T) {
	assert.False(t, ValidateEntryID("abc").HasErrors())
	assert.True(t, ValidateEntryID("").HasErrors())
	assert.True(t, ValidateEntryID(" abc").HasErrors())
}

func TestValidateCatalogSettings(t *testing.T) {
	assert.True(t, ValidateCatalogSettings(nil).HasErrors())

	settings := &config.CatalogSettings{Name: "rules", Fields: []string{"species"}}
	assert.False(t, ValidateCatalogSettings(settings).HasErrors())
	assert.Equal(t, config.WildcardNull, settings.WildcardPolicy, "defaults are applied")

	bad := &config.CatalogSettings{Name: "rules", Fields: []string{"species", "species", ""}}
	result := ValidateCatalogSettings(bad)
	assert.GreaterOrEqual(t, len(result.Errors), 2)
}

func TestValidatePagination(t *testing.T) {
	tests := []struct {
		name                     string
		page, pageSize           int
		expectedPage, expectedPS int
	}{
		{"defaults", 0, 0, 1, defaultPageSize},
		{"negative", -1, -5, 1, defaultPageSize},
		{"valid", 3, 25, 3, 25},
		{"capped", 1, 1000, 1, maxPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, pageSize := ValidatePagination(tt.page, tt.pageSize)
			assert.Equal(t, tt.expectedPage, page)
			assert.Equal(t, tt.expectedPS, pageSize)
		})
	}
}

func TestParseEntries(t *testing.T) {
	entries, result := ParseEntries(map[string]interface{}{"species": 1.0})
	assert.False(t, result.HasErrors())
	assert.Len(t, entries, 1)

	entries, result = ParseEntries([]interface{}{
		map[string]interface{}{"species": 1.0},
		map[string]interface{}{"species": 2.0},
	})
	assert.False(t, result.HasErrors())
	assert.Len(t, entries, 2)

	_, result = ParseEntries([]interface{}{map[string]interface{}{}, "nope"})
	require.True(t, result.HasErrors())
	assert.Equal(t, "entries[1]", result.Errors[0].Field)

	_, result = ParseEntries([]interface{}{})
	assert.True(t, result.HasErrors())

	_, result = ParseEntries(42.0)
	assert.True(t, result.HasErrors())
}
