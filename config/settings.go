// Package config provides configuration structures for the catalog service.
// It defines per-catalog settings and the server configuration file.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	// WildcardNull treats only null (or a missing key) as a wildcard.
	WildcardNull = "null"
	// WildcardFalsy also treats false, numeric zero and the empty string as wildcards.
	WildcardFalsy = "falsy"

	// DefaultMaxQueryFields bounds the width of accepted queries when a catalog doesn't set one.
	DefaultMaxQueryFields = 10
	// HardMaxQueryFields is the widest query a catalog may allow. Search cost grows as 3^n.
	HardMaxQueryFields = 12
)

var settingsValidate = validator.New()

// CatalogSettings contains all configuration options for a catalog.
//
// Fields lists the lookup dimensions of the catalog (e.g. ["outcome", "species", "method", "season"]).
// It documents the catalog and, with StrictQueryFields, restricts which fields a query may name.
// Entries may carry additional payload fields that are never used for lookup.
type CatalogSettings struct {
	Name              string   `json:"name" yaml:"name" validate:"required,max=128"`
	Description       string   `json:"description,omitempty" yaml:"description"`
	Fields            []string `json:"fields" yaml:"fields" validate:"max=64,dive,required"`
	WildcardPolicy    string   `json:"wildcard_policy" yaml:"wildcard_policy" validate:"omitempty,oneof=null falsy"`
	MaxQueryFields    int      `json:"max_query_fields" yaml:"max_query_fields" validate:"gte=0,lte=12"`
	StrictQueryFields bool     `json:"strict_query_fields" yaml:"strict_query_fields"`
}

// ApplyDefaults fills unset options with their defaults.
func (settings *CatalogSettings) ApplyDefaults() {
	if settings.WildcardPolicy == "" {
		settings.WildcardPolicy = WildcardNull
	}
	if settings.MaxQueryFields == 0 {
		settings.MaxQueryFields = DefaultMaxQueryFields
	}
}

// Validate checks struct constraints and field names and returns every problem found.
func (settings *CatalogSettings) Validate() []string {
	var problems []string

	if err := settingsValidate.Struct(settings); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				problems = append(problems, describeFieldError(fe))
			}
		} else {
			problems = append(problems, err.Error())
		}
	}

	if strings.TrimSpace(settings.Name) != settings.Name {
		problems = append(problems, "Catalog name cannot have leading or trailing whitespace")
	}
	if strings.ContainsAny(settings.Name, `/\`) || settings.Name == "." || settings.Name == ".." {
		problems = append(problems, "Catalog name cannot contain path separators")
	}

	problems = append(problems, settings.ValidateFieldNames()...)
	return problems
}

// ValidateFieldNames validates field names for basic requirements.
func (settings *CatalogSettings) ValidateFieldNames() []string {
	conflicts := checkDuplicates("fields", settings.Fields)

	for _, field := range settings.Fields {
		if strings.TrimSpace(field) == "" {
			conflicts = append(conflicts, "Field name cannot be empty or whitespace-only")
		} else if field == "entryID" {
			conflicts = append(conflicts, "Field name 'entryID' is reserved")
		}
	}

	return conflicts
}

// HasField reports whether field is one of the catalog's lookup dimensions.
func (settings *CatalogSettings) HasField(field string) bool {
	for _, f := range settings.Fields {
		if f == field {
			return true
		}
	}
	return false
}

// checkDuplicates checks for duplicate values in a slice and returns error messages
func checkDuplicates(fieldName string, fields []string) []string {
	var errors []string
	seen := make(map[string]bool)

	for _, field := range fields {
		if seen[field] {
			errors = append(errors, "Duplicate field '"+field+"' found in "+fieldName)
		}
		seen[field] = true
	}

	return errors
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed '%s' validation", fe.Field(), fe.Tag())
	}
}
