package errors

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestCatalogNotFoundError(t *testing.T) {
	err := NewCatalogNotFoundError("count-rules")

	expectedMsg := "catalog named 'count-rules' not found"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	if !errors.Is(err, ErrCatalogNotFound) {
		t.Error("Expected error to match ErrCatalogNotFound sentinel")
	}

	if errors.Is(err, ErrEntryNotFound) {
		t.Error("Error should not match ErrEntryNotFound")
	}
}

func TestCatalogAlreadyExistsError(t *testing.T) {
	err := NewCatalogAlreadyExistsError("existing")

	expectedMsg := "catalog named 'existing' already exists"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	if !errors.Is(err, ErrCatalogAlreadyExists) {
		t.Error("Expected error to match ErrCatalogAlreadyExists sentinel")
	}
}

func TestEntryNotFoundError(t *testing.T) {
	err := NewEntryNotFoundError("rule-1")
	expectedMsg := "entry with ID 'rule-1' not found"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	err2 := NewEntryNotFoundError("rule-1", "count-rules")
	expectedMsg2 := "entry with ID 'rule-1' not found in catalog 'count-rules'"
	if err2.Error() != expectedMsg2 {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg2, err2.Error())
	}

	if !errors.Is(err, ErrEntryNotFound) || !errors.Is(err2, ErrEntryNotFound) {
		t.Error("Expected errors to match ErrEntryNotFound sentinel")
	}
}

func TestJobNotFoundError(t *testing.T) {
	err := NewJobNotFoundError("job-456")

	expectedMsg := "job with ID 'job-456' not found"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	if !errors.Is(err, ErrJobNotFound) {
		t.Error("Expected error to match ErrJobNotFound sentinel")
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("name", "cannot be empty")

	expectedMsg := "validation error for field 'name': cannot be empty"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	err2 := NewValidationError("", "cannot be empty")
	expectedMsg2 := "validation error: cannot be empty"
	if err2.Error() != expectedMsg2 {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg2, err2.Error())
	}

	if !errors.Is(err, ErrInvalidInput) || !errors.Is(err2, ErrInvalidInput) {
		t.Error("Expected validation errors to match ErrInvalidInput sentinel")
	}
}

func TestQueryTooWideError(t *testing.T) {
	err := NewQueryTooWideError("count-rules", 14, 10)

	expectedMsg := "query on catalog 'count-rules' names 14 fields, the limit is 10"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	// A too-wide query is also a plain input error
	if !errors.Is(err, ErrQueryTooWide) || !errors.Is(err, ErrInvalidInput) {
		t.Error("Expected error to match ErrQueryTooWide and ErrInvalidInput")
	}
}

func TestMatchTimeoutError(t *testing.T) {
	err := NewMatchTimeoutError("count-rules", 250*time.Millisecond)

	expectedMsg := "match on catalog 'count-rules' exceeded its 250ms budget"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	if !errors.Is(err, ErrMatchTimeout) {
		t.Error("Expected error to match ErrMatchTimeout sentinel")
	}
}

func TestErrorChaining(t *testing.T) {
	originalErr := NewCatalogNotFoundError("birds")
	wrappedErr := fmt.Errorf("loading snapshot: %w", originalErr)

	if !errors.Is(wrappedErr, ErrCatalogNotFound) {
		t.Error("Expected wrapped error to still match ErrCatalogNotFound sentinel")
	}

	var catalogErr *CatalogNotFoundError
	if !errors.As(wrappedErr, &catalogErr) {
		t.Fatal("Expected to be able to unwrap to CatalogNotFoundError")
	}

	if catalogErr.CatalogName != "birds" {
		t.Errorf("Expected catalog name 'birds', got '%s'", catalogErr.CatalogName)
	}
}
