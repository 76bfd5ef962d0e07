package errors

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for common error conditions
var (
	// ErrCatalogNotFound is returned when a catalog is not found
	ErrCatalogNotFound = errors.New("catalog not found")

	// ErrCatalogAlreadyExists is returned when trying to create a catalog that already exists
	ErrCatalogAlreadyExists = errors.New("catalog already exists")

	// ErrEntryNotFound is returned when an entry is not found
	ErrEntryNotFound = errors.New("entry not found")

	// ErrJobNotFound is returned when a job is not found
	ErrJobNotFound = errors.New("job not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrQueryTooWide is returned when a query names more fields than the catalog allows
	ErrQueryTooWide = errors.New("query too wide")

	// ErrMatchTimeout is returned when a match exceeds its time budget
	ErrMatchTimeout = errors.New("match timed out")
)

// CatalogNotFoundError represents a catalog not found error with context
type CatalogNotFoundError struct {
	CatalogName string
}

func (e *CatalogNotFoundError) Error() string {
	return fmt.Sprintf("catalog named '%s' not found", e.CatalogName)
}

func (e *CatalogNotFoundError) Is(target error) bool {
	return target == ErrCatalogNotFound
}

// NewCatalogNotFoundError creates a new CatalogNotFoundError
func NewCatalogNotFoundError(catalogName string) *CatalogNotFoundError {
	return &CatalogNotFoundError{CatalogName: catalogName}
}

// CatalogAlreadyExistsError represents a catalog already exists error with context
type CatalogAlreadyExistsError struct {
	CatalogName string
}

func (e *CatalogAlreadyExistsError) Error() string {
	return fmt.Sprintf("catalog named '%s' already exists", e.CatalogName)
}

func (e *CatalogAlreadyExistsError) Is(target error) bool {
	return target == ErrCatalogAlreadyExists
}

// NewCatalogAlreadyExistsError creates a new CatalogAlreadyExistsError
func NewCatalogAlreadyExistsError(catalogName string) *CatalogAlreadyExistsError {
	return &CatalogAlreadyExistsError{CatalogName: catalogName}
}

// EntryNotFoundError represents an entry not found error with context
type EntryNotFoundError struct {
	EntryID     string
	CatalogName string
}

func (e *EntryNotFoundError) Error() string {
	if e.CatalogName != "" {
		return fmt.Sprintf("entry with ID '%s' not found in catalog '%s'", e.EntryID, e.CatalogName)
	}
	return fmt.Sprintf("entry with ID '%s' not found", e.EntryID)
}

func (e *EntryNotFoundError) Is(target error) bool {
	return target == ErrEntryNotFound
}

// NewEntryNotFoundError creates a new EntryNotFoundError
func NewEntryNotFoundError(entryID string, catalogName ...string) *EntryNotFoundError {
	err := &EntryNotFoundError{EntryID: entryID}
	if len(catalogName) > 0 {
		err.CatalogName = catalogName[0]
	}
	return err
}

// JobNotFoundError represents a job not found error with context
type JobNotFoundError struct {
	JobID string
}

func (e *JobNotFoundError) Error() string {
	return fmt.Sprintf("job with ID '%s' not found", e.JobID)
}

func (e *JobNotFoundError) Is(target error) bool {
	return target == ErrJobNotFound
}

// NewJobNotFoundError creates a new JobNotFoundError
func NewJobNotFoundError(jobID string) *JobNotFoundError {
	return &JobNotFoundError{JobID: jobID}
}

// ValidationError represents an input validation error with context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// QueryTooWideError is returned before matching when a query exceeds the catalog's width bound
type QueryTooWideError struct {
	CatalogName string
	Fields      int
	Limit       int
}

func (e *QueryTooWideError) Error() string {
	return fmt.Sprintf("query on catalog '%s' names %d fields, the limit is %d", e.CatalogName, e.Fields, e.Limit)
}

func (e *QueryTooWideError) Is(target error) bool {
	return target == ErrQueryTooWide || target == ErrInvalidInput
}

// NewQueryTooWideError creates a new QueryTooWideError
func NewQueryTooWideError(catalogName string, fields, limit int) *QueryTooWideError {
	return &QueryTooWideError{CatalogName: catalogName, Fields: fields, Limit: limit}
}

// MatchTimeoutError reports a match abandoned after its time budget
type MatchTimeoutError struct {
	CatalogName string
	Budget      time.Duration
}

func (e *MatchTimeoutError) Error() string {
	return fmt.Sprintf("match on catalog '%s' exceeded its %v budget", e.CatalogName, e.Budget)
}

func (e *MatchTimeoutError) Is(target error) bool {
	return target == ErrMatchTimeout
}

// NewMatchTimeoutError creates a new MatchTimeoutError
func NewMatchTimeoutError(catalogName string, budget time.Duration) *MatchTimeoutError {
	return &MatchTimeoutError{CatalogName: catalogName, Budget: budget}
}
