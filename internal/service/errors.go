package service

import (
	"errors"
	"strings"

	"github.com/Yassen717/ModBlog/internal/validator"
)

var (
	// ErrNotFound is returned when the addressed record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidBulkAction is returned for an unknown bulk comment action.
	ErrInvalidBulkAction = errors.New("invalid bulk action")
	// ErrUnknownResource is returned when an export names an unknown collection.
	ErrUnknownResource = errors.New("unknown resource")
	// ErrUnsupportedFormat is returned for an export format other than csv or ndjson.
	ErrUnsupportedFormat = errors.New("unsupported format")
)

// ValidationError carries a client-facing message and per-field details.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// newValidationError wraps an ozzo validation result. A nil err yields nil.
func newValidationError(err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{
		Message: "Validation failed",
		Fields:  validator.FieldErrors(err),
	}
}

// missingFields builds the error returned when required input is absent.
// names lists every required field, not only the missing ones.
func missingFields(names ...string) *ValidationError {
	label := "Missing required field: "
	if len(names) > 1 {
		label = "Missing required fields: "
	}
	return &ValidationError{
		Message: label + strings.Join(names, ", "),
		Fields:  map[string]string{},
	}
}
