package extract

import (
	"errors"
	"fmt"
)

// Common extraction errors
var (
	// ErrFieldNotFound is returned when a field's patterns match nowhere
	// in the document text.
	ErrFieldNotFound = errors.New("field not found in document text")

	// ErrAmountNotFound is returned when neither amount pattern matches.
	// The amount has no tolerable fallback, so this fails the document.
	ErrAmountNotFound = errors.New("grid-access amount not found in document text")

	// ErrUnknownMonth is returned when a long-form date carries a month
	// name outside the French month table.
	ErrUnknownMonth = errors.New("unrecognized French month name")

	// ErrInvalidDate is returned when a matched date string cannot be
	// parsed into a calendar date.
	ErrInvalidDate = errors.New("invalid date value")
)

// FieldError wraps an extraction failure with the field it concerns, so the
// orchestrator can log failures uniformly per document and stage.
type FieldError struct {
	// Field is the logical field name (e.g. "amount", "period_start").
	Field string

	// Err is the underlying error.
	Err error

	// Value is the offending matched text, when there was a match.
	Value string
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("extract: field %q: %v (value: %q)", e.Field, e.Err, e.Value)
	}
	return fmt.Sprintf("extract: field %q: %v", e.Field, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *FieldError) Unwrap() error {
	return e.Err
}

func newFieldError(field string, err error, value string) *FieldError {
	return &FieldError{Field: field, Err: err, Value: value}
}
