package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoteNotFound signals a missing note.
	ErrNoteNotFound = errors.New("note not found")
	// ErrIndexNotFound signals a missing note index record.
	ErrIndexNotFound = errors.New("note index not found")
	// ErrValidationFailed signals rejected field attributes or values.
	ErrValidationFailed = errors.New("validation failed")
	// ErrInvalidCondition signals a malformed search or facet condition.
	ErrInvalidCondition = errors.New("invalid condition")
	// ErrForbidden signals an access attempt by a non-owner.
	ErrForbidden = errors.New("forbidden")
)

// ValidationError wraps ErrValidationFailed with the individual check outcomes
// for one field, so callers can render exhaustive diagnostics.
type ValidationError struct {
	Field   string
	Reasons []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf(
		"%s: field %q: %s",
		ErrValidationFailed.Error(), e.Field, strings.Join(e.Reasons, "; "),
	)
}

func (e *ValidationError) Unwrap() error { return ErrValidationFailed }

// NewValidationError creates a validation error for one field.
func NewValidationError(field string, reasons []string) error {
	return &ValidationError{Field: field, Reasons: reasons}
}
