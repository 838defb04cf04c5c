package services

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by a service that is not an internal
// failure wraps exactly one of these.
var (
	ErrValidation          = errors.New("validation failed")
	ErrNotFound            = errors.New("not found")
	ErrConstraintViolation = errors.New("constraint violation")
)

var (
	ErrOrganizationNotFound = fmt.Errorf("organization %w", ErrNotFound)
	ErrUserNotFound         = fmt.Errorf("user %w", ErrNotFound)
	ErrSlugTaken            = fmt.Errorf("%w: slug already exists", ErrConstraintViolation)
	ErrEmailTaken           = fmt.Errorf("%w: email already exists", ErrConstraintViolation)
	ErrNoLogoFile           = &ValidationError{Field: "logo", Message: "No file uploaded", Missing: true}
)

// ValidationError reports missing or malformed input.
type ValidationError struct {
	Field   string
	Message string
	// Missing is set when the field was required and absent.
	Missing bool
	// Fields maps every offending field to its message when more than one
	// field failed.
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// LogoTooLargeError reports a logo above the configured size limit.
func LogoTooLargeError(limit int64) *ValidationError {
	return &ValidationError{
		Field:   "logo",
		Message: fmt.Sprintf("File too large. Maximum size is %d bytes", limit),
	}
}
