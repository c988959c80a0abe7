package apperrors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTooManyAttempts    = errors.New("too many login attempts")
	ErrUnauthenticated    = errors.New("authentication required")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrInvalidUpload    = errors.New("invalid upload")

	// User errors
	ErrUserNotFound       = fmt.Errorf("%w: user", ErrResourceNotFound)
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// Learning errors. The not-found variants also match ErrResourceNotFound.
var (
	ErrCourseNotFound       = fmt.Errorf("%w: course", ErrResourceNotFound)
	ErrLessonNotFound       = fmt.Errorf("%w: lesson", ErrResourceNotFound)
	ErrQuizNotFound         = fmt.Errorf("%w: quiz", ErrResourceNotFound)
	ErrAlreadyEnrolled      = fmt.Errorf("%w: already enrolled", ErrConflict)
	ErrCertificateNotEarned = errors.New("course not completed")
)

// NewResourceNotFoundError creates a not-found error carrying a user-facing message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewForbiddenError creates a permission error carrying a user-facing message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewValidationError creates a validation error carrying a user-facing message
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// Is reports whether err matches target or any of errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// UserMessage returns the message attached through a CustomError, if any
func UserMessage(err error) (string, bool) {
	var ce *CustomError
	if errors.As(err, &ce) && ce.Message != "" {
		return ce.Message, true
	}
	return "", false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}
