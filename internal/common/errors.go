package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Error taxonomy. SoftParseFailure has no sentinel: single-line/token failures
// are absorbed inside the classifier and never surface past it.
var (
	// ErrNotFound covers absent documents, pages, and cache entries.
	ErrNotFound = errors.New("resource not found")
	// ErrUnparsable means no extraction strategy yielded table data for a
	// document; the batch continues, the artifact records the outcome.
	ErrUnparsable = errors.New("no extraction strategy yielded data")
	// ErrExternalService covers OCR and text-generation collaborator failures.
	ErrExternalService = errors.New("external service failure")
	ErrInvalidInput    = errors.New("invalid input")
	ErrInternal        = errors.New("internal error")
)

// NewAppError constructs an AppError.
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WrapError tags an error with one of the sentinels above so callers can
// branch with errors.Is. The cause, when present, stays unwrappable too.
func WrapError(sentinel error, message string, cause error) error {
	if cause == nil {
		return fmt.Errorf("%s: %w", message, sentinel)
	}
	return fmt.Errorf("%s: %w: %w", message, sentinel, cause)
}
