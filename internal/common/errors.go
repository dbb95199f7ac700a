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

// Common application errors. Callers classify with errors.Is.
var (
	// ErrNotFound: the lookup key has no row in the ledger. A normal
	// empty-result state for reconciliation, not a failure.
	ErrNotFound = errors.New("resource not found")

	// ErrOracle: the content-matching oracle errored or returned data we
	// could not use. Recovered locally via position fallback.
	ErrOracle = errors.New("oracle failure")

	// ErrValidation: malformed request; the operation was not attempted.
	ErrValidation = errors.New("validation failed")

	// ErrConflict: the ledger rejected an update because of a downstream
	// business lock (e.g., the line was already invoiced).
	ErrConflict = errors.New("conflict with downstream state")

	// ErrTransient: connectivity failure to the ledger or oracle. Retry
	// policy belongs to the caller.
	ErrTransient = errors.New("transient i/o error")
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// ValidationErrorf builds an ErrValidation-classified error.
func ValidationErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// ConflictErrorf builds an ErrConflict-classified error carrying a
// user-actionable message.
func ConflictErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}
