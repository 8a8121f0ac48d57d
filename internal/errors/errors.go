package errors

import (
	"errors"
	"fmt"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   appErr,
		}
	}
	return &AppError{
		Code:    "INTERNAL_ERROR",
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// GetCode returns the error code if it's an AppError, otherwise returns "UNKNOWN"
func GetCode(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return "UNKNOWN"
}

// Predefined error codes
const (
	CodeConfigInvalid   = "CONFIG_INVALID"
	CodeValidationError = "VALIDATION_ERROR"
	CodeNotFound        = "NOT_FOUND"
	CodeInternalError   = "INTERNAL_ERROR"
	CodeInvalidInput    = "INVALID_INPUT"
	CodeRenderFailed    = "RENDER_FAILED"
)

// Common error constructors
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func ValidationError(message string) *AppError {
	return New(CodeValidationError, message)
}

func NotFound(resource string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", resource))
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}

func RenderFailed(err error, message string) error {
	if err == nil {
		return nil
	}
	return &AppError{Code: CodeRenderFailed, Message: message, Cause: err}
}

// MissingResultError is the hard failure raised when a required
// precomputed result is absent from the annotation store. It names the
// missing key and the upstream computation expected to populate it.
// Soft diagnostics (e.g. a missing color palette) are never modeled with
// this type; they are logged warnings.
type MissingResultError struct {
	Key  string
	Hint string
}

func (e *MissingResultError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("result %q not found in uns: %s", e.Key, e.Hint)
	}
	return fmt.Sprintf("result %q not found in uns", e.Key)
}

// MissingResult creates a MissingResultError for key with a remediation hint
func MissingResult(key, hint string) *MissingResultError {
	return &MissingResultError{Key: key, Hint: hint}
}

// IsMissingResult checks if an error is (or wraps) a MissingResultError
func IsMissingResult(err error) bool {
	var target *MissingResultError
	return errors.As(err, &target)
}

// AsMissingResult unwraps a MissingResultError when present
func AsMissingResult(err error) (*MissingResultError, bool) {
	var target *MissingResultError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}
