// Package errors provides the coded error type shared by the adapter
// surfaces (HTTP, CLI, narrator). The engine itself never returns
// these: ambiguous input is not an error there.
package errors

import (
	"fmt"
)

// ErrorCode identifies a failure class across adapter boundaries.
type ErrorCode string

const (
	// ErrCodeInvalidArgument indicates malformed caller input, e.g. an
	// oversized raw string or an unparseable anchor instant.
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	// ErrCodeRateLimitExceeded indicates the client hit the limiter.
	ErrCodeRateLimitExceeded ErrorCode = "RATE_LIMIT_EXCEEDED"
	// ErrCodeNarratorUnavailable indicates the optional LLM narrator
	// could not be reached; the deterministic result is unaffected.
	ErrCodeNarratorUnavailable ErrorCode = "NARRATOR_UNAVAILABLE"
	// ErrCodeContextCanceled indicates the operation was canceled.
	ErrCodeContextCanceled ErrorCode = "CONTEXT_CANCELED"
	// ErrCodeTimeout indicates the operation timed out.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
	// ErrCodeInternal indicates a programmer error.
	ErrCodeInternal ErrorCode = "INTERNAL"
)

// APIError is a structured error with a stable code.
type APIError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *APIError) Unwrap() error {
	return e.Cause
}

// InvalidArgument creates an invalid argument error.
func InvalidArgument(msg string) *APIError {
	return &APIError{Code: ErrCodeInvalidArgument, Message: msg}
}

// RateLimitExceeded creates a rate limit exceeded error.
func RateLimitExceeded(msg string) *APIError {
	return &APIError{Code: ErrCodeRateLimitExceeded, Message: msg}
}

// NarratorUnavailable creates a narrator unavailable error.
func NarratorUnavailable(msg string, cause error) *APIError {
	return &APIError{Code: ErrCodeNarratorUnavailable, Message: msg, Cause: cause}
}

// Internal creates an internal error.
func Internal(msg string, cause error) *APIError {
	return &APIError{Code: ErrCodeInternal, Message: msg, Cause: cause}
}

// Wrap wraps an existing error with a code and message.
func Wrap(cause error, code ErrorCode, msg string) *APIError {
	return &APIError{Code: code, Message: msg, Cause: cause}
}

// IsCode checks whether an error carries a specific code.
func IsCode(err error, code ErrorCode) bool {
	if apiErr, ok := err.(*APIError); ok {
		return apiErr.Code == code
	}
	return false
}

// CodeOf extracts the code from any error, falling back to a default.
func CodeOf(err error, fallback ErrorCode) ErrorCode {
	if apiErr, ok := err.(*APIError); ok {
		return apiErr.Code
	}
	return fallback
}
