// Package errors provides structured error types for the demise toolkit.
//
// Every failure that reaches the user carries a machine-readable [Code] and a
// human-readable message. The CLI prints the message and exits non-zero; the
// HTTP server maps codes to status codes with [HTTPStatus].
//
// # Error Codes
//
// Codes follow a loose naming convention:
//   - INVALID_*: input validation failures
//   - *_NOT_FOUND / UNKNOWN_*: a requested file or concept does not exist
//   - RENDER_FAILED, INTERNAL_ERROR: unexpected failures
//
// # Usage
//
//	err := errors.New(errors.ErrCodeUnknownRoot, "concept %q not found", id)
//	if errors.Is(err, errors.ErrCodeUnknownRoot) {
//	    // report and exit
//	}
//
//	err := errors.Wrap(errors.ErrCodeInputNotFound, origErr, "read %s", path)
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidFormat    Code = "INVALID_FORMAT"
	ErrCodeInvalidConceptID Code = "INVALID_CONCEPT_ID"
	ErrCodeInvalidOutput    Code = "INVALID_OUTPUT"
	ErrCodeInvalidConfig    Code = "INVALID_CONFIG"

	// Catalogue content errors
	ErrCodeDuplicateConcept Code = "DUPLICATE_CONCEPT"

	// Resource not found errors
	ErrCodeInputNotFound Code = "INPUT_NOT_FOUND"
	ErrCodeUnknownRoot   Code = "UNKNOWN_ROOT"

	// Internal errors
	ErrCodeRenderFailed Code = "RENDER_FAILED"
	ErrCodeInternal     Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// HTTPStatus maps an error to the status code the API responds with.
func HTTPStatus(err error) int {
	switch GetCode(err) {
	case ErrCodeUnknownRoot, ErrCodeInputNotFound:
		return http.StatusNotFound
	case ErrCodeInvalidInput, ErrCodeInvalidFormat, ErrCodeInvalidConceptID, ErrCodeInvalidOutput:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
