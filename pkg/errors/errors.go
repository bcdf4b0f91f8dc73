// Package errors provides structured error types for flexline.
//
// Every error that crosses a package boundary (engine, scene loader,
// pipeline, HTTP API) carries a machine-readable [Code] so that:
//   - the CLI can print a short user message without the code prefix
//   - the API can map codes to HTTP status codes
//   - tests can assert on the failure category instead of message text
//
// # Error Codes
//
// Codes follow a hierarchical naming convention:
//   - INVALID_*: Input or configuration validation failures
//   - NOT_FOUND / FILE_NOT_FOUND: Missing resources
//   - SCRIPT_ERROR: Failures inside user-supplied measure scripts
//   - INTERNAL_ERROR / UNSUPPORTED: Everything else
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidConfiguration, "unknown direction %d", d)
//	if errors.Is(err, errors.ErrCodeInvalidConfiguration) {
//	    // Handle bad container configuration
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeFileNotFound, origErr, "read scene %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput         Code = "INVALID_INPUT"
	ErrCodeInvalidConfiguration Code = "INVALID_CONFIGURATION"
	ErrCodeInvalidItem          Code = "INVALID_ITEM"
	ErrCodeInvalidFormat        Code = "INVALID_FORMAT"
	ErrCodeInvalidStyle         Code = "INVALID_STYLE"
	ErrCodeInvalidScene         Code = "INVALID_SCENE"
	ErrCodeInvalidPath          Code = "INVALID_PATH"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Measurement errors
	ErrCodeScript Code = "SCRIPT_ERROR"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
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

// IsValidation reports whether err belongs to the INVALID_* family.
func IsValidation(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidConfiguration, ErrCodeInvalidItem,
		ErrCodeInvalidFormat, ErrCodeInvalidStyle, ErrCodeInvalidScene, ErrCodeInvalidPath:
		return true
	}
	return false
}
