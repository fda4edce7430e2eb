// Package errors provides structured error types for twa-sdk-types.
//
// Every failure the scraper can hit is fatal: a generated declaration file
// with a silently wrong member is worse than no file at all. The codes below
// let callers and tests tell the failure categories apart without matching
// on message text.
//
// # Error Codes
//
// Extraction errors (raised by the core pipeline):
//   - MALFORMED_SIGNATURE: a method header does not match the accepted grammar
//   - MISSING_OVERRIDE: a method takes arguments but has no override entry
//   - ARITY_MISMATCH: parsed argument count differs from the override
//   - MISSING_SECTION: a referenced type has no heading/table in the document
//   - MISSING_EVENT_PAYLOAD: an event with a payload has no payload shape
//   - MALFORMED_TABLE: a description table row lacks the expected columns
//
// Ambient errors (input, configuration, network):
//   - INVALID_*: input validation failures
//   - NOT_FOUND, NETWORK_ERROR: document retrieval failures
//   - INTERNAL_ERROR: unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeMissingOverride, "%s.%s takes arguments", owner, fn)
//	if errors.Is(err, errors.ErrCodeMissingOverride) {
//	    // add the entry to overrides.toml
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeNetwork, origErr, "failed to fetch %s", url)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Extraction errors
	ErrCodeMalformedSignature  Code = "MALFORMED_SIGNATURE"
	ErrCodeMissingOverride     Code = "MISSING_OVERRIDE"
	ErrCodeArityMismatch       Code = "ARITY_MISMATCH"
	ErrCodeMissingSection      Code = "MISSING_SECTION"
	ErrCodeMissingEventPayload Code = "MISSING_EVENT_PAYLOAD"
	ErrCodeMalformedTable      Code = "MALFORMED_TABLE"

	// Input validation errors
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidOverrides Code = "INVALID_OVERRIDES"
	ErrCodeInvalidFormat    Code = "INVALID_FORMAT"
	ErrCodeInvalidPath      Code = "INVALID_PATH"

	// Retrieval errors
	ErrCodeNotFound Code = "NOT_FOUND"
	ErrCodeNetwork  Code = "NETWORK_ERROR"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
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
// The outermost *Error in the chain decides.
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
