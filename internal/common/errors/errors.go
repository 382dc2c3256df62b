// Package errors provides standardized error handling for the document
// processing pipeline.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Validation errors. Recovered locally into a single operator-facing
	// message before any file I/O is attempted.
	ErrCodeEmptyField         ErrorCode = "EMPTY_FIELD"
	ErrCodeFormatMismatch     ErrorCode = "FORMAT_MISMATCH"
	ErrCodeCrossFieldMismatch ErrorCode = "CROSS_FIELD_MISMATCH"

	// Document I/O errors. These abort the writer that raised them; the
	// source file is never touched because writes only target new paths.
	ErrCodeSourceNotFound      ErrorCode = "SOURCE_NOT_FOUND"
	ErrCodeDocumentOpenFailure ErrorCode = "DOCUMENT_OPEN_FAILURE"
	ErrCodeDocumentSaveFailure ErrorCode = "DOCUMENT_SAVE_FAILURE"

	// ErrCodePartialTraversalFailure is non-fatal: a failure inside the
	// catch-all traversal pass is logged and the rest of the replacement
	// result remains usable.
	ErrCodePartialTraversalFailure ErrorCode = "PARTIAL_TRAVERSAL_FAILURE"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// CodeOf extracts the ErrorCode from err, or empty when err is not a
// StandardError.
func CodeOf(err error) ErrorCode {
	var se *StandardError
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}

// ==========================
// 2. Error Constructors
// ==========================

// NewEmptyFieldError creates a non-retryable validation error for a blank or
// whitespace-only field.
func NewEmptyFieldError(fieldName string) *StandardError {
	return &StandardError{
		Code:      ErrCodeEmptyField,
		Message:   fmt.Sprintf("%s must not be empty", fieldName),
		Details:   fmt.Sprintf("fieldName: %s", fieldName),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewFormatMismatchError creates a non-retryable validation error carrying
// the expected format and a human-readable example.
func NewFormatMismatchError(fieldName, format, example string) *StandardError {
	return &StandardError{
		Code:    ErrCodeFormatMismatch,
		Message: fmt.Sprintf("%s has an invalid format", fieldName),
		Details: fmt.Sprintf("expected format: %s, example: %s", format, example),
		Metadata: map[string]interface{}{
			"fieldName": fieldName,
			"format":    format,
			"example":   example,
		},
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCrossFieldMismatchError creates a non-retryable consistency error
// reporting both extracted segments so the operator can see which inputs
// disagree.
func NewCrossFieldMismatchError(manufacturingSegment, orderSegment string) *StandardError {
	return &StandardError{
		Code:    ErrCodeCrossFieldMismatch,
		Message: "manufacturing number and order number do not reference the same sequence",
		Details: fmt.Sprintf("manufacturing segment: %s, order segment: %s",
			manufacturingSegment, orderSegment),
		Metadata: map[string]interface{}{
			"manufacturingSegment": manufacturingSegment,
			"orderSegment":         orderSegment,
		},
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSourceNotFoundError creates a non-retryable error for a missing input
// document.
func NewSourceNotFoundError(path string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSourceNotFound,
		Message:   "source document not found",
		Details:   fmt.Sprintf("path: %s", path),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDocumentOpenFailureError creates a non-retryable document open error.
func NewDocumentOpenFailureError(path string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDocumentOpenFailure,
		Message:   "failed to open document",
		Details:   fmt.Sprintf("path: %s, error: %s", path, err.Error()),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDocumentSaveFailureError creates a retryable document save error.
func NewDocumentSaveFailureError(path string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDocumentSaveFailure,
		Message:   "failed to save document",
		Details:   fmt.Sprintf("path: %s, error: %s", path, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewPartialTraversalFailureError creates a non-fatal traversal error. It is
// logged by the replacement engine, never propagated.
func NewPartialTraversalFailureError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodePartialTraversalFailure,
		Message:   "document traversal failed in catch-all pass",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}
