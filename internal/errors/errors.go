// Package errors defines stable error codes for rasr failure modes.
//
// Per-file and per-signature failures inside the analysis core are never
// surfaced as errors; they are skipped or contribute zero evidence. The
// codes here cover invalid invocation arguments and collaborator failures
// (config, catalogs, snapshot store).
package errors

import (
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// ProjectNotFound indicates the project root does not exist or is not a directory
	ProjectNotFound ErrorCode = "PROJECT_NOT_FOUND"
	// ManifestInvalid indicates a Cargo.toml that could not be decoded
	ManifestInvalid ErrorCode = "MANIFEST_INVALID"
	// CatalogInvalid indicates a signature catalog file that could not be decoded
	CatalogInvalid ErrorCode = "CATALOG_INVALID"
	// ConfigInvalid indicates a broken .rasr/config.json
	ConfigInvalid ErrorCode = "CONFIG_INVALID"
	// SnapshotNotFound indicates a snapshot id that does not exist in the store
	SnapshotNotFound ErrorCode = "SNAPSHOT_NOT_FOUND"
	// InternalError indicates unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// RasrError represents a rasr error with a stable code and message
type RasrError struct {
	Code    ErrorCode   `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	cause   error       // Underlying error (not exported to JSON)
}

// New creates a new RasrError
func New(code ErrorCode, message string, cause error) *RasrError {
	return &RasrError{
		Code:    code,
		Message: message,
		cause:   cause,
	}
}

// Error implements the error interface
func (e *RasrError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *RasrError) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *RasrError) WithDetails(details interface{}) *RasrError {
	e.Details = details
	return e
}
