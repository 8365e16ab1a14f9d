// Package errors provides centralized error handling for polyscan.
//
// This package defines sentinel errors used for programmatic error categorization
// throughout the application. All error types can be checked using errors.Is().
//
// IMPORTANT: This package MUST NOT import any other internal packages.
// Only standard library imports are allowed.
package errors

import "errors"

// Sentinel errors for error categorization.
// These allow callers to check error types with errors.Is().
// All errors use lowercase descriptions per Go conventions.
var (
	// ErrConfigNil indicates that a nil config was passed to validation.
	ErrConfigNil = errors.New("config is nil")

	// ErrConfigInvalidSites indicates an invalid sites configuration value.
	ErrConfigInvalidSites = errors.New("invalid sites configuration")

	// ErrConfigInvalidScan indicates an invalid scan configuration value.
	ErrConfigInvalidScan = errors.New("invalid scan configuration")

	// ErrConfigInvalidHTTP indicates an invalid HTTP configuration value.
	ErrConfigInvalidHTTP = errors.New("invalid HTTP configuration")

	// ErrInvalidOutputFormat indicates an invalid output format was specified.
	ErrInvalidOutputFormat = errors.New("invalid output format")

	// ErrEmptyValue indicates that a required value was empty.
	ErrEmptyValue = errors.New("value cannot be empty")

	// ErrValueOutOfRange indicates that a value is outside the allowed range.
	ErrValueOutOfRange = errors.New("value out of range")

	// ErrInvalidURL indicates a malformed or unsupported URL.
	ErrInvalidURL = errors.New("invalid URL")

	// ErrDatasetDownload indicates the top-sites dataset could not be downloaded.
	ErrDatasetDownload = errors.New("dataset download failed")

	// ErrDatasetDecode indicates the top-sites dataset could not be decompressed or parsed.
	ErrDatasetDecode = errors.New("dataset decode failed")

	// ErrDatasetEmpty indicates the top-sites dataset contained no usable rows.
	ErrDatasetEmpty = errors.New("dataset contains no sites")

	// ErrCacheMiss indicates no cached dataset exists on disk.
	ErrCacheMiss = errors.New("dataset cache miss")

	// ErrCacheCorrupted indicates the cached dataset file is unreadable.
	ErrCacheCorrupted = errors.New("dataset cache corrupted")

	// ErrFetchFailed indicates a homepage fetch failed after all retries.
	ErrFetchFailed = errors.New("homepage fetch failed")

	// ErrEmptyContent indicates a homepage fetch succeeded but returned no content.
	ErrEmptyContent = errors.New("homepage returned no content")

	// ErrNoSites indicates that filtering left no sites to scan.
	ErrNoSites = errors.New("no sites to scan")

	// ErrMaxRetriesExceeded indicates the maximum retry attempts have been reached.
	ErrMaxRetriesExceeded = errors.New("maximum retry attempts exceeded")

	// ErrOperationCanceled indicates the user canceled an operation.
	ErrOperationCanceled = errors.New("operation canceled by user")
)

// ExitCode2Error wraps an error to indicate exit code 2 should be used.
type ExitCode2Error struct {
	Err error
}

// NewExitCode2Error wraps an error to indicate exit code 2.
func NewExitCode2Error(err error) *ExitCode2Error {
	return &ExitCode2Error{Err: err}
}

// Error implements the error interface.
func (e *ExitCode2Error) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ExitCode2Error) Unwrap() error {
	return e.Err
}

// IsExitCode2Error checks if an error should result in exit code 2.
func IsExitCode2Error(err error) bool {
	var e *ExitCode2Error
	return errors.As(err, &e)
}
