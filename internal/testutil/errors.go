// Package testutil provides testing utilities for polyscan.
//
// This package contains mock errors and test helpers used across test files.
// It should only be imported by test files (*_test.go).
package testutil

import "errors"

// Mock errors for testing purposes.
// These errors are used to simulate various failure scenarios in tests.
var (
	// ErrMockNetwork indicates a mock network error occurred (used in tests).
	ErrMockNetwork = errors.New("network error")

	// ErrMockTimeout indicates a mock timeout occurred (used in tests).
	ErrMockTimeout = errors.New("request timed out")

	// ErrMockNotFound indicates a mock resource was not found (used in tests).
	ErrMockNotFound = errors.New("not found")

	// ErrMockCacheUnavailable indicates a mock cache is unavailable (used in tests).
	ErrMockCacheUnavailable = errors.New("cache unavailable")
)
