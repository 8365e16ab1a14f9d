package scanner

import (
	"context"
	"errors"
	"strings"
	"time"
)

// timeSleep is a wrapper for time.After that can be overridden in tests.
// It returns a channel that receives after the given duration.
//
// The interface type `interface{ Nanoseconds() int64 }` is used instead of
// time.Duration to accept any duration-like type, providing flexibility for
// test mocking while maintaining type safety.
//
//nolint:gochecknoglobals // Required for test mocking
var timeSleep = func(d interface{ Nanoseconds() int64 }) <-chan time.Time {
	return time.After(time.Duration(d.Nanoseconds()))
}

// isRetryableAttempt classifies an error from a single fetch attempt.
// Each attempt runs under its own deadline, so a slow site surfaces as
// context.DeadlineExceeded; that is a per-site timeout and retryable as
// long as the parent context is still live. A done parent means the
// whole scan is shutting down and nothing is retried.
func isRetryableAttempt(parent context.Context, err error) bool {
	if parent.Err() != nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	return isRetryable(err)
}

// isRetryable determines whether a fetch error should be retried.
// Returns false for non-retryable errors (context errors, malformed URLs,
// TLS failures, redirect loops). Returns true for transient errors
// (connection resets, DNS hiccups).
func isRetryable(err error) bool {
	if err == nil {
		return false
	}

	// Context errors are not retryable
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	errStr := strings.ToLower(err.Error())

	// Malformed or unsupported URLs never improve on retry
	if strings.Contains(errStr, "unsupported protocol scheme") ||
		strings.Contains(errStr, "missing protocol scheme") ||
		strings.Contains(errStr, "invalid url") {
		return false
	}

	// Redirect loops are a server-side configuration, not a transient fault
	if strings.Contains(errStr, "stopped after") && strings.Contains(errStr, "redirects") {
		return false
	}

	// TLS certificate problems are not transient
	if strings.Contains(errStr, "x509:") ||
		strings.Contains(errStr, "certificate") {
		return false
	}

	// All other errors are considered transient and retryable
	// (connection resets, timeouts, DNS failures, etc.)
	return true
}
