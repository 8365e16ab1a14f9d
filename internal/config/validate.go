package config

import (
	"fmt"
	"net/url"

	"github.com/AlexanderOtavka/polyfill-io-scanner/internal/errors"
)

// Validation limits.
const (
	// MaxWorkers caps the worker pool size to keep the scan polite.
	MaxWorkers = 256

	// MaxRetries caps retry attempts per site.
	MaxRetries = 10
)

// Validate checks a Config for invalid values.
// Returns a sentinel-wrapped error describing the first problem found.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.ErrConfigNil
	}

	if err := validateSites(&cfg.Sites); err != nil {
		return err
	}
	if err := validateScan(&cfg.Scan); err != nil {
		return err
	}
	return validateHTTP(&cfg.HTTP)
}

// validateSites checks the sites section.
func validateSites(s *SitesConfig) error {
	if s.URL == "" {
		return fmt.Errorf("%w: sites.url %w", errors.ErrConfigInvalidSites, errors.ErrEmptyValue)
	}
	u, err := url.Parse(s.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%w: sites.url %q: %w", errors.ErrConfigInvalidSites, s.URL, errors.ErrInvalidURL)
	}
	if s.MaxAge < 0 {
		return fmt.Errorf("%w: sites.max_age must not be negative: %w", errors.ErrConfigInvalidSites, errors.ErrValueOutOfRange)
	}
	return nil
}

// validateScan checks the scan section.
func validateScan(s *ScanConfig) error {
	if s.Keyword == "" {
		return fmt.Errorf("%w: scan.keyword %w", errors.ErrConfigInvalidScan, errors.ErrEmptyValue)
	}
	if s.MaxRank < 1 {
		return fmt.Errorf("%w: scan.max_rank must be at least 1: %w", errors.ErrConfigInvalidScan, errors.ErrValueOutOfRange)
	}
	if s.MaxSites < 0 {
		return fmt.Errorf("%w: scan.max_sites must not be negative: %w", errors.ErrConfigInvalidScan, errors.ErrValueOutOfRange)
	}
	if s.Workers < 1 || s.Workers > MaxWorkers {
		return fmt.Errorf("%w: scan.workers must be in range 1-%d: %w", errors.ErrConfigInvalidScan, MaxWorkers, errors.ErrValueOutOfRange)
	}
	if s.Timeout <= 0 {
		return fmt.Errorf("%w: scan.timeout must be positive: %w", errors.ErrConfigInvalidScan, errors.ErrValueOutOfRange)
	}
	if s.Retries < 0 || s.Retries > MaxRetries {
		return fmt.Errorf("%w: scan.retries must be in range 0-%d: %w", errors.ErrConfigInvalidScan, MaxRetries, errors.ErrValueOutOfRange)
	}
	if s.RetryBackoff < 0 {
		return fmt.Errorf("%w: scan.retry_backoff must not be negative: %w", errors.ErrConfigInvalidScan, errors.ErrValueOutOfRange)
	}
	return nil
}

// validateHTTP checks the http section.
func validateHTTP(h *HTTPConfig) error {
	if h.UserAgent == "" {
		return fmt.Errorf("%w: http.user_agent %w", errors.ErrConfigInvalidHTTP, errors.ErrEmptyValue)
	}
	if h.DownloadTimeout <= 0 {
		return fmt.Errorf("%w: http.download_timeout must be positive: %w", errors.ErrConfigInvalidHTTP, errors.ErrValueOutOfRange)
	}
	return nil
}
