package scanner

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/AlexanderOtavka/polyfill-io-scanner/internal/config"
	"github.com/AlexanderOtavka/polyfill-io-scanner/internal/constants"
	"github.com/AlexanderOtavka/polyfill-io-scanner/internal/errors"
)

// HTTPClient abstracts HTTP operations for testing.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Fetcher retrieves homepage content with per-request timeouts and
// retry-with-backoff for transient failures.
type Fetcher struct {
	httpClient HTTPClient
	userAgent  string
	timeout    time.Duration
	retries    int
	backoff    time.Duration
}

// NewFetcher creates a Fetcher from config.
//
// The underlying http.Client carries no global timeout; each attempt is
// bounded by a context deadline instead, so a slow site cannot eat into
// another attempt's budget. Redirects follow the default policy (10),
// matching how the original tool fetched homepages.
func NewFetcher(cfg *config.Config) *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{},
		userAgent:  cfg.HTTP.UserAgent,
		timeout:    cfg.Scan.Timeout,
		retries:    cfg.Scan.Retries,
		backoff:    cfg.Scan.RetryBackoff,
	}
}

// NewFetcherWithClient creates a Fetcher with a custom HTTP client.
// This is used for testing.
func NewFetcherWithClient(cfg *config.Config, httpClient HTTPClient) *Fetcher {
	f := NewFetcher(cfg)
	if httpClient != nil {
		f.httpClient = httpClient
	}
	return f
}

// FetchHomepage fetches the homepage of origin and returns its content.
// Transient failures are retried up to the configured retry count with
// multiplicative backoff. Returns the content, the number of attempts
// made, and the final error if all attempts failed.
//
// Any HTTP response counts as content regardless of status code; the
// caller matches the keyword against whatever the site actually serves.
func (f *Fetcher) FetchHomepage(ctx context.Context, origin string) (string, int, error) {
	logger := zerolog.Ctx(ctx)

	var lastErr error
	attempts := 0
	for attempt := 0; attempt <= f.retries; attempt++ {
		attempts++
		content, err := f.fetchOnce(ctx, origin)
		if err == nil {
			return content, attempts, nil
		}
		lastErr = err

		if !isRetryableAttempt(ctx, err) {
			logger.Debug().Err(err).Str("origin", origin).Msg("fetch error not retryable")
			break
		}
		if attempt == f.retries {
			break
		}

		delay := f.backoff << attempt
		logger.Debug().Err(err).Str("origin", origin).
			Dur("backoff", delay).Int("attempt", attempts).
			Msg("retrying homepage fetch")

		select {
		case <-ctx.Done():
			return "", attempts, ctx.Err()
		case <-timeSleep(delay):
		}
	}

	return "", attempts, fmt.Errorf("%w: %s: %w", errors.ErrFetchFailed, origin, lastErr)
}

// fetchOnce performs a single fetch attempt bounded by the per-request timeout.
func (f *Fetcher) fetchOnce(ctx context.Context, origin string) (string, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, origin, nil)
	if err != nil {
		return "", fmt.Errorf("invalid url %q: %w", origin, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,*/*")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close() //nolint:errcheck // HTTP response body close

	// Cap the read to bound memory on pathological pages
	body, err := io.ReadAll(io.LimitReader(resp.Body, constants.MaxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("reading body of %s: %w", origin, err)
	}

	if resp.StatusCode != http.StatusOK {
		zerolog.Ctx(ctx).Debug().Str("origin", origin).Int("status", resp.StatusCode).
			Msg("homepage returned non-200 status")
	}

	return string(body), nil
}
