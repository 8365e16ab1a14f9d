// Package sites obtains the top-sites dataset: a gzipped CSV of
// origin,rank pairs downloaded from a configurable URL and cached on disk.
package sites

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/AlexanderOtavka/polyfill-io-scanner/internal/clock"
	"github.com/AlexanderOtavka/polyfill-io-scanner/internal/config"
	"github.com/AlexanderOtavka/polyfill-io-scanner/internal/ctxutil"
	"github.com/AlexanderOtavka/polyfill-io-scanner/internal/domain"
	"github.com/AlexanderOtavka/polyfill-io-scanner/internal/errors"
)

// HTTPClient abstracts HTTP operations for testing.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client fetches the top-sites dataset with disk caching.
type Client struct {
	url        string
	userAgent  string
	maxAge     time.Duration
	httpClient HTTPClient
	cache      *Cache
	clock      clock.Clock
}

// NewClient creates a dataset client from config.
func NewClient(cfg *config.Config, cache *Cache) *Client {
	return &Client{
		url:       cfg.Sites.URL,
		userAgent: cfg.HTTP.UserAgent,
		maxAge:    cfg.Sites.MaxAge,
		httpClient: &http.Client{
			Timeout: cfg.HTTP.DownloadTimeout,
		},
		cache: cache,
		clock: clock.RealClock{},
	}
}

// NewClientWithDeps creates a dataset client with custom dependencies.
// This is used for testing.
func NewClientWithDeps(cfg *config.Config, cache *Cache, httpClient HTTPClient, clk clock.Clock) *Client {
	c := NewClient(cfg, cache)
	if httpClient != nil {
		c.httpClient = httpClient
	}
	if clk != nil {
		c.clock = clk
	}
	return c
}

// Fetch returns the full dataset in its original (rank) order.
//
// The disk cache is served when younger than sites.max_age. When refresh
// is true or the cache is stale or missing, the dataset is re-downloaded
// and the cache rewritten. A failed download falls back to a stale cache
// with a warning, except under refresh: a caller who forced a download
// gets the download's error, never silently recycled data. With no cache
// at all a failed download is always an error.
func (c *Client) Fetch(ctx context.Context, refresh bool) ([]domain.Site, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return nil, err
	}

	logger := zerolog.Ctx(ctx).With().Str("component", "sites").Logger()

	cached, writtenAt, cacheErr := c.cache.Read()
	if !refresh && cacheErr == nil && c.fresh(writtenAt) {
		logger.Debug().Time("written_at", writtenAt).Msg("serving dataset from cache")
		return Parse(logger, cached)
	}
	if cacheErr != nil && !stderrors.Is(cacheErr, errors.ErrCacheMiss) {
		logger.Warn().Err(cacheErr).Msg("dataset cache unreadable, re-downloading")
	}

	raw, err := c.download(ctx)
	if err != nil {
		// Stale cache beats no data: a scan against a slightly old
		// dataset is still meaningful. An explicit refresh is the
		// exception; recycling the cache there would hide the failure.
		if cacheErr == nil && !refresh {
			logger.Warn().Err(err).Time("written_at", writtenAt).
				Msg("dataset download failed, falling back to stale cache")
			return Parse(logger, cached)
		}
		return nil, err
	}

	if err := c.cache.Write(raw); err != nil {
		// A scan can proceed without a cache; the next run just re-downloads.
		logger.Warn().Err(err).Msg("failed to write dataset cache")
	} else {
		logger.Info().Str("url", c.url).Int("bytes", len(raw)).Msg("dataset downloaded and cached")
	}

	return Parse(logger, raw)
}

// fresh reports whether a cache written at t is still within max_age.
// A max_age of 0 disables expiry, matching the original behavior of a
// cache that never refreshes on its own.
func (c *Client) fresh(t time.Time) bool {
	if c.maxAge == 0 {
		return true
	}
	return c.clock.Now().Sub(t) < c.maxAge
}

// download fetches the raw gzipped dataset bytes.
func (c *Client) download(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrDatasetDownload, err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrDatasetDownload, err)
	}
	defer resp.Body.Close() //nolint:errcheck // HTTP response body close

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d from %s", errors.ErrDatasetDownload, resp.StatusCode, c.url)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %w", errors.ErrDatasetDownload, err)
	}
	return raw, nil
}
