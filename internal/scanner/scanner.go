// Package scanner fetches homepages of the top sites concurrently and
// matches their content against a keyword.
package scanner

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/AlexanderOtavka/polyfill-io-scanner/internal/clock"
	"github.com/AlexanderOtavka/polyfill-io-scanner/internal/config"
	"github.com/AlexanderOtavka/polyfill-io-scanner/internal/ctxutil"
	"github.com/AlexanderOtavka/polyfill-io-scanner/internal/domain"
	"github.com/AlexanderOtavka/polyfill-io-scanner/internal/errors"
)

// ProgressFunc is called after each site completes, from the scan
// goroutines. Implementations must be safe for concurrent use.
type ProgressFunc func(completed, total int, result domain.PageResult)

// Scanner runs the concurrent homepage scan.
type Scanner struct {
	fetcher  *Fetcher
	keyword  string
	workers  int
	clock    clock.Clock
	progress ProgressFunc
	mu       sync.Mutex
}

// New creates a Scanner from config.
func New(cfg *config.Config) *Scanner {
	return &Scanner{
		fetcher: NewFetcher(cfg),
		keyword: cfg.Scan.Keyword,
		workers: cfg.Scan.Workers,
		clock:   clock.RealClock{},
	}
}

// NewWithDeps creates a Scanner with custom dependencies.
// This is used for testing.
func NewWithDeps(cfg *config.Config, fetcher *Fetcher, clk clock.Clock) *Scanner {
	s := New(cfg)
	if fetcher != nil {
		s.fetcher = fetcher
	}
	if clk != nil {
		s.clock = clk
	}
	return s
}

// SetProgress sets the progress callback. Must be called before Scan.
func (s *Scanner) SetProgress(fn ProgressFunc) {
	s.progress = fn
}

// Scan fetches every site's homepage and matches the keyword.
//
// Per-site failures never abort the scan: a failed or empty fetch is
// recorded in the report and excluded from matching, exactly as the
// original dropped rows without homepage content. Results keep the
// input (rank) order regardless of completion order. Scan returns an
// error only for an empty site list or context cancellation.
func (s *Scanner) Scan(ctx context.Context, siteList []domain.Site) (*domain.Report, error) {
	if len(siteList) == 0 {
		return nil, errors.ErrNoSites
	}
	if err := ctxutil.Canceled(ctx); err != nil {
		return nil, err
	}

	start := s.clock.Now()
	report := domain.NewReport(s.keyword, start)
	logger := zerolog.Ctx(ctx).With().
		Str("component", "scanner").
		Str("run_id", report.RunID).
		Logger()
	ctx = logger.WithContext(ctx)

	logger.Info().
		Int("sites", len(siteList)).
		Int("workers", s.workers).
		Str("keyword", s.keyword).
		Msg("starting homepage scan")

	results := make([]domain.PageResult, len(siteList))
	var completed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, site := range siteList {
		g.Go(func() error {
			// A canceled context is the only way a worker stops the run
			if err := ctxutil.Canceled(gctx); err != nil {
				return err
			}

			results[i] = s.scanSite(gctx, site)
			done := int(completed.Add(1))
			s.reportProgress(done, len(siteList), results[i])
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "scan aborted")
	}

	report.Results = results
	report.Finalize(s.clock.Now().Sub(start))

	logger.Info().
		Int("scanned", report.Scanned).
		Int("fetched", report.Fetched).
		Int("failed", report.Failed).
		Int("matches", len(report.Matches)).
		Dur("duration_ms", report.Duration).
		Msg("homepage scan completed")

	return report, nil
}

// scanSite fetches one homepage and matches the keyword against it.
func (s *Scanner) scanSite(ctx context.Context, site domain.Site) domain.PageResult {
	logger := zerolog.Ctx(ctx)
	start := s.clock.Now()

	content, attempts, err := s.fetcher.FetchHomepage(ctx, site.Origin)
	result := domain.PageResult{
		Site:     site,
		Attempts: attempts,
		Duration: s.clock.Now().Sub(start),
	}

	switch {
	case err != nil:
		logger.Error().Err(err).Str("origin", site.Origin).Msg("failed to fetch homepage")
		result.Status = domain.FetchStatusFailed
		result.Error = err.Error()
	case len(content) == 0:
		logger.Debug().Str("origin", site.Origin).Msg("homepage has no content")
		result.Status = domain.FetchStatusEmpty
		result.Error = errors.ErrEmptyContent.Error()
	default:
		result.Status = domain.FetchStatusOK
		result.ContentLength = len(content)
		result.Occurrences = CountMatches(content, s.keyword)
		result.Matched = result.Occurrences > 0
	}

	return result
}

// reportProgress invokes the progress callback under a lock so callbacks
// may render to a shared writer without interleaving.
func (s *Scanner) reportProgress(completed, total int, result domain.PageResult) {
	if s.progress == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.progress(completed, total, result)
}

// CountMatches returns the number of case-insensitive occurrences of
// keyword in content.
func CountMatches(content, keyword string) int {
	if keyword == "" {
		return 0
	}
	return strings.Count(strings.ToLower(content), strings.ToLower(keyword))
}
