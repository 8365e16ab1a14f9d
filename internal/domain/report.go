package domain

import (
	"time"

	"github.com/google/uuid"
)

// FetchStatus describes the outcome of a single homepage fetch.
type FetchStatus string

// Fetch status values.
const (
	// FetchStatusOK means the homepage was fetched with non-empty content.
	FetchStatusOK FetchStatus = "ok"

	// FetchStatusEmpty means the fetch succeeded but returned no content.
	FetchStatusEmpty FetchStatus = "empty"

	// FetchStatusFailed means the fetch failed after all retry attempts.
	FetchStatusFailed FetchStatus = "failed"
)

// PageResult is the outcome of fetching and matching one site's homepage.
// Homepage content itself is not retained; only match metadata is kept.
type PageResult struct {
	Site Site `json:"site" yaml:"site"`

	// Status records whether the homepage was fetched.
	Status FetchStatus `json:"status" yaml:"status"`

	// Matched is true when the keyword was found in the homepage content.
	Matched bool `json:"matched" yaml:"matched"`

	// Occurrences is the number of case-insensitive keyword occurrences.
	Occurrences int `json:"occurrences,omitempty" yaml:"occurrences,omitempty"`

	// ContentLength is the number of homepage bytes examined.
	ContentLength int `json:"content_length,omitempty" yaml:"content_length,omitempty"`

	// Attempts is the number of fetch attempts made (1 = no retries needed).
	Attempts int `json:"attempts" yaml:"attempts"`

	// Duration is the total time spent fetching this site, including retries.
	Duration time.Duration `json:"duration_ms" yaml:"duration_ms"`

	// Error holds the final fetch error message for failed sites.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Match is a site whose homepage referenced the keyword.
type Match struct {
	Origin      string `json:"origin" yaml:"origin"`
	Rank        int    `json:"rank" yaml:"rank"`
	Occurrences int    `json:"occurrences" yaml:"occurrences"`
}

// Report is the full result of one scan run.
type Report struct {
	// RunID uniquely identifies this scan run in logs and output.
	RunID string `json:"run_id" yaml:"run_id"`

	// Keyword is the substring that was searched for.
	Keyword string `json:"keyword" yaml:"keyword"`

	// StartedAt is when the scan began.
	StartedAt time.Time `json:"started_at" yaml:"started_at"`

	// Duration is the wall-clock time of the whole scan.
	Duration time.Duration `json:"duration_ms" yaml:"duration_ms"`

	// Scanned is the number of sites submitted for fetching.
	Scanned int `json:"scanned" yaml:"scanned"`

	// Fetched is the number of sites with non-empty homepage content.
	Fetched int `json:"fetched" yaml:"fetched"`

	// Failed is the number of sites whose fetch failed or returned no content.
	Failed int `json:"failed" yaml:"failed"`

	// Matches lists the sites that referenced the keyword, in rank order.
	Matches []Match `json:"matches" yaml:"matches"`

	// Results holds the per-site outcomes, in dataset order.
	Results []PageResult `json:"results" yaml:"results"`
}

// NewReport creates a Report with a fresh run id.
func NewReport(keyword string, startedAt time.Time) *Report {
	return &Report{
		RunID:     uuid.NewString(),
		Keyword:   keyword,
		StartedAt: startedAt,
	}
}

// Finalize derives the aggregate counts and the match list from Results.
// Results are expected to already be in dataset (rank) order, so Matches
// inherits that order.
func (r *Report) Finalize(duration time.Duration) {
	r.Duration = duration
	r.Scanned = len(r.Results)
	r.Fetched = 0
	r.Failed = 0
	r.Matches = r.Matches[:0]
	for _, res := range r.Results {
		if res.Status == FetchStatusOK {
			r.Fetched++
		} else {
			r.Failed++
		}
		if res.Matched {
			r.Matches = append(r.Matches, Match{
				Origin:      res.Site.Origin,
				Rank:        res.Site.Rank,
				Occurrences: res.Occurrences,
			})
		}
	}
}
