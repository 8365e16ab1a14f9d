// Package constants defines shared constants for polyscan.
//
// This package centralizes default values, directory names, and limits
// used across the application. It MUST NOT import any other internal
// packages.
package constants

import "time"

// Application identity.
const (
	// AppName is the binary and config directory base name.
	AppName = "polyscan"

	// PolyscanHome is the per-user home directory name (~/.polyscan).
	PolyscanHome = ".polyscan"

	// UserAgent is the default User-Agent header for all HTTP requests.
	UserAgent = "polyscan-cli"
)

// Top-sites dataset defaults.
const (
	// DefaultSitesURL is the CrUX top-sites dataset (gzipped CSV of origin,rank).
	DefaultSitesURL = "https://raw.githubusercontent.com/zakird/crux-top-lists/main/data/global/current.csv.gz"

	// SitesCacheFileName is the on-disk name of the cached dataset.
	SitesCacheFileName = "top-sites.csv.gz"

	// CacheDir is the cache directory name under the polyscan home.
	CacheDir = "cache"

	// DefaultCacheMaxAge is how long a cached dataset is served before refresh.
	DefaultCacheMaxAge = 24 * time.Hour

	// DefaultDownloadTimeout bounds the dataset download.
	DefaultDownloadTimeout = 2 * time.Minute
)

// Scan defaults, matching the rank/limit/keyword semantics of the
// polyfill.io incident investigation this tool was built for.
const (
	// DefaultKeyword is the substring searched for in homepage content.
	DefaultKeyword = "googletagmanager.com"

	// DefaultMaxRank is the maximum CrUX rank bucket to consider.
	DefaultMaxRank = 1000

	// DefaultMaxSites caps the number of sites scanned per run.
	DefaultMaxSites = 50

	// DefaultWorkers is the number of concurrent homepage fetches.
	DefaultWorkers = 20

	// DefaultFetchTimeout bounds a single homepage fetch.
	DefaultFetchTimeout = 10 * time.Second

	// DefaultRetries is the number of retry attempts for transient fetch failures.
	DefaultRetries = 2

	// DefaultRetryBackoff is the initial backoff between retries; it doubles
	// per attempt.
	DefaultRetryBackoff = 500 * time.Millisecond

	// MaxBodyBytes caps how much of a homepage is read for matching.
	MaxBodyBytes = 4 << 20 // 4 MiB
)

// Logging configuration.
const (
	// LogsDir is the log directory name under the polyscan home.
	LogsDir = "logs"

	// CLILogFileName is the rotating CLI log file name.
	CLILogFileName = "polyscan.log"

	// LogMaxSizeMB is the maximum log file size before rotation.
	LogMaxSizeMB = 10

	// LogMaxBackups is the number of rotated log files to keep.
	LogMaxBackups = 3

	// LogMaxAgeDays is the maximum age of rotated log files.
	LogMaxAgeDays = 30

	// LogCompress enables gzip compression of rotated log files.
	LogCompress = true
)
