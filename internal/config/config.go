// Package config provides configuration management for polyscan with layered precedence.
//
// Configuration sources are loaded in the following order (highest precedence first):
//  1. CLI flags (passed via LoadWithOverrides)
//  2. Environment variables (POLYSCAN_* prefix)
//  3. Project config (.polyscan/config.yaml)
//  4. Global config (~/.polyscan/config.yaml)
//  5. Built-in defaults
//
// Each higher level completely overrides the lower level for the same key.
//
// IMPORTANT: This package may import internal/constants and internal/errors,
// but MUST NOT import internal/domain or other internal packages.
package config

import "time"

// Config is the root configuration structure for polyscan.
type Config struct {
	// Sites contains settings for the top-sites dataset source and cache.
	Sites SitesConfig `json:"sites" yaml:"sites" mapstructure:"sites"`

	// Scan contains settings for the homepage scan itself.
	Scan ScanConfig `json:"scan" yaml:"scan" mapstructure:"scan"`

	// HTTP contains settings shared by all outbound HTTP requests.
	HTTP HTTPConfig `json:"http" yaml:"http" mapstructure:"http"`
}

// SitesConfig contains settings for the top-sites dataset.
type SitesConfig struct {
	// URL is the dataset source, a gzipped CSV of origin,rank pairs.
	// This is the single configurable input of the environment the tool
	// ships with: point it at a mirror to scan against a different index.
	// Default: the public CrUX top-sites dataset.
	URL string `json:"url" yaml:"url" mapstructure:"url"`

	// CacheDir overrides where the downloaded dataset is cached.
	// Default: "" (resolves to ~/.polyscan/cache)
	CacheDir string `json:"cache_dir" yaml:"cache_dir" mapstructure:"cache_dir"`

	// MaxAge is how long a cached dataset is served before re-download.
	// Default: 24h
	MaxAge time.Duration `json:"max_age" yaml:"max_age" mapstructure:"max_age"`
}

// ScanConfig contains settings for the homepage scan.
type ScanConfig struct {
	// Keyword is the substring searched for in homepage content.
	// Matching is case-insensitive.
	// Default: "googletagmanager.com"
	Keyword string `json:"keyword" yaml:"keyword" mapstructure:"keyword"`

	// MaxRank is the maximum rank bucket to consider. Sites ranked above
	// this value are excluded before the limit is applied.
	// Default: 1000
	MaxRank int `json:"max_rank" yaml:"max_rank" mapstructure:"max_rank"`

	// MaxSites caps the number of sites scanned, applied after the rank
	// filter. 0 means no limit.
	// Default: 50
	MaxSites int `json:"max_sites" yaml:"max_sites" mapstructure:"max_sites"`

	// Workers is the number of concurrent homepage fetches.
	// Default: 20, Valid range: 1-256
	Workers int `json:"workers" yaml:"workers" mapstructure:"workers"`

	// Timeout bounds a single homepage fetch attempt.
	// Default: 10s
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// Retries is the number of retry attempts for transient fetch failures.
	// Default: 2, Valid range: 0-10
	Retries int `json:"retries" yaml:"retries" mapstructure:"retries"`

	// RetryBackoff is the initial delay between retries; it doubles per attempt.
	// Default: 500ms
	RetryBackoff time.Duration `json:"retry_backoff" yaml:"retry_backoff" mapstructure:"retry_backoff"`
}

// HTTPConfig contains settings shared by outbound HTTP requests.
type HTTPConfig struct {
	// UserAgent is sent on every request.
	// Default: "polyscan-cli"
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`

	// DownloadTimeout bounds the dataset download.
	// Default: 2m
	DownloadTimeout time.Duration `json:"download_timeout" yaml:"download_timeout" mapstructure:"download_timeout"`
}
