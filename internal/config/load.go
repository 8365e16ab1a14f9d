package config

import (
	"context"
	stderrors "errors"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/AlexanderOtavka/polyfill-io-scanner/internal/constants"
	"github.com/AlexanderOtavka/polyfill-io-scanner/internal/errors"
)

// newViperInstance creates a new Viper instance with standard polyscan
// configuration: environment variable prefix (POLYSCAN_), key replacer,
// and built-in defaults.
func newViperInstance() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("POLYSCAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// isConfigNotFoundError returns true if the error is a viper config file not found error.
func isConfigNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	var configNotFoundErr viper.ConfigFileNotFoundError
	return stderrors.As(err, &configNotFoundErr)
}

// unmarshalAndValidate unmarshals viper config into Config struct and validates it.
func unmarshalAndValidate(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg, viperDecoderOption()); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	if err := Validate(&cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return &cfg, nil
}

// Load reads configuration from all available sources with proper precedence.
// Configuration is loaded in the following order (highest precedence first):
//  1. Environment variables (POLYSCAN_* prefix)
//  2. Project config (.polyscan/config.yaml)
//  3. Global config (~/.polyscan/config.yaml)
//  4. Built-in defaults
//
// For CLI flag overrides, use LoadWithOverrides instead.
//
// The function returns an error only for actual configuration problems,
// not for missing config files (which are expected in many scenarios).
func Load(ctx context.Context) (*Config, error) {
	v := newViperInstance()

	// Load global config first (lower precedence)
	if err := loadGlobalConfig(v); err != nil {
		return nil, err
	}

	// Load project config (higher precedence, merges over global)
	if err := loadProjectConfig(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viperDecoderOption()); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	// Log loaded configuration for debugging
	logger := zerolog.Ctx(ctx).With().Str("component", "config").Logger()
	logger.Debug().
		Str("sites.url", cfg.Sites.URL).
		Int("scan.max_rank", cfg.Scan.MaxRank).
		Int("scan.max_sites", cfg.Scan.MaxSites).
		Int("scan.workers", cfg.Scan.Workers).
		Msg("configuration loaded and unmarshaled")

	if err := Validate(&cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	return &cfg, nil
}

// loadGlobalConfig attempts to load the global config file (~/.polyscan/config.yaml).
// Returns nil if the file doesn't exist or home directory cannot be determined.
func loadGlobalConfig(v *viper.Viper) error {
	globalConfigPath, ok := getGlobalConfigPathIfExists()
	if !ok {
		// Global config doesn't exist or home dir unavailable, skip silently
		return nil
	}

	v.SetConfigFile(globalConfigPath)
	if err := v.ReadInConfig(); err != nil && !isConfigNotFoundError(err) {
		return errors.Wrap(err, "failed to read global config file")
	}
	return nil
}

// loadProjectConfig attempts to load the project config file (.polyscan/config.yaml).
// Returns nil if the file doesn't exist.
func loadProjectConfig(v *viper.Viper) error {
	projectConfigPath := ProjectConfigPath()
	if !fileExists(projectConfigPath) {
		// Project config doesn't exist, skip silently
		return nil
	}

	v.SetConfigFile(projectConfigPath)
	if err := v.MergeInConfig(); err != nil && !isConfigNotFoundError(err) {
		return errors.Wrap(err, "failed to read project config file")
	}
	return nil
}

// fileExists returns true if the file at path exists.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// LoadWithOverrides loads configuration and applies CLI flag overrides.
// The overrides parameter contains values from CLI flags which have the
// highest precedence in the configuration hierarchy.
//
// Only non-zero values in overrides are applied. Zero values are ignored
// to allow partial overrides. MaxSites=0 therefore cannot be expressed as
// an override; the CLI maps --limit 0 explicitly after loading.
func LoadWithOverrides(ctx context.Context, overrides *Config) (*Config, error) {
	cfg, err := Load(ctx)
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		applyOverrides(cfg, overrides)
	}

	// Re-validate after applying overrides
	if err := Validate(cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration after overrides")
	}

	return cfg, nil
}

// LoadFromPaths loads configuration from specific file paths for testing.
// This function allows precise control over which config files are loaded.
//
// projectConfigPath is the path to project-level config (higher priority).
// globalConfigPath is the path to global config (lower priority).
// Either path can be empty to skip that level.
func LoadFromPaths(_ context.Context, projectConfigPath, globalConfigPath string) (*Config, error) {
	v := newViperInstance()

	if globalConfigPath != "" {
		v.SetConfigFile(globalConfigPath)
		if err := v.ReadInConfig(); err != nil && !isConfigNotFoundError(err) && !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "failed to read global config: %s", globalConfigPath)
		}
	}

	if projectConfigPath != "" {
		v.SetConfigFile(projectConfigPath)
		if err := v.MergeInConfig(); err != nil && !isConfigNotFoundError(err) && !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "failed to read project config: %s", projectConfigPath)
		}
	}

	return unmarshalAndValidate(v)
}

// setDefaults configures all default values on the Viper instance.
// IMPORTANT: Keys must match the YAML tag names exactly for proper mapping.
func setDefaults(v *viper.Viper) {
	// Sites defaults
	v.SetDefault("sites.url", constants.DefaultSitesURL)
	v.SetDefault("sites.cache_dir", "")
	v.SetDefault("sites.max_age", constants.DefaultCacheMaxAge.String())

	// Scan defaults
	v.SetDefault("scan.keyword", constants.DefaultKeyword)
	v.SetDefault("scan.max_rank", constants.DefaultMaxRank)
	v.SetDefault("scan.max_sites", constants.DefaultMaxSites)
	v.SetDefault("scan.workers", constants.DefaultWorkers)
	v.SetDefault("scan.timeout", constants.DefaultFetchTimeout.String())
	v.SetDefault("scan.retries", constants.DefaultRetries)
	v.SetDefault("scan.retry_backoff", constants.DefaultRetryBackoff.String())

	// HTTP defaults
	v.SetDefault("http.user_agent", constants.UserAgent)
	v.SetDefault("http.download_timeout", constants.DefaultDownloadTimeout.String())
}

// applyOverrides merges non-zero override values into the config.
// Only non-zero values are applied to allow partial overrides.
func applyOverrides(cfg, overrides *Config) {
	// Sites overrides
	if overrides.Sites.URL != "" {
		cfg.Sites.URL = overrides.Sites.URL
	}
	if overrides.Sites.CacheDir != "" {
		cfg.Sites.CacheDir = overrides.Sites.CacheDir
	}
	if overrides.Sites.MaxAge != 0 {
		cfg.Sites.MaxAge = overrides.Sites.MaxAge
	}

	// Scan overrides
	if overrides.Scan.Keyword != "" {
		cfg.Scan.Keyword = overrides.Scan.Keyword
	}
	if overrides.Scan.MaxRank != 0 {
		cfg.Scan.MaxRank = overrides.Scan.MaxRank
	}
	if overrides.Scan.MaxSites != 0 {
		cfg.Scan.MaxSites = overrides.Scan.MaxSites
	}
	if overrides.Scan.Workers != 0 {
		cfg.Scan.Workers = overrides.Scan.Workers
	}
	if overrides.Scan.Timeout != 0 {
		cfg.Scan.Timeout = overrides.Scan.Timeout
	}
	if overrides.Scan.Retries != 0 {
		cfg.Scan.Retries = overrides.Scan.Retries
	}
	if overrides.Scan.RetryBackoff != 0 {
		cfg.Scan.RetryBackoff = overrides.Scan.RetryBackoff
	}

	// HTTP overrides
	if overrides.HTTP.UserAgent != "" {
		cfg.HTTP.UserAgent = overrides.HTTP.UserAgent
	}
	if overrides.HTTP.DownloadTimeout != 0 {
		cfg.HTTP.DownloadTimeout = overrides.HTTP.DownloadTimeout
	}
}

// viperDecoderOption returns the decoder options for Viper unmarshal.
// This configures mapstructure to handle time.Duration conversion from strings.
func viperDecoderOption() viper.DecoderConfigOption {
	return viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
		),
	)
}
