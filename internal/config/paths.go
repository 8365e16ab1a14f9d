package config

import (
	"os"
	"path/filepath"

	"github.com/AlexanderOtavka/polyfill-io-scanner/internal/constants"
	"github.com/AlexanderOtavka/polyfill-io-scanner/internal/errors"
)

// PolyscanHome returns the polyscan home directory path.
// If the POLYSCAN_HOME environment variable is set, it uses that.
// Otherwise, it defaults to ~/.polyscan.
func PolyscanHome() (string, error) {
	if home := os.Getenv("POLYSCAN_HOME"); home != "" {
		return home, nil
	}

	userHome, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get user home directory")
	}

	return filepath.Join(userHome, constants.PolyscanHome), nil
}

// GlobalConfigDir returns the directory of the global config file.
func GlobalConfigDir() (string, error) {
	return PolyscanHome()
}

// getGlobalConfigPathIfExists returns the global config path if it exists.
// Returns empty string and false if the home directory cannot be determined
// or the config file does not exist.
func getGlobalConfigPathIfExists() (string, bool) {
	globalDir, err := GlobalConfigDir()
	if err != nil {
		return "", false
	}

	globalConfigPath := filepath.Join(globalDir, "config.yaml")
	if _, err := os.Stat(globalConfigPath); err != nil {
		return "", false
	}

	return globalConfigPath, true
}

// ProjectConfigPath returns the path of the project-level config file,
// relative to the current working directory.
func ProjectConfigPath() string {
	return filepath.Join(".polyscan", "config.yaml")
}

// CacheDir resolves the dataset cache directory for the given config.
// An explicit sites.cache_dir wins; otherwise ~/.polyscan/cache is used.
func CacheDir(cfg *Config) (string, error) {
	if cfg != nil && cfg.Sites.CacheDir != "" {
		return cfg.Sites.CacheDir, nil
	}

	home, err := PolyscanHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, constants.CacheDir), nil
}

// LogsDir resolves the log directory (~/.polyscan/logs).
func LogsDir() (string, error) {
	home, err := PolyscanHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, constants.LogsDir), nil
}
