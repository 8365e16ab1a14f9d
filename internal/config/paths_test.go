package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexanderOtavka/polyfill-io-scanner/internal/constants"
)

func TestPolyscanHome_EnvOverride(t *testing.T) {
	t.Setenv("POLYSCAN_HOME", "/custom/polyscan/home")

	home, err := PolyscanHome()

	require.NoError(t, err)
	assert.Equal(t, "/custom/polyscan/home", home)
}

func TestPolyscanHome_DefaultUnderUserHome(t *testing.T) {
	t.Setenv("POLYSCAN_HOME", "")
	t.Setenv("HOME", "/home/tester")

	home, err := PolyscanHome()

	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/tester", constants.PolyscanHome), home)
}

func TestProjectConfigPath(t *testing.T) {
	assert.Equal(t, filepath.Join(".polyscan", "config.yaml"), ProjectConfigPath())
}

func TestCacheDir_ExplicitWins(t *testing.T) {
	cfg := &Config{}
	cfg.Sites.CacheDir = "/data/polyscan-cache"

	dir, err := CacheDir(cfg)

	require.NoError(t, err)
	assert.Equal(t, "/data/polyscan-cache", dir)
}

func TestCacheDir_DefaultUnderHome(t *testing.T) {
	t.Setenv("POLYSCAN_HOME", "/custom/home")

	dir, err := CacheDir(&Config{})

	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/custom/home", constants.CacheDir), dir)
}

func TestLogsDir(t *testing.T) {
	t.Setenv("POLYSCAN_HOME", "/custom/home")

	dir, err := LogsDir()

	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/custom/home", constants.LogsDir), dir)
}
