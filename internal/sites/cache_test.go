package sites

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexanderOtavka/polyfill-io-scanner/internal/errors"
)

func TestCache_ReadMiss(t *testing.T) {
	cache := NewCache(t.TempDir())

	_, _, err := cache.Read()

	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrCacheMiss)
}

func TestCache_WriteThenRead(t *testing.T) {
	cache := NewCache(t.TempDir())
	data := []byte("gzipped dataset bytes")

	require.NoError(t, cache.Write(data))

	got, writtenAt, err := cache.Read()
	require.NoError(t, err)
	assert.Equal(t, data, got)
	assert.False(t, writtenAt.IsZero())
}

func TestCache_WriteCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "cache")
	cache := NewCache(dir)

	require.NoError(t, cache.Write([]byte("data")))

	_, err := os.Stat(cache.Path())
	assert.NoError(t, err)
}

func TestCache_WriteOverwrites(t *testing.T) {
	cache := NewCache(t.TempDir())

	require.NoError(t, cache.Write([]byte("old")))
	require.NoError(t, cache.Write([]byte("new")))

	got, _, err := cache.Read()
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), got)
}

func TestCache_WriteLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	cache := NewCache(dir)

	require.NoError(t, cache.Write([]byte("data")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, filepath.Base(cache.Path()), entries[0].Name())
}

func TestCache_Clear(t *testing.T) {
	cache := NewCache(t.TempDir())
	require.NoError(t, cache.Write([]byte("data")))

	require.NoError(t, cache.Clear())

	_, _, err := cache.Read()
	assert.ErrorIs(t, err, errors.ErrCacheMiss)
}

func TestCache_ClearMissingIsNoError(t *testing.T) {
	cache := NewCache(t.TempDir())

	assert.NoError(t, cache.Clear())
}

func TestCache_Stat(t *testing.T) {
	cache := NewCache(t.TempDir())

	info, err := cache.Stat()
	require.NoError(t, err)
	assert.False(t, info.Exists)
	assert.Equal(t, cache.Path(), info.Path)

	require.NoError(t, cache.Write([]byte("12345")))

	info, err = cache.Stat()
	require.NoError(t, err)
	assert.True(t, info.Exists)
	assert.Equal(t, int64(5), info.SizeBytes)
	assert.False(t, info.ModTime.IsZero())
}
