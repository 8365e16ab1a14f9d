package sites

import (
	"os"
	"path/filepath"
	"time"

	"github.com/AlexanderOtavka/polyfill-io-scanner/internal/constants"
	"github.com/AlexanderOtavka/polyfill-io-scanner/internal/errors"
)

// Cache stores the raw gzipped dataset on disk. Reads never mutate the
// cache; writes go through a temp file and an atomic rename so a crashed
// download can never leave a truncated cache behind.
type Cache struct {
	dir string
}

// NewCache creates a Cache rooted at dir. The directory is created lazily
// on first write.
func NewCache(dir string) *Cache {
	return &Cache{dir: dir}
}

// Path returns the full path of the cached dataset file.
func (c *Cache) Path() string {
	return filepath.Join(c.dir, constants.SitesCacheFileName)
}

// Read returns the cached dataset bytes and the time they were written.
// Returns ErrCacheMiss if no cache file exists.
func (c *Cache) Read() ([]byte, time.Time, error) {
	info, err := os.Stat(c.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, time.Time{}, errors.ErrCacheMiss
		}
		return nil, time.Time{}, errors.Wrap(err, "failed to stat dataset cache")
	}

	data, err := os.ReadFile(c.Path())
	if err != nil {
		return nil, time.Time{}, errors.Wrap(errors.ErrCacheCorrupted, err.Error())
	}
	return data, info.ModTime(), nil
}

// Write stores the dataset bytes atomically.
func (c *Cache) Write(data []byte) error {
	if err := os.MkdirAll(c.dir, 0o750); err != nil {
		return errors.Wrap(err, "failed to create cache directory")
	}

	tmp, err := os.CreateTemp(c.dir, constants.SitesCacheFileName+".tmp-*")
	if err != nil {
		return errors.Wrap(err, "failed to create cache temp file")
	}

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return errors.Wrap(err, "failed to write cache temp file")
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return errors.Wrap(err, "failed to close cache temp file")
	}

	if err := os.Rename(tmp.Name(), c.Path()); err != nil {
		_ = os.Remove(tmp.Name())
		return errors.Wrap(err, "failed to move cache file into place")
	}
	return nil
}

// Clear removes the cached dataset. Clearing a missing cache is not an error.
func (c *Cache) Clear() error {
	if err := os.Remove(c.Path()); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "failed to remove dataset cache")
	}
	return nil
}

// Info describes the state of the on-disk cache.
type Info struct {
	// Path is the cache file location.
	Path string `json:"path" yaml:"path"`

	// Exists is true when a cached dataset is present.
	Exists bool `json:"exists" yaml:"exists"`

	// SizeBytes is the cached file size.
	SizeBytes int64 `json:"size_bytes,omitempty" yaml:"size_bytes,omitempty"`

	// ModTime is when the cache was last written.
	ModTime time.Time `json:"mod_time,omitempty" yaml:"mod_time,omitempty"`
}

// Stat returns metadata about the cache without reading its contents.
func (c *Cache) Stat() (Info, error) {
	fi, err := os.Stat(c.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return Info{Path: c.Path(), Exists: false}, nil
		}
		return Info{}, errors.Wrap(err, "failed to stat dataset cache")
	}
	return Info{
		Path:      c.Path(),
		Exists:    true,
		SizeBytes: fi.Size(),
		ModTime:   fi.ModTime(),
	}, nil
}
