// Package cache stores station-data responses so a journey can start
// without the network. Entries live in memory first, then on disk.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"
)

// Cache is the interface the API client caches responses through
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte) error
}

// entryVersion is bumped when the cached response models change shape, so
// stale entries from an older build are ignored
const entryVersion = 2

// FileCache implements a file-based cache with TTL
type FileCache struct {
	dir string
	ttl time.Duration
	now func() time.Time
}

// cacheEntry represents a cached item with expiration
type cacheEntry struct {
	Version   int       `json:"v"`
	Key       string    `json:"key"`
	Data      []byte    `json:"data"`
	ExpiresAt time.Time `json:"expires_at"`
}

// NewFileCache creates a new file cache
func NewFileCache(dir string, ttl time.Duration) (*FileCache, error) {
	// 0750: data files may reveal the rider's lines
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, err
	}

	return &FileCache{
		dir: dir,
		ttl: ttl,
		now: time.Now,
	}, nil
}

// DefaultCacheDir returns the default cache directory
func DefaultCacheDir() string {
	if xdgCache := os.Getenv("XDG_CACHE_HOME"); xdgCache != "" {
		return filepath.Join(xdgCache, "trainlcd")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "trainlcd-cache")
	}

	return filepath.Join(home, ".cache", "trainlcd")
}

// Dir returns the directory entries are written to
func (c *FileCache) Dir() string {
	return c.dir
}

// keyToFilename converts a cache key (URL) to a filename
func (c *FileCache) keyToFilename(key string) string {
	hash := sha256.Sum256([]byte(key))
	return filepath.Join(c.dir, hex.EncodeToString(hash[:])+".json")
}

// readEntry loads and validates the file, removing it when it is unusable
func (c *FileCache) readEntry(filename string) (*cacheEntry, bool) {
	// #nosec G304 -- filename is a hash inside the cache directory
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, false
	}

	var entry cacheEntry
	if err := json.Unmarshal(data, &entry); err != nil || entry.Version != entryVersion {
		_ = os.Remove(filename)
		return nil, false
	}

	if c.now().After(entry.ExpiresAt) {
		_ = os.Remove(filename)
		return nil, false
	}
	return &entry, true
}

// Get retrieves a value from the cache
func (c *FileCache) Get(key string) ([]byte, bool) {
	entry, ok := c.readEntry(c.keyToFilename(key))
	if !ok || entry.Key != key {
		return nil, false
	}
	return entry.Data, true
}

// Set stores a value in the cache
func (c *FileCache) Set(key string, value []byte) error {
	entry := cacheEntry{
		Version:   entryVersion,
		Key:       key,
		Data:      value,
		ExpiresAt: c.now().Add(c.ttl),
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	// Write then rename so a crash never leaves half an entry
	filename := c.keyToFilename(key)
	tmp := filename + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return err
	}
	return os.Rename(tmp, filename)
}

// Delete removes one entry
func (c *FileCache) Delete(key string) error {
	err := os.Remove(c.keyToFilename(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// Clear removes all cache entries
func (c *FileCache) Clear() error {
	return c.sweep(func(string) bool { return true })
}

// Cleanup removes expired and unreadable entries
func (c *FileCache) Cleanup() error {
	return c.sweep(func(filename string) bool {
		_, ok := c.readEntry(filename)
		return !ok
	})
}

func (c *FileCache) sweep(remove func(filename string) bool) error {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		filename := filepath.Join(c.dir, entry.Name())
		if remove(filename) {
			_ = os.Remove(filename)
		}
	}
	return nil
}
