package internal

import (
	"crypto/md5"
	"encoding/gob"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	tt "github.com/gnoswap-labs/fitch/internal/types"
)

const (
	cacheFileName   = "check_cache.gob"
	defaultCacheAge = 24 * time.Hour
)

// CacheEntry is the stored result of checking one script.
type CacheEntry struct {
	Hash string
	// Fingerprint identifies the engine settings the issues were produced with.
	Fingerprint string
	Issues      []tt.Issue
	CreatedAt   time.Time
}

// cacheFile is the on-disk layout of the cache.
type cacheFile struct {
	Entries      map[string]CacheEntry
	Dependencies map[string]string
}

// Cache remembers the issues of scripts whose content has not changed.
// Entries are also invalidated when a dependency, typically the
// configuration file, changes.
type Cache struct {
	dir     string
	maxAge  time.Duration
	mu      sync.Mutex
	entries map[string]CacheEntry

	dependencies     []string
	dependencyHashes map[string]string
}

// NewCache opens the cache stored in dir, creating the directory if needed.
func NewCache(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	c := &Cache{
		dir:              dir,
		maxAge:           defaultCacheAge,
		entries:          make(map[string]CacheEntry),
		dependencyHashes: make(map[string]string),
	}
	if err := c.load(); err != nil {
		return nil, fmt.Errorf("failed to load cache: %w", err)
	}
	return c, nil
}

// SetMaxAge sets how long an entry stays valid.
func (c *Cache) SetMaxAge(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.maxAge = d
}

// SetDependencies registers files whose change invalidates every entry.
// The hashes are persisted with the cache, so a dependency edited between
// two runs drops the entries written by the first one.
func (c *Cache) SetDependencies(files ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	current := make(map[string]string, len(files))
	for _, f := range files {
		hash, err := fileHash(f)
		if err != nil {
			return fmt.Errorf("failed to hash dependency %s: %w", f, err)
		}
		current[f] = hash
	}

	changed := len(current) != len(c.dependencyHashes)
	for f, hash := range current {
		if c.dependencyHashes[f] != hash {
			changed = true
		}
	}
	c.dependencies = files
	c.dependencyHashes = current
	if !changed {
		return nil
	}
	c.entries = make(map[string]CacheEntry)
	return c.save()
}

// Get returns the cached issues of filename if its content is unchanged and
// they were produced by an engine with the same fingerprint.
func (c *Cache) Get(filename, fingerprint string) ([]tt.Issue, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[filename]
	if !ok {
		return nil, false
	}
	if entry.Fingerprint != fingerprint || c.stale(filename, entry) {
		delete(c.entries, filename)
		return nil, false
	}
	return entry.Issues, true
}

// Set stores the issues of filename and persists the cache.
func (c *Cache) Set(filename, fingerprint string, issues []tt.Issue) error {
	hash, err := fileHash(filename)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[filename] = CacheEntry{
		Hash:        hash,
		Fingerprint: fingerprint,
		Issues:      issues,
		CreatedAt:   time.Now(),
	}
	return c.save()
}

// InvalidateAll drops every entry.
func (c *Cache) InvalidateAll() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]CacheEntry)
	return c.save()
}

func (c *Cache) stale(filename string, entry CacheEntry) bool {
	if time.Since(entry.CreatedAt) > c.maxAge {
		return true
	}
	hash, err := fileHash(filename)
	if err != nil || hash != entry.Hash {
		return true
	}
	for _, dep := range c.dependencies {
		hash, err := fileHash(dep)
		if err != nil || hash != c.dependencyHashes[dep] {
			return true
		}
	}
	return false
}

func (c *Cache) load() error {
	f, err := os.Open(filepath.Join(c.dir, cacheFileName))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()

	var stored cacheFile
	if err := gob.NewDecoder(f).Decode(&stored); err != nil {
		return fmt.Errorf("failed to decode cache file: %w", err)
	}
	if stored.Entries != nil {
		c.entries = stored.Entries
	}
	if stored.Dependencies != nil {
		c.dependencyHashes = stored.Dependencies
	}
	return nil
}

func (c *Cache) save() error {
	f, err := os.Create(filepath.Join(c.dir, cacheFileName))
	if err != nil {
		return fmt.Errorf("failed to create cache file: %w", err)
	}
	defer f.Close()

	stored := cacheFile{Entries: c.entries, Dependencies: c.dependencyHashes}
	if err := gob.NewEncoder(f).Encode(stored); err != nil {
		return fmt.Errorf("failed to encode cache file: %w", err)
	}
	return nil
}

func fileHash(filename string) (string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	h := md5.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to calculate hash: %w", err)
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}
