package code_analyzer

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"
)

// DefaultCacheDir is the cache root used when none is configured.
const DefaultCacheDir = ".ollama_cache"

// CacheEntry is the persisted record for one memoized analysis result.
// Entries are written once and never mutated in place.
type CacheEntry struct {
	PromptHash string    `json:"prompt_hash"`
	Response   string    `json:"response"`
	CreatedAt  time.Time `json:"created_at"`
}

// AnalysisCache memoizes analysis results on disk, keyed by the SHA-256
// of the exact prompt bytes. The cache root is explicit configuration,
// not process-wide state. With Bypass set, Get always misses and Set is
// a no-op.
type AnalysisCache struct {
	cacheDir string
	Bypass   bool
	stats    *CacheStats
}

// NewAnalysisCache creates a cache rooted at cacheDir. The directory is
// created lazily on the first Set, so constructing a cache never touches
// the filesystem.
func NewAnalysisCache(cacheDir string, bypass bool) *AnalysisCache {
	if cacheDir == "" {
		cacheDir = DefaultCacheDir
	}
	return &AnalysisCache{
		cacheDir: cacheDir,
		Bypass:   bypass,
		stats:    &CacheStats{LastResetTime: time.Now()},
	}
}

// CacheKey returns the hex SHA-256 digest of the prompt bytes.
func CacheKey(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return fmt.Sprintf("%x", sum)
}

// Dir returns the cache root directory.
func (c *AnalysisCache) Dir() string {
	return c.cacheDir
}

func (c *AnalysisCache) entryPath(key string) string {
	return filepath.Join(c.cacheDir, key+".json")
}

// Get looks up the memoized result for prompt. Any filesystem or decode
// trouble counts as a miss: a corrupted entry is logged and skipped,
// never surfaced as an error.
func (c *AnalysisCache) Get(prompt string) (string, bool) {
	if c.Bypass {
		c.recordMiss()
		return "", false
	}

	entryPath := c.entryPath(CacheKey(prompt))
	data, err := os.ReadFile(entryPath)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: unreadable cache entry %s: %v", entryPath, err)
		}
		c.recordMiss()
		return "", false
	}

	var entry CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		log.Printf("Warning: corrupted cache entry %s: %v", entryPath, err)
		c.recordMiss()
		return "", false
	}

	c.recordHit()
	return entry.Response, true
}

// Set persists the result for prompt. The entry is written to a temp
// file in the cache root and renamed into place, so a concurrent reader
// of the same key never observes a half-written entry.
func (c *AnalysisCache) Set(prompt string, response string) error {
	if c.Bypass {
		return nil
	}

	if err := os.MkdirAll(c.cacheDir, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	key := CacheKey(prompt)
	entry := CacheEntry{
		PromptHash: key,
		Response:   response,
		CreatedAt:  time.Now().UTC(),
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}

	tmp, err := os.CreateTemp(c.cacheDir, key+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp cache file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp cache file: %w", err)
	}

	if err := os.Rename(tmp.Name(), c.entryPath(key)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to move cache entry into place: %w", err)
	}

	return nil
}

// Clear removes every entry under the cache root. A missing root is not
// an error.
func (c *AnalysisCache) Clear() error {
	files, err := os.ReadDir(c.cacheDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read cache directory: %w", err)
	}

	for _, file := range files {
		if file.IsDir() {
			continue
		}
		if err := os.Remove(filepath.Join(c.cacheDir, file.Name())); err != nil {
			return fmt.Errorf("failed to delete cache entry %s: %w", file.Name(), err)
		}
	}

	return nil
}

// StorageStats reports entry count and total size under the cache root.
func (c *AnalysisCache) StorageStats() (entries int, totalSize int64, err error) {
	files, err := os.ReadDir(c.cacheDir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, 0, nil
		}
		return 0, 0, fmt.Errorf("failed to read cache directory: %w", err)
	}

	for _, file := range files {
		if file.IsDir() {
			continue
		}
		info, err := file.Info()
		if err != nil {
			continue
		}
		entries++
		totalSize += info.Size()
	}

	return entries, totalSize, nil
}
