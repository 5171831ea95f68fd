package code_analyzer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalysisCache_StoreAndLookup(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "cache_test")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	cache := NewAnalysisCache(tempDir, false)

	prompt := "analyze this code"
	result := "# Findings\n\nNo issues."

	_, found := cache.Get(prompt)
	assert.False(t, found)

	require.NoError(t, cache.Set(prompt, result))

	// Lookup with an equal-value prompt built separately: hit by value,
	// not by reference.
	samePrompt := strings.Join([]string{"analyze", "this", "code"}, " ")
	cached, found := cache.Get(samePrompt)
	assert.True(t, found)
	assert.Equal(t, result, cached)
}

func TestAnalysisCache_DistinctPromptsDistinctKeys(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "cache_test")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	cache := NewAnalysisCache(tempDir, false)

	require.NoError(t, cache.Set("prompt one", "result one"))

	assert.NotEqual(t, CacheKey("prompt one"), CacheKey("prompt two"))

	_, found := cache.Get("prompt two")
	assert.False(t, found)
}

func TestCacheKey_Deterministic(t *testing.T) {
	assert.Equal(t, CacheKey("hello"), CacheKey("hello"))
	assert.NotEqual(t, CacheKey("hello"), CacheKey("hello "))
	// Hex-encoded SHA-256 digest.
	assert.Len(t, CacheKey("hello"), 64)
}

func TestAnalysisCache_CorruptedEntryIsAMiss(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "cache_test")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	cache := NewAnalysisCache(tempDir, false)

	prompt := "some prompt"
	entryPath := filepath.Join(tempDir, CacheKey(prompt)+".json")
	require.NoError(t, os.WriteFile(entryPath, []byte("{not json"), 0644))

	result, found := cache.Get(prompt)
	assert.False(t, found)
	assert.Empty(t, result)
}

func TestAnalysisCache_Bypass(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "cache_test")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	// Populate through a normal cache first.
	writer := NewAnalysisCache(tempDir, false)
	require.NoError(t, writer.Set("prompt", "result"))

	bypassed := NewAnalysisCache(tempDir, true)

	// Lookup always reports absent even though the entry exists on disk.
	_, found := bypassed.Get("prompt")
	assert.False(t, found)

	// Store is a no-op: no new entry appears.
	require.NoError(t, bypassed.Set("other prompt", "other result"))
	_, err = os.Stat(filepath.Join(tempDir, CacheKey("other prompt")+".json"))
	assert.True(t, os.IsNotExist(err))
}

func TestAnalysisCache_RootDeletedBetweenStoreAndLookup(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "cache_test")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	cacheDir := filepath.Join(tempDir, "cache")
	cache := NewAnalysisCache(cacheDir, false)

	require.NoError(t, cache.Set("prompt", "result"))
	require.NoError(t, os.RemoveAll(cacheDir))

	result, found := cache.Get("prompt")
	assert.False(t, found)
	assert.Empty(t, result)
}

func TestAnalysisCache_NoTempFilesLeftBehind(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "cache_test")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	cache := NewAnalysisCache(tempDir, false)
	require.NoError(t, cache.Set("prompt", "result"))

	files, err := os.ReadDir(tempDir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, CacheKey("prompt")+".json", files[0].Name())
}

func TestAnalysisCache_CreatesRootOnFirstStore(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "cache_test")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	cacheDir := filepath.Join(tempDir, "nested", "cache")
	cache := NewAnalysisCache(cacheDir, false)

	require.NoError(t, cache.Set("prompt", "result"))

	cached, found := cache.Get("prompt")
	assert.True(t, found)
	assert.Equal(t, "result", cached)
}

func TestAnalysisCache_ClearAndStorageStats(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "cache_test")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	cache := NewAnalysisCache(tempDir, false)

	entries, totalSize, err := cache.StorageStats()
	require.NoError(t, err)
	assert.Equal(t, 0, entries)
	assert.Equal(t, int64(0), totalSize)

	require.NoError(t, cache.Set("prompt one", "result one"))
	require.NoError(t, cache.Set("prompt two", "result two"))

	entries, totalSize, err = cache.StorageStats()
	require.NoError(t, err)
	assert.Equal(t, 2, entries)
	assert.Greater(t, totalSize, int64(0))

	require.NoError(t, cache.Clear())

	entries, _, err = cache.StorageStats()
	require.NoError(t, err)
	assert.Equal(t, 0, entries)
}

func TestAnalysisCache_PerformanceStats(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "cache_test")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	cache := NewAnalysisCache(tempDir, false)

	cache.Get("prompt") // miss
	require.NoError(t, cache.Set("prompt", "result"))
	cache.Get("prompt") // hit

	stats := cache.PerformanceStats()
	assert.Equal(t, int64(2), stats["total_requests"])
	assert.Equal(t, int64(1), stats["cache_hits"])
	assert.Equal(t, int64(1), stats["cache_misses"])
	assert.Equal(t, 50.0, stats["hit_rate_percent"])

	cache.ResetPerformanceStats()
	stats = cache.PerformanceStats()
	assert.Equal(t, int64(0), stats["total_requests"])
}
