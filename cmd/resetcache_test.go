package cmd

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ollamabridge/code_analyzer"
)

func TestPrintCacheStats(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "resetcache_test")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	cache := code_analyzer.NewAnalysisCache(tempDir, false)

	cache.Get("prompt") // miss
	require.NoError(t, cache.Set("prompt", "result"))
	cache.Get("prompt") // hit

	var out bytes.Buffer
	require.NoError(t, printCacheStats(&out, cache))

	assert.Contains(t, out.String(), "Cache Directory: "+tempDir)
	assert.Contains(t, out.String(), "Cached Results: 1")
	assert.Contains(t, out.String(), "Cache Hits: 1")
	assert.Contains(t, out.String(), "Cache Misses: 1")
	assert.Contains(t, out.String(), "Hit Rate: 50.0%")
}

func TestPrintCacheStats_EmptyCache(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "resetcache_test")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	cache := code_analyzer.NewAnalysisCache(tempDir, false)

	var out bytes.Buffer
	require.NoError(t, printCacheStats(&out, cache))

	assert.Contains(t, out.String(), "Cached Results: 0")
	assert.Contains(t, out.String(), "Hit Rate: 0.0%")
}
