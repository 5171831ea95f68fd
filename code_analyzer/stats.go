package code_analyzer

import (
	"sync"
	"time"
)

// CacheStats tracks lookup performance for one cache instance.
type CacheStats struct {
	TotalRequests int64
	CacheHits     int64
	CacheMisses   int64
	LastResetTime time.Time
	mutex         sync.RWMutex
}

func (c *AnalysisCache) recordHit() {
	if c.stats == nil {
		return
	}
	c.stats.mutex.Lock()
	defer c.stats.mutex.Unlock()
	c.stats.TotalRequests++
	c.stats.CacheHits++
}

func (c *AnalysisCache) recordMiss() {
	if c.stats == nil {
		return
	}
	c.stats.mutex.Lock()
	defer c.stats.mutex.Unlock()
	c.stats.TotalRequests++
	c.stats.CacheMisses++
}

// PerformanceStats returns lookup counters for this cache instance.
func (c *AnalysisCache) PerformanceStats() map[string]interface{} {
	if c.stats == nil {
		return map[string]interface{}{
			"total_requests":   int64(0),
			"cache_hits":       int64(0),
			"cache_misses":     int64(0),
			"hit_rate_percent": 0.0,
		}
	}

	c.stats.mutex.RLock()
	defer c.stats.mutex.RUnlock()

	hitRate := 0.0
	if c.stats.TotalRequests > 0 {
		hitRate = float64(c.stats.CacheHits) / float64(c.stats.TotalRequests) * 100
	}

	return map[string]interface{}{
		"total_requests":   c.stats.TotalRequests,
		"cache_hits":       c.stats.CacheHits,
		"cache_misses":     c.stats.CacheMisses,
		"hit_rate_percent": hitRate,
		"last_reset":       c.stats.LastResetTime.Format(time.RFC3339),
	}
}

// ResetPerformanceStats zeroes the lookup counters.
func (c *AnalysisCache) ResetPerformanceStats() {
	if c.stats == nil {
		return
	}
	c.stats.mutex.Lock()
	defer c.stats.mutex.Unlock()
	c.stats.TotalRequests = 0
	c.stats.CacheHits = 0
	c.stats.CacheMisses = 0
	c.stats.LastResetTime = time.Now()
}
