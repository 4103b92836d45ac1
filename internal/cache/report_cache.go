// Package cache provides in-memory caching for performance reports.
package cache

import (
	"fmt"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/yourusername/pickpulse/internal/metrics"
	"github.com/yourusername/pickpulse/internal/models"
)

// ReportKey identifies one cached performance report
type ReportKey struct {
	Source string
	Range  string
}

// String returns string representation of the key
func (k ReportKey) String() string {
	return fmt.Sprintf("%s:%s", k.Source, k.Range)
}

// ReportCache caches aggregated reports per source and range
type ReportCache struct {
	cache   *gocache.Cache
	ttl     time.Duration
	maxSize int

	mu        sync.Mutex
	hitCount  uint64
	missCount uint64
}

// NewReportCache creates a new report cache
func NewReportCache(ttl time.Duration, maxSize int) *ReportCache {
	return &ReportCache{
		cache:   gocache.New(ttl, ttl*2),
		ttl:     ttl,
		maxSize: maxSize,
	}
}

// Get retrieves a cached report
func (rc *ReportCache) Get(key ReportKey) (models.Report, bool) {
	item, found := rc.cache.Get(key.String())
	report, ok := item.(models.Report)
	hit := found && ok

	rc.mu.Lock()
	if hit {
		rc.hitCount++
	} else {
		rc.missCount++
	}
	rc.mu.Unlock()

	rc.updateMetrics()
	return report, hit
}

// Set stores a report. When the cache is full, expired entries are
// evicted first; if it is still full the new report is not stored.
func (rc *ReportCache) Set(key ReportKey, report models.Report) bool {
	if rc.maxSize > 0 && rc.cache.ItemCount() >= rc.maxSize {
		rc.cache.DeleteExpired()
		if _, exists := rc.cache.Get(key.String()); !exists && rc.cache.ItemCount() >= rc.maxSize {
			return false
		}
	}

	rc.cache.Set(key.String(), report, rc.ttl)
	rc.updateMetrics()
	return true
}

// Delete removes one report
func (rc *ReportCache) Delete(key ReportKey) {
	rc.cache.Delete(key.String())
	rc.updateMetrics()
}

// Clear flushes the entire cache
func (rc *ReportCache) Clear() {
	rc.cache.Flush()

	rc.mu.Lock()
	rc.hitCount = 0
	rc.missCount = 0
	rc.mu.Unlock()

	rc.updateMetrics()
}

// Stats returns cache statistics
func (rc *ReportCache) Stats() (hits, misses uint64, ratio float64) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	hits = rc.hitCount
	misses = rc.missCount
	total := hits + misses
	if total > 0 {
		ratio = float64(hits) / float64(total)
	}
	return
}

// ItemCount returns the number of items in cache
func (rc *ReportCache) ItemCount() int {
	return rc.cache.ItemCount()
}

func (rc *ReportCache) updateMetrics() {
	_, _, ratio := rc.Stats()
	metrics.UpdateReportCache(ratio, rc.cache.ItemCount())
}
