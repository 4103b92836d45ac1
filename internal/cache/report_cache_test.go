package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/pickpulse/internal/models"
)

// TestReportKeyString tests cache key string representation
func TestReportKeyString(t *testing.T) {
	key := ReportKey{Source: models.SourceLive, Range: models.Range7Days}
	assert.Equal(t, "live:7d", key.String())
}

// TestReportCacheGetMiss tests a lookup on an empty cache
func TestReportCacheGetMiss(t *testing.T) {
	cache := NewReportCache(time.Hour, 10)
	defer cache.Clear()

	_, found := cache.Get(ReportKey{Source: "live", Range: "30d"})
	assert.False(t, found)

	hits, misses, ratio := cache.Stats()
	assert.Equal(t, uint64(0), hits)
	assert.Equal(t, uint64(1), misses)
	assert.Equal(t, 0.0, ratio)
}

// TestReportCacheSetAndGet tests storing and reading a report
func TestReportCacheSetAndGet(t *testing.T) {
	cache := NewReportCache(time.Hour, 10)
	defer cache.Clear()

	key := ReportKey{Source: "backtest", Range: "season"}
	report := models.Report{Overall: models.Tally{Wins: 7, Losses: 3, Percentage: 70}}

	require.True(t, cache.Set(key, report))
	got, found := cache.Get(key)

	require.True(t, found)
	assert.Equal(t, 70.0, got.Overall.Percentage)
	assert.Equal(t, 1, cache.ItemCount())

	_, _, ratio := cache.Stats()
	assert.Equal(t, 1.0, ratio)
}

// TestReportCacheExpiry tests TTL handling
func TestReportCacheExpiry(t *testing.T) {
	cache := NewReportCache(20*time.Millisecond, 10)
	key := ReportKey{Source: "live", Range: "7d"}
	cache.Set(key, models.Report{})

	time.Sleep(40 * time.Millisecond)

	_, found := cache.Get(key)
	assert.False(t, found)
}

// TestReportCacheMaxSize tests that a full cache refuses new keys
func TestReportCacheMaxSize(t *testing.T) {
	cache := NewReportCache(time.Hour, 2)
	defer cache.Clear()

	assert.True(t, cache.Set(ReportKey{Source: "live", Range: "7d"}, models.Report{}))
	assert.True(t, cache.Set(ReportKey{Source: "live", Range: "30d"}, models.Report{}))
	assert.False(t, cache.Set(ReportKey{Source: "live", Range: "season"}, models.Report{}))

	// replacing an existing key is allowed
	assert.True(t, cache.Set(ReportKey{Source: "live", Range: "7d"}, models.Report{}))
	assert.Equal(t, 2, cache.ItemCount())
}

// TestReportCacheClear tests flushing and counter reset
func TestReportCacheClear(t *testing.T) {
	cache := NewReportCache(time.Hour, 10)
	key := ReportKey{Source: "live", Range: "7d"}
	cache.Set(key, models.Report{})
	cache.Get(key)

	cache.Clear()

	hits, misses, _ := cache.Stats()
	assert.Zero(t, hits)
	assert.Zero(t, misses)
	assert.Zero(t, cache.ItemCount())
}

// TestReportCacheDelete tests removing one report
func TestReportCacheDelete(t *testing.T) {
	cache := NewReportCache(time.Hour, 10)
	defer cache.Clear()
	key := ReportKey{Source: "live", Range: "7d"}
	cache.Set(key, models.Report{})

	cache.Delete(key)

	_, found := cache.Get(key)
	assert.False(t, found)
}
