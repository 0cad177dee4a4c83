package trend

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func ts(t time.Time) *time.Time { return &t }

func TestFreshnessRatio_EmptyListPassesVacuously(t *testing.T) {
	assert.Equal(t, 1.0, FreshnessRatio(nil, time.Now()))
	assert.Equal(t, 1.0, FreshnessRatio([]ScoredTrend{}, time.Now()))
}

func TestFreshnessRatio_MixedAges(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	items := []ScoredTrend{
		{RawItem: RawItem{Timestamp: ts(now.Add(-1 * time.Hour))}},  // fresh
		{RawItem: RawItem{Timestamp: ts(now.Add(-23 * time.Hour))}}, // fresh
		{RawItem: RawItem{Timestamp: ts(now.Add(-25 * time.Hour))}}, // stale
		{RawItem: RawItem{Timestamp: nil}},                          // no timestamp: stale
	}

	assert.InDelta(t, 0.5, FreshnessRatio(items, now), 1e-9)
}

func TestFreshnessRatio_Bounds(t *testing.T) {
	now := time.Now()
	allFresh := []ScoredTrend{
		{RawItem: RawItem{Timestamp: ts(now.Add(-time.Minute))}},
	}
	allStale := []ScoredTrend{
		{RawItem: RawItem{Timestamp: nil}},
	}

	assert.Equal(t, 1.0, FreshnessRatio(allFresh, now))
	assert.Equal(t, 0.0, FreshnessRatio(allStale, now))

	ratio := FreshnessRatio(append(allFresh, allStale...), now)
	assert.GreaterOrEqual(t, ratio, 0.0)
	assert.LessOrEqual(t, ratio, 1.0)
}
