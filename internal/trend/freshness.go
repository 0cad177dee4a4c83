package trend

import "time"

// freshnessWindow is how recent an item has to be to count as fresh.
const freshnessWindow = 24 * time.Hour

// FreshnessRatio reports the fraction of items whose timestamp falls within
// the last 24 hours relative to now. Items without a timestamp count as
// stale but stay in the list. An empty list passes vacuously with 1.0.
//
// The ratio is only computed here; minimum-count and minimum-freshness
// thresholds are the pipeline's call.
func FreshnessRatio(items []ScoredTrend, now time.Time) float64 {
	if len(items) == 0 {
		return 1.0
	}
	fresh := 0
	for _, item := range items {
		if item.Timestamp != nil && now.Sub(*item.Timestamp) <= freshnessWindow {
			fresh++
		}
	}
	return float64(fresh) / float64(len(items))
}
