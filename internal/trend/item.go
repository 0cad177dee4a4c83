// Package trend implements the aggregation core: keyword extraction,
// deduplication, corroboration scoring and freshness measurement for the
// daily batch of candidate trends.
package trend

import "time"

// RawItem is a single candidate trend as produced by a source collector.
// Keywords are derived from the title once, before deduplication; all other
// fields are set by the collector and not mutated afterwards.
type RawItem struct {
	Title       string     `json:"title"`
	Source      string     `json:"source"`
	URL         string     `json:"url,omitempty"`
	Description string     `json:"description,omitempty"`
	BaseScore   float64    `json:"base_score"`
	Timestamp   *time.Time `json:"timestamp,omitempty"`
	Keywords    []string   `json:"keywords"`
}

// ScoredTrend is a surviving item plus its corroboration-boosted score.
// Rank is implicit: the slice position after the stable sort in Score.
type ScoredTrend struct {
	RawItem
	FinalScore float64 `json:"final_score"`
}
