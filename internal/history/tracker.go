package history

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"trendwatch/internal/logger"
)

const (
	dateLayout = "2006-01-02"

	// DefaultWindowDays is the rolling retention window for daily entries.
	DefaultWindowDays = 30

	// currentSpanDays and compareSpanDays bound the two spans the classifier
	// compares: the most recent 7 days against days 8-14.
	currentSpanDays = 7
	compareSpanDays = 14
)

// Trend labels how a keyword moved between the two most recent 7-day spans.
type Trend string

const (
	TrendNew     Trend = "new"
	TrendRising  Trend = "rising"
	TrendStable  Trend = "stable"
	TrendFalling Trend = "falling"
)

// KeywordTrend is the derived, non-persisted classification of one keyword.
type KeywordTrend struct {
	Keyword          string  `json:"keyword"`
	Trend            Trend   `json:"trend"`
	CurrentCount     int     `json:"current_count"`
	PreviousCount    int     `json:"previous_count"`
	ChangePercent    float64 `json:"change_percent"`
	FirstSeen        string  `json:"first_seen"`
	LastSeen         string  `json:"last_seen"`
	TotalAppearances int     `json:"total_appearances"`
}

// Tracker owns the rolling keyword history. It loads the store once at
// construction and writes it back after every mutation. A store that fails
// to load resets to empty rather than failing the run.
type Tracker struct {
	store      Store
	windowDays int
	history    History

	now func() time.Time
}

func NewTracker(store Store, windowDays int) *Tracker {
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}

	h, err := store.Load()
	if err != nil {
		logger.Warn("keyword history unreadable, starting from an empty store", "error", err)
		h = History{}
	}
	if h.Daily == nil {
		h.Daily = make(map[string]map[string]int)
	}
	h.Metadata.WindowDays = windowDays

	return &Tracker{
		store:      store,
		windowDays: windowDays,
		history:    h,
		now:        time.Now,
	}
}

// RecordKeywords merges the given keywords into the counts for date, evicts
// entries older than the retention window and persists the store. Keywords
// are lowercased; single characters are dropped. Calling twice for the same
// date double-counts, so the pipeline calls this once per run.
//
// A save failure is returned but leaves the in-memory history updated, so
// the current run still classifies against today's data.
func (t *Tracker) RecordKeywords(keywords []string, date time.Time) error {
	if date.IsZero() {
		date = t.now()
	}
	day := date.Format(dateLayout)

	counts := t.history.Daily[day]
	if counts == nil {
		counts = make(map[string]int)
		t.history.Daily[day] = counts
	}
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if len(kw) <= 1 {
			continue
		}
		counts[kw]++
	}

	t.prune(date)
	t.history.Metadata.UpdatedAt = t.now()

	if err := t.store.Save(t.history); err != nil {
		return fmt.Errorf("persist keyword history: %w", err)
	}
	return nil
}

// prune evicts dates outside the rolling window relative to ref. Keys are
// YYYY-MM-DD, so plain string comparison orders them correctly.
func (t *Tracker) prune(ref time.Time) {
	cutoff := ref.AddDate(0, 0, -(t.windowDays - 1)).Format(dateLayout)
	for day := range t.history.Daily {
		if day < cutoff {
			delete(t.history.Daily, day)
		}
	}
}

// TrendingKeywords classifies every keyword seen in the last 14 days and
// returns the top limit entries: the new tier first, then rising by absolute
// change descending, then stable, then falling; within a tier, higher
// current counts first.
func (t *Tracker) TrendingKeywords(limit int) []KeywordTrend {
	today := t.now()
	current := t.sumSpan(today, 0, currentSpanDays)
	previous := t.sumSpan(today, currentSpanDays, compareSpanDays)

	seen := make(map[string]struct{}, len(current)+len(previous))
	for kw := range current {
		seen[kw] = struct{}{}
	}
	for kw := range previous {
		seen[kw] = struct{}{}
	}

	trends := make([]KeywordTrend, 0, len(seen))
	for kw := range seen {
		kt := classify(kw, current[kw], previous[kw])
		kt.FirstSeen, kt.LastSeen, kt.TotalAppearances = t.lifetime(kw)
		trends = append(trends, kt)
	}

	sort.Slice(trends, func(i, j int) bool {
		a, b := trends[i], trends[j]
		if ra, rb := tierRank(a.Trend), tierRank(b.Trend); ra != rb {
			return ra < rb
		}
		if ca, cb := math.Abs(a.ChangePercent), math.Abs(b.ChangePercent); ca != cb {
			return ca > cb
		}
		if a.CurrentCount != b.CurrentCount {
			return a.CurrentCount > b.CurrentCount
		}
		return a.Keyword < b.Keyword
	})

	if limit > 0 && len(trends) > limit {
		trends = trends[:limit]
	}
	return trends
}

// PersistentKeywords returns keywords that appeared on at least minDays
// distinct days within the retained window, most persistent first.
func (t *Tracker) PersistentKeywords(minDays, limit int) []string {
	dayCounts := make(map[string]int)
	for _, counts := range t.history.Daily {
		for kw := range counts {
			dayCounts[kw]++
		}
	}

	var persistent []string
	for kw, days := range dayCounts {
		if days >= minDays {
			persistent = append(persistent, kw)
		}
	}
	sort.Slice(persistent, func(i, j int) bool {
		if dayCounts[persistent[i]] != dayCounts[persistent[j]] {
			return dayCounts[persistent[i]] > dayCounts[persistent[j]]
		}
		return persistent[i] < persistent[j]
	})

	if limit > 0 && len(persistent) > limit {
		persistent = persistent[:limit]
	}
	return persistent
}

// classify applies the priority rules: never seen before beats everything,
// then the sign of the count delta decides.
func classify(keyword string, current, previous int) KeywordTrend {
	kt := KeywordTrend{
		Keyword:       keyword,
		CurrentCount:  current,
		PreviousCount: previous,
	}

	switch {
	case previous == 0 && current > 0:
		kt.Trend = TrendNew
		kt.ChangePercent = 100.0
		return kt
	case current > previous:
		kt.Trend = TrendRising
	case current < previous:
		kt.Trend = TrendFalling
	default:
		kt.Trend = TrendStable
	}

	// max(previous, 1) avoids division by zero; small previous counts
	// produce inflated percentages.
	denom := previous
	if denom < 1 {
		denom = 1
	}
	kt.ChangePercent = float64(current-previous) / float64(denom) * 100
	return kt
}

func tierRank(tr Trend) int {
	switch tr {
	case TrendNew:
		return 0
	case TrendRising:
		return 1
	case TrendStable:
		return 2
	default:
		return 3
	}
}

// sumSpan totals per-keyword counts for days [from, to) back from today,
// where offset 0 is today itself.
func (t *Tracker) sumSpan(today time.Time, from, to int) map[string]int {
	sums := make(map[string]int)
	for offset := from; offset < to; offset++ {
		day := today.AddDate(0, 0, -offset).Format(dateLayout)
		for kw, count := range t.history.Daily[day] {
			sums[kw] += count
		}
	}
	return sums
}

// lifetime reports first/last seen dates and the all-time appearance sum for
// a keyword within the retained window.
func (t *Tracker) lifetime(keyword string) (first, last string, total int) {
	for day, counts := range t.history.Daily {
		count, ok := counts[keyword]
		if !ok {
			continue
		}
		total += count
		if first == "" || day < first {
			first = day
		}
		if day > last {
			last = day
		}
	}
	return first, last, total
}
