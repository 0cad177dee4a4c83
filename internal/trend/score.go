package trend

import "sort"

// corroborationBoost is the per-keyword bonus for keywords that appear in
// more than one item's keyword list (cross-source corroboration).
const corroborationBoost = 0.2

// Score applies the corroboration boost to each deduplicated item and
// returns the ranked list, score descending. The sort is stable, so ties
// keep collection order. The boost is never negative, so FinalScore is
// always at least BaseScore.
func Score(items []RawItem) []ScoredTrend {
	freq := keywordItemCounts(items)

	trends := make([]ScoredTrend, 0, len(items))
	for _, item := range items {
		boost := 0.0
		for kw := range keywordSet(item.Keywords) {
			if freq[kw] > 1 {
				boost += corroborationBoost
			}
		}
		trends = append(trends, ScoredTrend{
			RawItem:    item,
			FinalScore: item.BaseScore + boost,
		})
	}

	sort.SliceStable(trends, func(i, j int) bool {
		return trends[i].FinalScore > trends[j].FinalScore
	})
	return trends
}

// keywordItemCounts maps each keyword to the number of items whose keyword
// list contains it.
func keywordItemCounts(items []RawItem) map[string]int {
	counts := make(map[string]int)
	for _, item := range items {
		for kw := range keywordSet(item.Keywords) {
			counts[kw]++
		}
	}
	return counts
}
