package trend

import "strings"

// similarityThreshold is the word-overlap ratio above which two canonical
// titles are treated as the same story.
const similarityThreshold = 0.8

// Dedupe removes exact and near-duplicate items and returns the ordered
// subsequence of first-accepted items. The first item of every duplicate
// cluster wins regardless of score or timestamp; collection order is
// significant and preserved.
//
// The fuzzy pass compares every candidate against every accepted title,
// O(n² · words). Fine at daily volumes of a few hundred items.
func Dedupe(items []RawItem) []RawItem {
	accepted := make([]RawItem, 0, len(items))
	seenExact := make(map[string]struct{}, len(items))
	acceptedWords := make([]map[string]struct{}, 0, len(items))

	for _, item := range items {
		key := canonicalKey(item.Title)
		if _, dup := seenExact[key]; dup {
			continue
		}

		words := wordSet(key)
		similar := false
		for _, prev := range acceptedWords {
			if overlap(words, prev) > similarityThreshold {
				similar = true
				break
			}
		}
		if similar {
			continue
		}

		seenExact[key] = struct{}{}
		acceptedWords = append(acceptedWords, words)
		accepted = append(accepted, item)
	}
	return accepted
}

// canonicalKey normalizes a title for duplicate comparison. The key is never
// persisted or exposed outside of dedup.
func canonicalKey(title string) string {
	return normalizeTitle(title)
}

func wordSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(s) {
		set[w] = struct{}{}
	}
	return set
}

// overlap is |a∩b| / min(|a|,|b|). Empty titles never match anything.
func overlap(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	small, big := a, b
	if len(b) < len(a) {
		small, big = b, a
	}
	shared := 0
	for w := range small {
		if _, ok := big[w]; ok {
			shared++
		}
	}
	return float64(shared) / float64(len(small))
}
