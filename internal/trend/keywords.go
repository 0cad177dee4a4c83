package trend

import (
	"sort"
	"strings"
	"unicode"
)

// maxKeywords caps how many keywords a single title contributes.
const maxKeywords = 5

// globalKeywordMinItems is the corroboration bar for a meta-trend: a keyword
// has to show up in at least this many of the day's surviving items.
const globalKeywordMinItems = 3

var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "and": {}, "or": {}, "but": {}, "nor": {},
	"for": {}, "yet": {}, "so": {}, "to": {}, "of": {}, "in": {}, "on": {},
	"at": {}, "by": {}, "with": {}, "from": {}, "into": {}, "over": {},
	"under": {}, "about": {}, "after": {}, "before": {}, "between": {},
	"out": {}, "off": {}, "than": {}, "then": {}, "there": {}, "here": {},
	"this": {}, "that": {}, "these": {}, "those": {}, "its": {}, "his": {},
	"her": {}, "their": {}, "our": {}, "your": {}, "was": {}, "were": {},
	"are": {}, "is": {}, "be": {}, "been": {}, "being": {}, "has": {},
	"have": {}, "had": {}, "do": {}, "does": {}, "did": {}, "will": {},
	"would": {}, "can": {}, "could": {}, "should": {}, "may": {}, "might": {},
	"must": {}, "not": {}, "all": {}, "each": {}, "more": {}, "most": {},
	"some": {}, "such": {}, "other": {}, "what": {}, "which": {}, "who": {},
	"whom": {}, "how": {}, "why": {}, "when": {}, "where": {}, "says": {},
	"said": {}, "amid": {}, "as": {}, "it": {}, "you": {}, "they": {},
}

// ExtractKeywords derives up to five keywords from a title, in original
// order. Stop words, tokens of two characters or fewer and purely numeric
// tokens are skipped. Same title always yields the same keywords.
func ExtractKeywords(title string) []string {
	words := strings.Fields(normalizeTitle(title))
	keywords := make([]string, 0, maxKeywords)
	for _, w := range words {
		if len(keywords) >= maxKeywords {
			break
		}
		if _, stop := stopWords[w]; stop {
			continue
		}
		if len(w) <= 2 || isNumeric(w) {
			continue
		}
		keywords = append(keywords, w)
	}
	return keywords
}

// GlobalKeywords returns the meta-trends of the final ranked set: keywords
// appearing in at least three items, ordered by item count descending and by
// first occurrence for ties.
func GlobalKeywords(trends []ScoredTrend) []string {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	pos := 0
	for _, t := range trends {
		inItem := make(map[string]struct{}, len(t.Keywords))
		for _, kw := range t.Keywords {
			if _, dup := inItem[kw]; dup {
				continue
			}
			inItem[kw] = struct{}{}
			if _, ok := firstSeen[kw]; !ok {
				firstSeen[kw] = pos
				pos++
			}
			counts[kw]++
		}
	}

	var global []string
	for kw, n := range counts {
		if n >= globalKeywordMinItems {
			global = append(global, kw)
		}
	}
	sort.Slice(global, func(i, j int) bool {
		if counts[global[i]] != counts[global[j]] {
			return counts[global[i]] > counts[global[j]]
		}
		return firstSeen[global[i]] < firstSeen[global[j]]
	})
	return global
}

// normalizeTitle lowercases s, replaces every rune that is not a letter or a
// digit with a space and collapses runs of whitespace. Unicode-aware so
// non-ASCII headlines keep their words intact.
func normalizeTitle(s string) string {
	s = strings.ToLower(s)
	runes := make([]rune, 0, len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			runes = append(runes, r)
		} else {
			runes = append(runes, ' ')
		}
	}
	return strings.Join(strings.Fields(string(runes)), " ")
}

func isNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}

// keywordSet deduplicates a keyword list so an item whose title repeats a
// word is still counted once per item.
func keywordSet(keywords []string) map[string]struct{} {
	set := make(map[string]struct{}, len(keywords))
	for _, kw := range keywords {
		set[kw] = struct{}{}
	}
	return set
}
