package trend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractKeywords(t *testing.T) {
	got := ExtractKeywords("Apple unveils new iPhone 16 with AI features")

	// "16" is numeric, "ai" too short, "with" a stop word.
	assert.Equal(t, []string{"apple", "unveils", "new", "iphone", "features"}, got)
}

func TestExtractKeywords_CapsAtFive(t *testing.T) {
	got := ExtractKeywords("alpha bravo charlie delta echo foxtrot golf hotel")
	assert.Len(t, got, 5)
	assert.Equal(t, []string{"alpha", "bravo", "charlie", "delta", "echo"}, got)
}

func TestExtractKeywords_FiltersJunkTokens(t *testing.T) {
	got := ExtractKeywords("The 2024 AI act: EU and the 27 states")

	for _, kw := range got {
		_, stop := stopWords[kw]
		assert.False(t, stop, "stop word %q leaked through", kw)
		assert.Greater(t, len(kw), 2)
		assert.False(t, isNumeric(kw))
	}
}

func TestExtractKeywords_Deterministic(t *testing.T) {
	title := "Markets rally as central banks signal rate cuts"
	first := ExtractKeywords(title)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, ExtractKeywords(title))
	}
}

func TestExtractKeywords_EmptyTitle(t *testing.T) {
	assert.Empty(t, ExtractKeywords(""))
	assert.Empty(t, ExtractKeywords("   \t  "))
	assert.Empty(t, ExtractKeywords("!!! ??? ..."))
}

func TestGlobalKeywords(t *testing.T) {
	trends := []ScoredTrend{
		{RawItem: RawItem{Keywords: []string{"quantum", "chip"}}},
		{RawItem: RawItem{Keywords: []string{"quantum", "startup"}}},
		{RawItem: RawItem{Keywords: []string{"quantum", "chip"}}},
		{RawItem: RawItem{Keywords: []string{"chip", "export"}}},
		{RawItem: RawItem{Keywords: []string{"export"}}},
	}

	got := GlobalKeywords(trends)

	// quantum and chip both hit three items; quantum appeared first.
	require.Equal(t, []string{"quantum", "chip"}, got)
}

func TestGlobalKeywords_BelowThresholdExcluded(t *testing.T) {
	trends := []ScoredTrend{
		{RawItem: RawItem{Keywords: []string{"solar"}}},
		{RawItem: RawItem{Keywords: []string{"solar"}}},
	}
	assert.Empty(t, GlobalKeywords(trends))
}

func TestGlobalKeywords_CountsItemsNotOccurrences(t *testing.T) {
	// One item repeating a keyword must not push it over the bar alone.
	trends := []ScoredTrend{
		{RawItem: RawItem{Keywords: []string{"mars", "mars", "mars"}}},
	}
	assert.Empty(t, GlobalKeywords(trends))
}
