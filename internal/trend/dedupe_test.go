package trend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDedupe_ExactDuplicates(t *testing.T) {
	items := []RawItem{
		{Title: "OpenAI releases new model", Source: "a"},
		{Title: "OpenAI Releases New Model!", Source: "b"},
		{Title: "Something else entirely happened today", Source: "c"},
	}

	got := Dedupe(items)

	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Source)
	assert.Equal(t, "c", got[1].Source)
}

func TestDedupe_FuzzyKeepsFirstSeen(t *testing.T) {
	// Overlap 4/4 = 1.0 against the accepted title; the later, higher-scored
	// variant is still the one to go.
	items := []RawItem{
		{Title: "Apple unveils new iPhone", Source: "srcA", BaseScore: 1.0},
		{Title: "Apple unveils new iPhone today", Source: "srcB", BaseScore: 1.2},
	}

	got := Dedupe(items)

	require.Len(t, got, 1)
	assert.Equal(t, "srcA", got[0].Source)
	assert.Equal(t, 1.0, got[0].BaseScore)
}

func TestDedupe_BelowThresholdSurvives(t *testing.T) {
	// Shared words {apple, new, iphone}, min set size 4: overlap 0.75, under
	// the 0.8 bar, so both stay.
	items := []RawItem{
		{Title: "Apple unveils new iPhone", Source: "srcA"},
		{Title: "Apple announces new iPhone launch", Source: "srcB"},
	}

	got := Dedupe(items)
	assert.Len(t, got, 2)
}

func TestDedupe_Idempotent(t *testing.T) {
	items := []RawItem{
		{Title: "Storm hits northern coast overnight"},
		{Title: "Storm hits northern coast overnight again"},
		{Title: "Parliament passes budget bill"},
		{Title: "Parliament passes budget bill"},
		{Title: "Completely unrelated sports result"},
	}

	once := Dedupe(items)
	twice := Dedupe(once)
	assert.Equal(t, once, twice)
}

func TestDedupe_NoSurvivingPairOverlaps(t *testing.T) {
	items := []RawItem{
		{Title: "Central bank raises interest rates"},
		{Title: "Central bank raises interest rates sharply"},
		{Title: "Central bank holds press conference"},
		{Title: "Wildfire spreads across national park"},
		{Title: "Wildfire spreads across national park area"},
	}

	got := Dedupe(items)

	for i := range got {
		for j := i + 1; j < len(got); j++ {
			a := wordSet(canonicalKey(got[i].Title))
			b := wordSet(canonicalKey(got[j].Title))
			assert.LessOrEqual(t, overlap(a, b), similarityThreshold,
				"%q and %q both survived", got[i].Title, got[j].Title)
		}
	}
}

func TestDedupe_PreservesOrder(t *testing.T) {
	items := []RawItem{
		{Title: "Gold prices climb to record high", Source: "1"},
		{Title: "Volcano erupts on remote island", Source: "2"},
		{Title: "Scientists map deep ocean trench", Source: "3"},
	}

	got := Dedupe(items)

	require.Len(t, got, 3)
	assert.Equal(t, "1", got[0].Source)
	assert.Equal(t, "2", got[1].Source)
	assert.Equal(t, "3", got[2].Source)
}
