package history

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keyword_history.json")
	store := NewFileStore(path)

	h := History{
		Daily: map[string]map[string]int{
			"2025-06-29": {"ai": 3, "climate": 1},
			"2025-06-30": {"ai": 5},
		},
		Metadata: Metadata{
			UpdatedAt:  time.Date(2025, 6, 30, 8, 0, 0, 0, time.UTC),
			WindowDays: 30,
		},
	}
	require.NoError(t, store.Save(h))

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, h.Daily, got.Daily)
	assert.Equal(t, h.Metadata.WindowDays, got.Metadata.WindowDays)
}

func TestFileStore_MissingFileIsEmpty(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "nope.json"))

	got, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, got.Daily)
}

func TestFileStore_CorruptFileErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keyword_history.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewFileStore(path).Load()
	assert.Error(t, err)
}

func TestFileStore_SaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(filepath.Join(dir, "keyword_history.json"))

	require.NoError(t, store.Save(History{Daily: map[string]map[string]int{}}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "keyword_history.json", entries[0].Name())
}

func TestFileStore_SaveCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deep", "history.json")
	store := NewFileStore(path)

	require.NoError(t, store.Save(History{}))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestNewTracker_RecoversFromCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keyword_history.json")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o644))

	tr := NewTracker(NewFileStore(path), DefaultWindowDays)

	// Tracker swallowed the parse failure and is usable immediately.
	require.NoError(t, tr.RecordKeywords([]string{"recovered"}, time.Now()))
	assert.NotEmpty(t, tr.TrendingKeywords(5))
}
