package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWait_SpacesRequestsPerHost(t *testing.T) {
	l := New(100*time.Millisecond, 0)
	var slept []time.Duration
	l.sleep = func(d time.Duration) { slept = append(slept, d) }

	require.NoError(t, l.Wait("https://news.example/feed"))
	require.NoError(t, l.Wait("https://news.example/other"))
	require.NoError(t, l.Wait("https://elsewhere.example/feed"))

	// Second hit on the same host waits; a different host does not.
	require.Len(t, slept, 1)
	assert.Greater(t, slept[0], time.Duration(0))
	assert.LessOrEqual(t, slept[0], 100*time.Millisecond)
}

func TestWait_EnforcesBudget(t *testing.T) {
	l := New(0, 2)

	require.NoError(t, l.Wait("https://a.example/"))
	require.NoError(t, l.Wait("https://b.example/"))
	assert.Error(t, l.Wait("https://c.example/"))
	assert.Equal(t, 2, l.Requests())
}

func TestHostOf_BadURL(t *testing.T) {
	assert.Equal(t, "unknown", hostOf("::not a url::"))
	assert.Equal(t, "news.example", hostOf("https://NEWS.example/path"))
}
