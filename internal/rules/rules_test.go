package rules

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveAt_YearDateTime(t *testing.T) {
	now := time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)

	answer, ok := ResolveAt(now, "what year is it")
	require.True(t, ok)
	assert.Contains(t, answer, "2025")

	answer, ok = ResolveAt(now, "what is the date")
	require.True(t, ok)
	assert.Contains(t, answer, "3/14/2025")

	answer, ok = ResolveAt(now, "what time is it")
	require.True(t, ok)
	assert.Contains(t, answer, "3:09:26 PM")
}

func TestResolveAt_UsesCallTime(t *testing.T) {
	// Date and time answers reflect the clock passed in, not a cached value.
	first := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	second := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	a1, ok := ResolveAt(first, "what year is it")
	require.True(t, ok)
	a2, ok := ResolveAt(second, "what year is it")
	require.True(t, ok)

	assert.Contains(t, a1, "2024")
	assert.Contains(t, a2, "2026")
}

func TestResolveAt_IdentityBeforeName(t *testing.T) {
	// "who are you" overlaps the creator-name rules; the identity rule must
	// win because it is checked first.
	now := time.Now()

	answer, ok := ResolveAt(now, "who are you?")
	require.True(t, ok)
	assert.Contains(t, answer, "Jerewitdashifts.HIM")

	answer, ok = ResolveAt(now, "who's jerewitdashifts")
	require.True(t, ok)
	assert.Contains(t, answer, "unique AI personality")
}

func TestResolveAt_CreatorAndTrivia(t *testing.T) {
	now := time.Now()

	tests := []struct {
		query    string
		contains string
	}{
		{"who built this app", "Jeremy.B"},
		{"jeremy.b", "my creator"},
		{"tell me about jeremy baraka", "my creator"},
		{"who's the goat", "Jerewitdashifts"},
		{"what's the app name", "Jerewitdashifts"},
		{"does god exist", "more than real"},
	}

	for _, tc := range tests {
		t.Run(tc.query, func(t *testing.T) {
			answer, ok := ResolveAt(now, tc.query)
			require.True(t, ok, "expected a local answer for %q", tc.query)
			assert.Contains(t, answer, tc.contains)
		})
	}
}

func TestResolveAt_NoMatch(t *testing.T) {
	now := time.Now()

	for _, query := range []string{
		"explain goroutines",
		"write me a sorting algorithm",
		"how do plants grow",
	} {
		_, ok := ResolveAt(now, query)
		assert.False(t, ok, "expected no local answer for %q", query)
	}
}

func TestResolveAt_TrimsAndLowercases(t *testing.T) {
	now := time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)

	answer, ok := ResolveAt(now, "   WHAT YEAR IS IT   ")
	require.True(t, ok)
	assert.Contains(t, answer, "2025")
}

func TestNeedsFreshData(t *testing.T) {
	tests := []struct {
		query string
		want  bool
	}{
		{"what is the btc price", true},
		{"latest election results", true},
		{"weather in nairobi", true},
		{"BREAKING news", true},
		{"who won the nba finals", true},
		{"explain binary search", false},
		{"write a haiku", false},
		{"", false},
	}

	for _, tc := range tests {
		t.Run(fmt.Sprintf("%q", tc.query), func(t *testing.T) {
			assert.Equal(t, tc.want, NeedsFreshData(tc.query))
		})
	}
}

func TestNeedsFreshData_Deterministic(t *testing.T) {
	for i := 0; i < 10; i++ {
		assert.True(t, NeedsFreshData("current gold rate"))
		assert.False(t, NeedsFreshData("explain recursion"))
	}
}
