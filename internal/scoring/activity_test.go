package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func days(now time.Time, offsets ...int) map[string]int {
	m := make(map[string]int, len(offsets))
	for _, off := range offsets {
		m[now.AddDate(0, 0, -off).Format(DayLayout)] = 1
	}
	return m
}

func TestStreaks(t *testing.T) {
	now := time.Date(2024, 6, 15, 18, 30, 0, 0, time.UTC)

	testCases := []struct {
		name            string
		daily           map[string]int
		expectedCurrent int
		expectedLongest int
	}{
		{
			name:            "empty mapping",
			daily:           map[string]int{},
			expectedCurrent: 0,
			expectedLongest: 0,
		},
		{
			name:            "no gaps ending today",
			daily:           days(now, 0, 1, 2, 3, 4),
			expectedCurrent: 5,
			expectedLongest: 5,
		},
		{
			name:            "no gaps ending yesterday is still current",
			daily:           days(now, 1, 2, 3),
			expectedCurrent: 3,
			expectedLongest: 3,
		},
		{
			name:            "last active two days ago breaks the current streak",
			daily:           days(now, 2, 3, 4),
			expectedCurrent: 0,
			expectedLongest: 3,
		},
		{
			name:            "gap keeps the longer run before it",
			daily:           days(now, 0, 1, 5, 6, 7, 8),
			expectedCurrent: 2,
			expectedLongest: 4,
		},
		{
			name:            "gap keeps the longer run after it",
			daily:           days(now, 0, 1, 2, 6),
			expectedCurrent: 3,
			expectedLongest: 3,
		},
		{
			name:            "single trailing entry today",
			daily:           days(now, 0, 10, 11),
			expectedCurrent: 1,
			expectedLongest: 2,
		},
		{
			name:            "unparseable and zero entries are ignored",
			daily:           map[string]int{"not-a-day": 3, now.Format(DayLayout): 0, now.AddDate(0, 0, -1).Format(DayLayout): 2},
			expectedCurrent: 1,
			expectedLongest: 1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			current, longest := Streaks(tc.daily, now)
			assert.Equal(t, tc.expectedCurrent, current)
			assert.Equal(t, tc.expectedLongest, longest)
		})
	}
}

func TestStreaks_NoGapsEqualsDistinctDays(t *testing.T) {
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for n := 1; n <= 40; n++ {
		offsets := make([]int, n)
		for i := range offsets {
			offsets[i] = i
		}
		current, longest := Streaks(days(now, offsets...), now)
		assert.Equal(t, n, longest)
		assert.Equal(t, longest, current)
	}
}

func TestActivityScore(t *testing.T) {
	testCases := []struct {
		name       string
		events     int
		types      int
		activeDays int
		window     int
		expected   int
	}{
		{name: "no events", events: 0, types: 0, activeDays: 0, window: 30, expected: 0},
		{name: "zero window", events: 10, types: 2, activeDays: 2, window: 0, expected: 0},
		{name: "negative window", events: 10, types: 2, activeDays: 2, window: -5, expected: 0},
		// 30/30*10 = 10, 2*5 = 10, 15/30*20 = 10
		{name: "moderate activity", events: 30, types: 2, activeDays: 15, window: 30, expected: 30},
		// 10/30*10 = 3.33, 1*5 = 5, 2/30*20 = 1.33 -> floor(9.67)
		{name: "fractional parts are floored", events: 10, types: 1, activeDays: 2, window: 30, expected: 9},
		{name: "every bonus saturates", events: 10000, types: 20, activeDays: 30, window: 30, expected: 100},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ActivityScore(tc.events, tc.types, tc.activeDays, tc.window))
		})
	}
}

func TestActivityScore_Bounded(t *testing.T) {
	for events := 0; events <= 500; events += 25 {
		for types := 0; types <= 12; types += 3 {
			for window := 0; window <= 90; window += 15 {
				score := ActivityScore(events, types, min(events, window), window)
				assert.GreaterOrEqual(t, score, 0)
				assert.LessOrEqual(t, score, 100)
			}
		}
	}
}

func TestCollaborationScore(t *testing.T) {
	testCases := []struct {
		name     string
		forks    int
		prs      int
		issues   int
		expected int
	}{
		{name: "no collaboration", expected: 0},
		{name: "a few of each", forks: 2, prs: 3, issues: 4, expected: 10 + 9 + 8},
		{name: "forks cap at 30", forks: 100, expected: 30},
		{name: "pull requests cap at 40", prs: 100, expected: 40},
		{name: "issues cap at 30", issues: 100, expected: 30},
		{name: "everything saturates at 100", forks: 100, prs: 100, issues: 100, expected: 100},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			score := CollaborationScore(tc.forks, tc.prs, tc.issues)
			assert.Equal(t, tc.expected, score)
			assert.LessOrEqual(t, score, 100)
		})
	}
}
