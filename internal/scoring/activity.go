// Package scoring holds the pure functions that turn already-fetched data into bounded
// scores and labels. Nothing in here performs I/O; empty inputs score 0.
package scoring

import (
	"math"
	"sort"
	"time"
)

// DayLayout is the key format of daily activity maps (UTC calendar day).
const DayLayout = "2006-01-02"

// clamp bounds v to [lo, hi].
func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Streaks computes the current and longest run of consecutive active days.
//
// Days are walked in ascending order; a run continues only when a day is exactly one
// calendar day after the previous one, any gap resets it to 1. The current streak is the
// final run, but only while the most recent active day is today or yesterday relative
// to now; otherwise it is 0. Keys that do not parse as DayLayout and non-positive counts
// are ignored.
func Streaks(daily map[string]int, now time.Time) (current, longest int) {
	days := make([]time.Time, 0, len(daily))
	for key, count := range daily {
		if count <= 0 {
			continue
		}
		d, err := time.Parse(DayLayout, key)
		if err != nil {
			continue
		}
		days = append(days, d)
	}
	if len(days) == 0 {
		return 0, 0
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	running := 0
	for i, d := range days {
		if i > 0 && d.Sub(days[i-1]) == 24*time.Hour {
			running++
		} else {
			running = 1
		}
		if running > longest {
			longest = running
		}
	}

	today := truncateDay(now)
	last := days[len(days)-1]
	if last.Equal(today) || last.Equal(today.AddDate(0, 0, -1)) {
		current = running
	}
	return current, longest
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ActivityScore rates a user's activity in the window on a 0-100 scale.
//
//	base        = min(events per day * 10, 50)
//	diversity   = min(distinct event types * 5, 30)
//	consistency = min(active days / window days * 20, 20)
func ActivityScore(totalEvents, eventTypes, activeDays, windowDays int) int {
	if totalEvents <= 0 || windowDays <= 0 {
		return 0
	}
	perDay := float64(totalEvents) / float64(windowDays)
	base := math.Min(perDay*10, 50)
	diversity := math.Min(float64(eventTypes)*5, 30)
	consistency := math.Min(float64(activeDays)/float64(windowDays)*20, 20)
	return clamp(int(math.Floor(base+diversity+consistency)), 0, 100)
}

// CollaborationScore rates how much a user works on shared code on a 0-100 scale.
func CollaborationScore(forks, pullRequestEvents, issueEvents int) int {
	score := min(forks*5, 30) + min(pullRequestEvents*3, 40) + min(issueEvents*2, 30)
	return clamp(score, 0, 100)
}
