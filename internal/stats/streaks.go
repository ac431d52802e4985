package stats

import (
	"sort"
	"time"

	"github.com/limbo/habits/pkg/entity"
)

// CurrentStreak counts consecutive completed days ending today.
// The walk stops at the first day without a completed log or after the lookback bound.
func (e *Engine) CurrentStreak(logs []entity.HabitLog) int {
	idx := e.index(logs)
	day := e.cal.Today()
	streak := 0
	for range e.lookback {
		log := e.lookup(idx, day)
		if log == nil || !log.Completed {
			break
		}
		streak++
		day = e.cal.AddDays(day, -1)
	}
	return streak
}

// LongestStreak is the longest run of completed logs on consecutive calendar days
func (e *Engine) LongestStreak(logs []entity.HabitLog) int {
	return e.longestStreak(logs, nil)
}

// LongestStreakSince is LongestStreak restricted to logs dated on or after start
func (e *Engine) LongestStreakSince(logs []entity.HabitLog, start time.Time) int {
	return e.longestStreak(logs, &start)
}

func (e *Engine) longestStreak(logs []entity.HabitLog, start *time.Time) int {
	dates := make([]time.Time, 0, len(logs))
	for _, log := range logs {
		if !log.Completed {
			continue
		}
		if start != nil && log.Date.Before(*start) {
			continue
		}
		dates = append(dates, log.Date)
	}
	if len(dates) == 0 {
		return 0
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	longest, current := 1, 1
	for i := 1; i < len(dates); i++ {
		// A repeated day (difference 0) breaks the run just like a gap
		if e.cal.DaysBetween(dates[i-1], dates[i]) == 1 {
			current++
			longest = max(longest, current)
		} else {
			current = 1
		}
	}
	return longest
}
