package stats

import (
	"github.com/limbo/habits/pkg/entity"
)

// StatisticsForPeriod aggregates the logs dated within the trailing window of the period.
// The completion rate divides by the fixed window length, not by the habit's age.
func (e *Engine) StatisticsForPeriod(habit *entity.Habit, logs []entity.HabitLog, period entity.TimePeriod) entity.PeriodStatistics {
	days := period.Days()
	start := e.cal.AddDays(e.cal.Today(), -days)

	var result entity.PeriodStatistics
	for _, log := range logs {
		if log.Date.Before(start) {
			continue
		}
		if log.Completed {
			result.CompletedDays++
		}
		result.TotalValue += log.Value
	}
	result.CompletionRate = float64(result.CompletedDays) / float64(days)
	result.LongestStreak = e.LongestStreakSince(logs, start)
	return result
}

// TotalDays counts completed logs over the habit's whole history
func (e *Engine) TotalDays(logs []entity.HabitLog) int {
	total := 0
	for _, log := range logs {
		if log.Completed {
			total++
		}
	}
	return total
}

// PerfectDays currently equals TotalDays: a day is perfect once it is completed
func (e *Engine) PerfectDays(logs []entity.HabitLog) int {
	return e.TotalDays(logs)
}

// CompletionRate is the all-time share of completed days since the habit was created, creation day included
func (e *Engine) CompletionRate(habit *entity.Habit, logs []entity.HabitLog) float64 {
	daysSinceCreation := e.cal.DaysBetween(habit.CreatedAt, e.cal.Now())
	totalDays := max(daysSinceCreation+1, 1)
	return float64(e.TotalDays(logs)) / float64(totalDays)
}

// WeekValue sums the logs dated on or after the day exactly one week ago
func (e *Engine) WeekValue(logs []entity.HabitLog) float64 {
	weekAgo := e.cal.AddDays(e.cal.Today(), -7)
	var sum float64
	for _, log := range logs {
		if !log.Date.Before(weekAgo) {
			sum += log.Value
		}
	}
	return sum
}

func (e *Engine) TotalCompleted(logs []entity.HabitLog) float64 {
	var sum float64
	for _, log := range logs {
		sum += log.Value
	}
	return sum
}

func (e *Engine) TodayValue(logs []entity.HabitLog) float64 {
	log := e.lookup(e.index(logs), e.cal.Today())
	if log == nil {
		return 0
	}
	return log.Value
}

func (e *Engine) Summary(habit *entity.Habit, logs []entity.HabitLog) entity.HabitSummary {
	return entity.HabitSummary{
		HabitID:        habit.ID,
		TodayValue:     e.TodayValue(logs),
		WeekValue:      e.WeekValue(logs),
		TotalDays:      e.TotalDays(logs),
		PerfectDays:    e.PerfectDays(logs),
		TotalCompleted: e.TotalCompleted(logs),
		CompletionRate: e.CompletionRate(habit, logs),
		CurrentStreak:  e.CurrentStreak(logs),
		LongestStreak:  e.LongestStreak(logs),
	}
}
