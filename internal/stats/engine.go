// Package stats derives streaks, intensities, calendar grids and period statistics
// from a habit and its logs. Everything here is pure: callers load the logs, the
// engine only reads them and the calendar.
package stats

import (
	"time"

	"github.com/limbo/habits/pkg/calendar"
	"github.com/limbo/habits/pkg/entity"
)

// DefaultStreakLookbackDays bounds how far back the current streak is searched
const DefaultStreakLookbackDays = 365

type Engine struct {
	cal      calendar.Calendar
	lookback int
}

func New(cal calendar.Calendar, lookbackDays int) *Engine {
	if lookbackDays <= 0 {
		lookbackDays = DefaultStreakLookbackDays
	}
	return &Engine{
		cal:      cal,
		lookback: lookbackDays,
	}
}

func (e *Engine) Calendar() calendar.Calendar {
	return e.cal
}

// logIndex maps day keys to logs. When the input holds several logs for one day
// the first one wins, matching a newest-first lookup.
type logIndex map[string]*entity.HabitLog

func (e *Engine) index(logs []entity.HabitLog) logIndex {
	idx := make(logIndex, len(logs))
	for i := range logs {
		key := e.cal.DayKey(logs[i].Date)
		if _, ok := idx[key]; ok {
			continue
		}
		log := logs[i]
		idx[key] = &log
	}
	return idx
}

func (e *Engine) lookup(idx logIndex, day time.Time) *entity.HabitLog {
	return idx[e.cal.DayKey(day)]
}

// Intensity buckets a day's progress for heat-map coloring
func (e *Engine) Intensity(habit *entity.Habit, log *entity.HabitLog) entity.IntensityLevel {
	if log == nil {
		return entity.IntensityNone
	}
	if habit.FrequencyType.IsWeekly() {
		if log.Completed {
			return entity.IntensityVeryHigh
		}
		return entity.IntensityNone
	}
	if log.Value <= 0 || habit.TargetValue <= 0 {
		return entity.IntensityNone
	}
	percentage := log.Value / habit.TargetValue
	switch {
	case percentage >= 1.5:
		return entity.IntensityVeryHigh
	case percentage >= 1.0:
		return entity.IntensityHigh
	case percentage >= 0.5:
		return entity.IntensityMedium
	default:
		return entity.IntensityLow
	}
}
