package stats

import (
	"time"

	"github.com/limbo/habits/pkg/entity"
)

const (
	heatmapWeeks   = 12
	maxMonthRows   = 6
	daysInWeekGrid = 7
)

func (e *Engine) day(habit *entity.Habit, idx logIndex, date time.Time, today time.Time) entity.DayData {
	log := e.lookup(idx, date)
	return entity.DayData{
		Date:           date,
		Intensity:      e.Intensity(habit, log),
		IsToday:        e.cal.SameDay(date, today),
		Log:            log,
		IsCurrentMonth: true,
	}
}

func (e *Engine) week(habit *entity.Habit, idx logIndex, start time.Time, today time.Time) entity.WeekData {
	days := make([]entity.DayData, 0, daysInWeekGrid)
	for offset := range daysInWeekGrid {
		days = append(days, e.day(habit, idx, e.cal.AddDays(start, offset), today))
	}
	return entity.WeekData{Days: days}
}

// trailingWeeks builds n week rows, oldest first, the last one being the current week
func (e *Engine) trailingWeeks(habit *entity.Habit, logs []entity.HabitLog, n int) []entity.WeekData {
	idx := e.index(logs)
	today := e.cal.Today()
	current := e.cal.StartOfWeek(today)
	weeks := make([]entity.WeekData, 0, n)
	for offset := n - 1; offset >= 0; offset-- {
		weeks = append(weeks, e.week(habit, idx, e.cal.AddDays(current, -7*offset), today))
	}
	return weeks
}

func (e *Engine) CurrentWeek(habit *entity.Habit, logs []entity.HabitLog) []entity.DayData {
	return e.trailingWeeks(habit, logs, 1)[0].Days
}

func (e *Engine) WeeksForPeriod(habit *entity.Habit, logs []entity.HabitLog, period entity.TimePeriod) []entity.WeekData {
	return e.trailingWeeks(habit, logs, period.Weeks())
}

// Last12Weeks feeds the fixed-size streak heat-map
func (e *Engine) Last12Weeks(habit *entity.Habit, logs []entity.HabitLog) []entity.WeekData {
	return e.trailingWeeks(habit, logs, heatmapWeeks)
}

// CurrentMonthCalendar lays the current month out in week rows. Padding days from the
// neighbouring months are included with IsCurrentMonth unset.
func (e *Engine) CurrentMonthCalendar(habit *entity.Habit, logs []entity.HabitLog) []entity.WeekData {
	idx := e.index(logs)
	today := e.cal.Today()
	date := e.cal.StartOfWeek(e.cal.StartOfMonth(today))

	weeks := make([]entity.WeekData, 0, maxMonthRows)
	for range maxMonthRows {
		days := make([]entity.DayData, 0, daysInWeekGrid)
		for range daysInWeekGrid {
			d := e.day(habit, idx, date, today)
			d.IsCurrentMonth = e.cal.SameMonth(date, today)
			days = append(days, d)
			date = e.cal.AddDays(date, 1)
		}
		weeks = append(weeks, entity.WeekData{Days: days})
		if !e.cal.SameMonth(date, today) {
			break
		}
	}
	return weeks
}
