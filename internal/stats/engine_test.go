package stats_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/limbo/habits/internal/stats"
	"github.com/limbo/habits/pkg/calendar"
	"github.com/limbo/habits/pkg/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	zone = time.FixedZone("UTC-5", -5*60*60)
	// Wednesday
	now = time.Date(2026, 10, 14, 15, 30, 0, 0, zone)
)

func newEngine(clock time.Time, lookback int) (*stats.Engine, calendar.Calendar) {
	cal := calendar.New(zone, time.Sunday, calendar.WithClock(func() time.Time { return clock }))
	return stats.New(cal, lookback), cal
}

func dailyHabit(target float64) *entity.Habit {
	return &entity.Habit{
		ID:            uuid.New(),
		Name:          "read",
		FrequencyType: entity.FrequencyDaily,
		TargetValue:   target,
		CreatedAt:     now.AddDate(0, -1, 0),
	}
}

// logAt builds a log offset days away from today with the completed flag derived from the habit
func logAt(cal calendar.Calendar, habit *entity.Habit, offset int, value float64) entity.HabitLog {
	return entity.HabitLog{
		ID:        uuid.New(),
		HabitID:   habit.ID,
		Date:      cal.AddDays(cal.Today(), offset),
		Value:     value,
		Completed: habit.IsCompleted(value),
	}
}

func TestIntensity(t *testing.T) {
	engine, _ := newEngine(now, 0)
	daily := dailyHabit(100)
	weekly := &entity.Habit{FrequencyType: entity.FrequencyTimesPerWeek, TargetValue: 3}
	testCases := []struct {
		Desc     string
		Habit    *entity.Habit
		Log      *entity.HabitLog
		Expected entity.IntensityLevel
	}{
		{Desc: "no log", Habit: daily, Log: nil, Expected: entity.IntensityNone},
		{Desc: "daily zero value", Habit: daily, Log: &entity.HabitLog{Value: 0}, Expected: entity.IntensityNone},
		{Desc: "daily low", Habit: daily, Log: &entity.HabitLog{Value: 10}, Expected: entity.IntensityLow},
		{Desc: "daily medium boundary", Habit: daily, Log: &entity.HabitLog{Value: 50}, Expected: entity.IntensityMedium},
		{Desc: "daily high boundary", Habit: daily, Log: &entity.HabitLog{Value: 100, Completed: true}, Expected: entity.IntensityHigh},
		{Desc: "daily just under very high", Habit: daily, Log: &entity.HabitLog{Value: 149, Completed: true}, Expected: entity.IntensityHigh},
		{Desc: "daily very high boundary", Habit: daily, Log: &entity.HabitLog{Value: 150, Completed: true}, Expected: entity.IntensityVeryHigh},
		{Desc: "weekly completed", Habit: weekly, Log: &entity.HabitLog{Value: 1, Completed: true}, Expected: entity.IntensityVeryHigh},
		{Desc: "weekly not completed", Habit: weekly, Log: &entity.HabitLog{Value: 0}, Expected: entity.IntensityNone},
	}
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			assert.Equal(t, tc.Expected, engine.Intensity(tc.Habit, tc.Log))
		})
	}
}

func TestDailyHabitExample(t *testing.T) {
	engine, cal := newEngine(now, 0)
	habit := dailyHabit(100)
	logs := []entity.HabitLog{
		logAt(cal, habit, -4, 100),
		logAt(cal, habit, -3, 50),
		logAt(cal, habit, -2, 120),
		logAt(cal, habit, -1, 100),
		logAt(cal, habit, 0, 100),
	}
	assert.Equal(t, 4, engine.TotalDays(logs))
	assert.Equal(t, 3, engine.CurrentStreak(logs))
	assert.Equal(t, 3, engine.LongestStreak(logs))
	assert.Equal(t, 470.0, engine.TotalCompleted(logs))
	assert.Equal(t, 100.0, engine.TodayValue(logs))
}

func TestCurrentStreak(t *testing.T) {
	t.Run("nothing logged today", func(t *testing.T) {
		engine, cal := newEngine(now, 0)
		habit := dailyHabit(1)
		logs := []entity.HabitLog{logAt(cal, habit, -1, 1), logAt(cal, habit, -2, 1)}
		assert.Equal(t, 0, engine.CurrentStreak(logs))
	})
	t.Run("today logged but not completed", func(t *testing.T) {
		engine, cal := newEngine(now, 0)
		habit := dailyHabit(10)
		logs := []entity.HabitLog{logAt(cal, habit, 0, 5), logAt(cal, habit, -1, 10)}
		assert.Equal(t, 0, engine.CurrentStreak(logs))
	})
	t.Run("bounded by lookback", func(t *testing.T) {
		engine, cal := newEngine(now, 5)
		habit := dailyHabit(1)
		logs := make([]entity.HabitLog, 0, 10)
		for i := range 10 {
			logs = append(logs, logAt(cal, habit, -i, 1))
		}
		assert.Equal(t, 5, engine.CurrentStreak(logs))
	})
	t.Run("default lookback caps at a year", func(t *testing.T) {
		engine, cal := newEngine(now, 0)
		habit := dailyHabit(1)
		logs := make([]entity.HabitLog, 0, 400)
		for i := range 400 {
			logs = append(logs, logAt(cal, habit, -i, 1))
		}
		assert.Equal(t, stats.DefaultStreakLookbackDays, engine.CurrentStreak(logs))
		assert.Equal(t, 400, engine.LongestStreak(logs))
	})
}

func TestLongestStreak(t *testing.T) {
	engine, cal := newEngine(now, 0)
	habit := dailyHabit(1)
	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, 0, engine.LongestStreak(nil))
	})
	t.Run("single", func(t *testing.T) {
		assert.Equal(t, 1, engine.LongestStreak([]entity.HabitLog{logAt(cal, habit, -30, 1)}))
	})
	t.Run("only incomplete logs", func(t *testing.T) {
		assert.Equal(t, 0, engine.LongestStreak([]entity.HabitLog{logAt(cal, habit, -1, 0)}))
	})
	t.Run("gaps reset the run, unsorted input", func(t *testing.T) {
		logs := []entity.HabitLog{
			logAt(cal, habit, -3, 1),
			logAt(cal, habit, -10, 1),
			logAt(cal, habit, -5, 1),
			logAt(cal, habit, -9, 1),
			logAt(cal, habit, -4, 1),
			logAt(cal, habit, -6, 0),
		}
		assert.Equal(t, 3, engine.LongestStreak(logs))
	})
	t.Run("duplicate dates never extend a streak", func(t *testing.T) {
		logs := []entity.HabitLog{
			logAt(cal, habit, -3, 1),
			logAt(cal, habit, -2, 1),
			logAt(cal, habit, -1, 1),
		}
		base := engine.LongestStreak(logs)
		assert.Equal(t, 3, base)
		withDuplicate := append(logs, logAt(cal, habit, -2, 5))
		assert.LessOrEqual(t, engine.LongestStreak(withDuplicate), base)
	})
	t.Run("restricted to period", func(t *testing.T) {
		logs := []entity.HabitLog{
			logAt(cal, habit, -12, 1),
			logAt(cal, habit, -11, 1),
			logAt(cal, habit, -10, 1),
			logAt(cal, habit, -9, 1),
			logAt(cal, habit, -2, 1),
			logAt(cal, habit, -1, 1),
		}
		assert.Equal(t, 4, engine.LongestStreak(logs))
		assert.Equal(t, 2, engine.LongestStreakSince(logs, cal.AddDays(cal.Today(), -7)))
		assert.Equal(t, 3, engine.LongestStreakSince(logs, cal.AddDays(cal.Today(), -11)))
	})
}

func TestCompletionRate(t *testing.T) {
	engine, cal := newEngine(now, 0)
	habit := dailyHabit(1)
	habit.CreatedAt = cal.AddDays(cal.Today(), -9).Add(10 * time.Hour)
	logs := []entity.HabitLog{
		logAt(cal, habit, -1, 1),
		logAt(cal, habit, -3, 1),
		logAt(cal, habit, -5, 1),
		logAt(cal, habit, -6, 0),
	}
	assert.InDelta(t, 0.3, engine.CompletionRate(habit, logs), 1e-9)

	habit.CreatedAt = now
	assert.InDelta(t, 1.0, engine.CompletionRate(habit, logs[:1]), 1e-9)
	assert.InDelta(t, 0.0, engine.CompletionRate(habit, nil), 1e-9)
}

func TestWeekValue(t *testing.T) {
	engine, cal := newEngine(now, 0)
	habit := dailyHabit(10)
	logs := []entity.HabitLog{
		logAt(cal, habit, 0, 2),
		logAt(cal, habit, -7, 1),
		logAt(cal, habit, -8, 100),
	}
	assert.Equal(t, 3.0, engine.WeekValue(logs))
}

func TestStatisticsForPeriod(t *testing.T) {
	engine, cal := newEngine(now, 0)
	habit := dailyHabit(10)
	logs := []entity.HabitLog{
		logAt(cal, habit, 0, 10),
		logAt(cal, habit, -1, 10),
		logAt(cal, habit, -2, 4),
		logAt(cal, habit, -7, 10),
		logAt(cal, habit, -8, 10),
		logAt(cal, habit, -29, 10),
		logAt(cal, habit, -200, 10),
	}
	testCases := []struct {
		Period   entity.TimePeriod
		Expected entity.PeriodStatistics
	}{
		{
			Period: entity.PeriodWeek,
			Expected: entity.PeriodStatistics{
				CompletedDays:  3,
				TotalValue:     34,
				CompletionRate: 3.0 / 7.0,
				LongestStreak:  2,
			},
		},
		{
			Period: entity.PeriodMonth,
			Expected: entity.PeriodStatistics{
				CompletedDays:  5,
				TotalValue:     54,
				CompletionRate: 5.0 / 30.0,
				LongestStreak:  2,
			},
		},
		{
			Period: entity.PeriodYear,
			Expected: entity.PeriodStatistics{
				CompletedDays:  6,
				TotalValue:     64,
				CompletionRate: 6.0 / 365.0,
				LongestStreak:  2,
			},
		},
	}
	for _, tc := range testCases {
		t.Run(string(tc.Period), func(t *testing.T) {
			result := engine.StatisticsForPeriod(habit, logs, tc.Period)
			assert.Equal(t, tc.Expected.CompletedDays, result.CompletedDays)
			assert.InDelta(t, tc.Expected.TotalValue, result.TotalValue, 1e-9)
			assert.InDelta(t, tc.Expected.CompletionRate, result.CompletionRate, 1e-9)
			assert.Equal(t, tc.Expected.LongestStreak, result.LongestStreak)
		})
	}
}

func TestCurrentWeekWeeklyHabit(t *testing.T) {
	engine, cal := newEngine(now, 0)
	habit := &entity.Habit{ID: uuid.New(), FrequencyType: entity.FrequencyTimesPerWeek, TargetValue: 3}
	// Monday of the current week
	monday := logAt(cal, habit, -2, 1)
	require.True(t, monday.Completed)

	days := engine.CurrentWeek(habit, []entity.HabitLog{monday})
	require.Len(t, days, 7)
	assert.True(t, time.Date(2026, 10, 11, 0, 0, 0, 0, zone).Equal(days[0].Date))
	assert.Equal(t, time.Monday, days[1].Date.Weekday())
	assert.Equal(t, entity.IntensityVeryHigh, days[1].Intensity)
	require.NotNil(t, days[1].Log)
	assert.Equal(t, monday.ID, days[1].Log.ID)
	assert.Equal(t, entity.IntensityNone, days[2].Intensity)
	assert.Nil(t, days[2].Log)
	for i, d := range days {
		assert.Equal(t, i == 3, d.IsToday, "day %d", i)
		assert.True(t, d.IsCurrentMonth)
	}
}

func TestWeeksForPeriod(t *testing.T) {
	engine, cal := newEngine(now, 0)
	habit := dailyHabit(1)
	currentWeek := time.Date(2026, 10, 11, 0, 0, 0, 0, zone)
	testCases := []struct {
		Period entity.TimePeriod
		Weeks  int
	}{
		{Period: entity.PeriodWeek, Weeks: 1},
		{Period: entity.PeriodMonth, Weeks: 4},
		{Period: entity.PeriodYear, Weeks: 52},
	}
	for _, tc := range testCases {
		t.Run(string(tc.Period), func(t *testing.T) {
			weeks := engine.WeeksForPeriod(habit, nil, tc.Period)
			require.Len(t, weeks, tc.Weeks)
			last := weeks[len(weeks)-1]
			assert.True(t, currentWeek.Equal(last.Days[0].Date))
			first := weeks[0]
			assert.True(t, cal.AddDays(currentWeek, -7*(tc.Weeks-1)).Equal(first.Days[0].Date))
			for _, w := range weeks {
				assert.Len(t, w.Days, 7)
			}
		})
	}
}

func TestLast12Weeks(t *testing.T) {
	engine, cal := newEngine(now, 0)
	habit := dailyHabit(1)
	logs := []entity.HabitLog{logAt(cal, habit, 0, 2), logAt(cal, habit, -81, 1)}
	weeks := engine.Last12Weeks(habit, logs)
	require.Len(t, weeks, 12)
	assert.True(t, time.Date(2026, 7, 26, 0, 0, 0, 0, zone).Equal(weeks[0].Days[0].Date))
	today := weeks[11].Days[3]
	assert.True(t, today.IsToday)
	assert.Equal(t, entity.IntensityVeryHigh, today.Intensity)
	// 81 days ago falls before the first row
	for _, w := range weeks {
		for _, d := range w.Days {
			if d.Log != nil {
				assert.True(t, d.IsToday)
			}
		}
	}
}

func TestCurrentMonthCalendar(t *testing.T) {
	testCases := []struct {
		Desc      string
		Clock     time.Time
		Rows      int
		FirstCell time.Time
		LastCell  time.Time
	}{
		{
			Desc:      "october 2026 starts on thursday",
			Clock:     now,
			Rows:      5,
			FirstCell: time.Date(2026, 9, 27, 0, 0, 0, 0, zone),
			LastCell:  time.Date(2026, 10, 31, 0, 0, 0, 0, zone),
		},
		{
			Desc:      "august 2026 needs six rows",
			Clock:     time.Date(2026, 8, 15, 12, 0, 0, 0, zone),
			Rows:      6,
			FirstCell: time.Date(2026, 7, 26, 0, 0, 0, 0, zone),
			LastCell:  time.Date(2026, 9, 5, 0, 0, 0, 0, zone),
		},
		{
			Desc:      "february 2026 fits four rows",
			Clock:     time.Date(2026, 2, 10, 12, 0, 0, 0, zone),
			Rows:      4,
			FirstCell: time.Date(2026, 2, 1, 0, 0, 0, 0, zone),
			LastCell:  time.Date(2026, 2, 28, 0, 0, 0, 0, zone),
		},
	}
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			engine, cal := newEngine(tc.Clock, 0)
			habit := dailyHabit(1)
			weeks := engine.CurrentMonthCalendar(habit, nil)
			require.Len(t, weeks, tc.Rows)
			first := weeks[0].Days[0]
			last := weeks[len(weeks)-1].Days[6]
			assert.True(t, tc.FirstCell.Equal(first.Date), "first cell %s", first.Date)
			assert.True(t, tc.LastCell.Equal(last.Date), "last cell %s", last.Date)
			todays := 0
			for _, w := range weeks {
				require.Len(t, w.Days, 7)
				for _, d := range w.Days {
					assert.Equal(t, cal.SameMonth(d.Date, tc.Clock), d.IsCurrentMonth)
					if d.IsToday {
						todays++
					}
				}
			}
			assert.Equal(t, 1, todays)
		})
	}
}

func TestSummary(t *testing.T) {
	engine, cal := newEngine(now, 0)
	habit := dailyHabit(2)
	habit.CreatedAt = cal.AddDays(cal.Today(), -3)
	logs := []entity.HabitLog{
		logAt(cal, habit, 0, 2),
		logAt(cal, habit, -1, 3),
		logAt(cal, habit, -3, 1),
	}
	summary := engine.Summary(habit, logs)
	assert.Equal(t, habit.ID, summary.HabitID)
	assert.Equal(t, 2.0, summary.TodayValue)
	assert.Equal(t, 6.0, summary.WeekValue)
	assert.Equal(t, 2, summary.TotalDays)
	assert.Equal(t, 2, summary.PerfectDays)
	assert.Equal(t, 6.0, summary.TotalCompleted)
	assert.InDelta(t, 0.5, summary.CompletionRate, 1e-9)
	assert.Equal(t, 2, summary.CurrentStreak)
	assert.Equal(t, 2, summary.LongestStreak)
}
