package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	errorvalues "github.com/limbo/habits/internal/error_values"
	"github.com/limbo/habits/internal/repository/mocks"
	"github.com/limbo/habits/internal/service"
	"github.com/limbo/habits/internal/stats"
	"github.com/limbo/habits/pkg/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsService(t *testing.T) {
	ctrl := gomock.NewController(t)
	habits := mocks.NewMockHabitsRepositoryI(ctrl)
	logs := mocks.NewMockHabitLogsRepositoryI(ctrl)
	ss := service.NewStatsService(habits, logs, stats.New(fixedCalendar(), 0))
	ctx := context.Background()

	habit := &entity.Habit{
		ID:            uuid.New(),
		Name:          "pushups",
		FrequencyType: entity.FrequencyDaily,
		TargetValue:   100,
		CreatedAt:     time.Date(2026, 10, 5, 8, 0, 0, 0, zone),
	}
	today := time.Date(2026, 10, 14, 0, 0, 0, 0, zone)
	history := []entity.HabitLog{
		{HabitID: habit.ID, Date: today, Value: 100, Completed: true},
		{HabitID: habit.ID, Date: today.AddDate(0, 0, -1), Value: 100, Completed: true},
		{HabitID: habit.ID, Date: today.AddDate(0, 0, -2), Value: 120, Completed: true},
		{HabitID: habit.ID, Date: today.AddDate(0, 0, -3), Value: 50},
		{HabitID: habit.ID, Date: today.AddDate(0, 0, -4), Value: 100, Completed: true},
	}
	expectLoad := func() {
		habits.EXPECT().GetByID(gomock.Any(), habit.ID).Return(habit, nil)
		logs.EXPECT().ListByHabit(gomock.Any(), habit.ID).Return(history, nil)
	}

	t.Run("summary", func(t *testing.T) {
		expectLoad()
		summary, err := ss.Summary(ctx, habit.ID)
		require.NoError(t, err)
		assert.Equal(t, 4, summary.TotalDays)
		assert.Equal(t, 3, summary.CurrentStreak)
		assert.Equal(t, 3, summary.LongestStreak)
		assert.Equal(t, 100.0, summary.TodayValue)
		assert.Equal(t, 470.0, summary.TotalCompleted)
		assert.InDelta(t, 0.4, summary.CompletionRate, 1e-9)
	})
	t.Run("statistics", func(t *testing.T) {
		expectLoad()
		result, err := ss.Statistics(ctx, habit.ID, entity.PeriodWeek)
		require.NoError(t, err)
		assert.Equal(t, 4, result.CompletedDays)
		assert.InDelta(t, 4.0/7.0, result.CompletionRate, 1e-9)
	})
	t.Run("invalid period does not touch storage", func(t *testing.T) {
		_, err := ss.Statistics(ctx, habit.ID, "decade")
		assert.ErrorIs(t, err, errorvalues.ErrInvalidPeriod)
		_, err = ss.WeeksForPeriod(ctx, habit.ID, "")
		assert.ErrorIs(t, err, errorvalues.ErrInvalidPeriod)
	})
	t.Run("grids", func(t *testing.T) {
		expectLoad()
		week, err := ss.CurrentWeek(ctx, habit.ID)
		require.NoError(t, err)
		require.Len(t, week, 7)
		assert.Equal(t, time.Monday, week[0].Date.Weekday())
		assert.Equal(t, entity.IntensityHigh, week[0].Intensity)
		assert.True(t, week[2].IsToday)
		assert.Equal(t, entity.IntensityNone, week[3].Intensity)

		expectLoad()
		weeks, err := ss.WeeksForPeriod(ctx, habit.ID, entity.PeriodMonth)
		require.NoError(t, err)
		assert.Len(t, weeks, 4)

		expectLoad()
		month, err := ss.MonthCalendar(ctx, habit.ID)
		require.NoError(t, err)
		assert.NotEmpty(t, month)

		expectLoad()
		heatmap, err := ss.Heatmap(ctx, habit.ID)
		require.NoError(t, err)
		assert.Len(t, heatmap, 12)
	})
	t.Run("unknown habit", func(t *testing.T) {
		habits.EXPECT().GetByID(gomock.Any(), habit.ID).Return(nil, errorvalues.ErrHabitNotFound)
		_, err := ss.Summary(ctx, habit.ID)
		assert.ErrorIs(t, err, errorvalues.ErrHabitNotFound)
	})
	t.Run("logs error", func(t *testing.T) {
		habits.EXPECT().GetByID(gomock.Any(), habit.ID).Return(habit, nil)
		logs.EXPECT().ListByHabit(gomock.Any(), habit.ID).Return(nil, errors.New("db error"))
		_, err := ss.Heatmap(ctx, habit.ID)
		assert.EqualError(t, err, "logs repository error: db error")
	})
}
