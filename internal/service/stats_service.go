package service

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/habits/internal/error_values"
	"github.com/limbo/habits/internal/repository"
	"github.com/limbo/habits/internal/stats"
	"github.com/limbo/habits/pkg/entity"
)

// StatsService loads a habit with its logs and hands them to the stats engine
type StatsService struct {
	habits repository.HabitsRepositoryI
	logs   repository.HabitLogsRepositoryI
	engine *stats.Engine
}

func NewStatsService(habitsRepo repository.HabitsRepositoryI, logsRepo repository.HabitLogsRepositoryI, engine *stats.Engine) *StatsService {
	if habitsRepo == nil {
		log.Fatal("provided nil habitsRepo")
	}
	if logsRepo == nil {
		log.Fatal("provided nil logsRepo")
	}
	if engine == nil {
		log.Fatal("provided nil stats engine")
	}
	return &StatsService{
		habits: habitsRepo,
		logs:   logsRepo,
		engine: engine,
	}
}

func (ss *StatsService) load(ctx context.Context, habitID uuid.UUID) (*entity.Habit, []entity.HabitLog, error) {
	habit, err := ss.habits.GetByID(ctx, habitID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrHabitNotFound) {
			return nil, nil, err
		}
		return nil, nil, errors.New("habits repository error: " + err.Error())
	}
	logs, err := ss.logs.ListByHabit(ctx, habitID)
	if err != nil {
		return nil, nil, errors.New("logs repository error: " + err.Error())
	}
	return habit, logs, nil
}

func (ss *StatsService) Summary(ctx context.Context, habitID uuid.UUID) (*entity.HabitSummary, error) {
	habit, logs, err := ss.load(ctx, habitID)
	if err != nil {
		return nil, err
	}
	summary := ss.engine.Summary(habit, logs)
	return &summary, nil
}

func (ss *StatsService) Statistics(ctx context.Context, habitID uuid.UUID, period entity.TimePeriod) (*entity.PeriodStatistics, error) {
	if !period.Valid() {
		return nil, errorvalues.ErrInvalidPeriod
	}
	habit, logs, err := ss.load(ctx, habitID)
	if err != nil {
		return nil, err
	}
	result := ss.engine.StatisticsForPeriod(habit, logs, period)
	return &result, nil
}

func (ss *StatsService) CurrentWeek(ctx context.Context, habitID uuid.UUID) ([]entity.DayData, error) {
	habit, logs, err := ss.load(ctx, habitID)
	if err != nil {
		return nil, err
	}
	return ss.engine.CurrentWeek(habit, logs), nil
}

func (ss *StatsService) WeeksForPeriod(ctx context.Context, habitID uuid.UUID, period entity.TimePeriod) ([]entity.WeekData, error) {
	if !period.Valid() {
		return nil, errorvalues.ErrInvalidPeriod
	}
	habit, logs, err := ss.load(ctx, habitID)
	if err != nil {
		return nil, err
	}
	return ss.engine.WeeksForPeriod(habit, logs, period), nil
}

func (ss *StatsService) MonthCalendar(ctx context.Context, habitID uuid.UUID) ([]entity.WeekData, error) {
	habit, logs, err := ss.load(ctx, habitID)
	if err != nil {
		return nil, err
	}
	return ss.engine.CurrentMonthCalendar(habit, logs), nil
}

func (ss *StatsService) Heatmap(ctx context.Context, habitID uuid.UUID) ([]entity.WeekData, error) {
	habit, logs, err := ss.load(ctx, habitID)
	if err != nil {
		return nil, err
	}
	return ss.engine.Last12Weeks(habit, logs), nil
}
