package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/habits/internal/error_values"
	"github.com/limbo/habits/internal/repository"
	"github.com/limbo/habits/pkg/calendar"
	"github.com/limbo/habits/pkg/entity"
)

type HabitLogsService struct {
	habits repository.HabitsRepositoryI
	logs   repository.HabitLogsRepositoryI
	cal    calendar.Calendar
}

func NewHabitLogsService(habitsRepo repository.HabitsRepositoryI, logsRepo repository.HabitLogsRepositoryI, cal calendar.Calendar) *HabitLogsService {
	if habitsRepo == nil {
		log.Fatal("provided nil habitsRepo")
	}
	if logsRepo == nil {
		log.Fatal("provided nil logsRepo")
	}
	if cal == nil {
		log.Fatal("provided nil calendar")
	}
	InitValidator()
	return &HabitLogsService{
		habits: habitsRepo,
		logs:   logsRepo,
		cal:    cal,
	}
}

func (ls *HabitLogsService) habit(ctx context.Context, habitID uuid.UUID) (*entity.Habit, error) {
	habit, err := ls.habits.GetByID(ctx, habitID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrHabitNotFound) {
			return nil, err
		}
		return nil, errors.New("habits repository error: " + err.Error())
	}
	return habit, nil
}

// day normalizes date to the start of its calendar day, zero date meaning today
func (ls *HabitLogsService) day(date time.Time) time.Time {
	if date.IsZero() {
		return ls.cal.Today()
	}
	return ls.cal.StartOfDay(date)
}

func (ls *HabitLogsService) LogProgress(ctx context.Context, habitID uuid.UUID, date time.Time, req LogProgressRequest) (stored *entity.HabitLog, err error) {
	defer func() { observeMutation("log_progress", err) }()
	if err = validateRequest(req); err != nil {
		return nil, err
	}
	habit, err := ls.habit(ctx, habitID)
	if err != nil {
		return nil, err
	}
	return ls.write(ctx, habit, date, req.Value, req.Patch())
}

func (ls *HabitLogsService) MarkComplete(ctx context.Context, habitID uuid.UUID, date time.Time) (stored *entity.HabitLog, err error) {
	defer func() { observeMutation("mark_complete", err) }()
	habit, err := ls.habit(ctx, habitID)
	if err != nil {
		return nil, err
	}
	return ls.write(ctx, habit, date, habit.CompletionValue(), entity.LogPatch{})
}

// write is the only place a log value gets stored, so completion is always recomputed here
func (ls *HabitLogsService) write(ctx context.Context, habit *entity.Habit, date time.Time, value float64, patch entity.LogPatch) (*entity.HabitLog, error) {
	habitLog := entity.HabitLog{
		ID:        uuid.New(),
		HabitID:   habit.ID,
		Date:      ls.day(date),
		Value:     value,
		Completed: habit.IsCompleted(value),
	}
	stored, err := ls.logs.Upsert(ctx, &habitLog, patch)
	if err != nil {
		if errors.Is(err, errorvalues.ErrHabitNotFound) {
			return nil, err
		}
		return nil, errors.New("logs repository error: " + err.Error())
	}
	if stored.Completed {
		completedWritesTotal.Inc()
	}
	return stored, nil
}

func (ls *HabitLogsService) DeleteLog(ctx context.Context, habitID uuid.UUID, date time.Time) (err error) {
	defer func() { observeMutation("delete_log", err) }()
	err = ls.logs.Delete(ctx, habitID, ls.day(date))
	if err != nil {
		if errors.Is(err, errorvalues.ErrLogNotFound) {
			return nil
		}
		return errors.New("logs repository error: " + err.Error())
	}
	return nil
}

func (ls *HabitLogsService) GetLog(ctx context.Context, habitID uuid.UUID, date time.Time) (*entity.HabitLog, error) {
	stored, err := ls.logs.GetByHabitAndDate(ctx, habitID, ls.day(date))
	if err != nil {
		if errors.Is(err, errorvalues.ErrLogNotFound) {
			return nil, err
		}
		return nil, errors.New("logs repository error: " + err.Error())
	}
	return stored, nil
}

func (ls *HabitLogsService) GetHabitLogs(ctx context.Context, habitID uuid.UUID) ([]entity.HabitLog, error) {
	if _, err := ls.habit(ctx, habitID); err != nil {
		return nil, err
	}
	logs, err := ls.logs.ListByHabit(ctx, habitID)
	if err != nil {
		return nil, errors.New("logs repository error: " + err.Error())
	}
	return logs, nil
}

func (ls *HabitLogsService) Feed(ctx context.Context) ([]entity.FeedItem, error) {
	habits, err := ls.habits.List(ctx)
	if err != nil {
		return nil, errors.New("habits repository error: " + err.Error())
	}
	byID := make(map[uuid.UUID]*entity.Habit, len(habits))
	for _, h := range habits {
		byID[h.ID] = h
	}
	logs, err := ls.logs.ListAll(ctx)
	if err != nil {
		return nil, errors.New("logs repository error: " + err.Error())
	}
	feed := make([]entity.FeedItem, 0, len(logs))
	for _, l := range logs {
		habit, ok := byID[l.HabitID]
		if !ok {
			continue
		}
		feed = append(feed, entity.FeedItem{Log: l, Habit: *habit})
	}
	return feed, nil
}
