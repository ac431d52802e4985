package service

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/habits/internal/error_values"
	"github.com/limbo/habits/internal/repository"
	"github.com/limbo/habits/pkg/calendar"
	"github.com/limbo/habits/pkg/entity"
)

type HabitsService struct {
	repo repository.HabitsRepositoryI
	cal  calendar.Calendar
}

func NewHabitsService(habitsRepo repository.HabitsRepositoryI, cal calendar.Calendar) *HabitsService {
	if habitsRepo == nil {
		log.Fatal("provided nil habitsRepo")
	}
	if cal == nil {
		log.Fatal("provided nil calendar")
	}
	InitValidator()
	return &HabitsService{
		repo: habitsRepo,
		cal:  cal,
	}
}

func (hs *HabitsService) CreateHabit(ctx context.Context, req CreateHabitRequest) (habit *entity.Habit, err error) {
	defer func() { observeMutation("create_habit", err) }()
	if err = validateRequest(req); err != nil {
		return nil, err
	}
	habit = &entity.Habit{
		ID:            uuid.New(),
		Name:          strings.TrimSpace(req.Name),
		FrequencyType: req.FrequencyType,
		TargetValue:   req.TargetValue,
		CreatedAt:     hs.cal.Now(),
	}
	if err = hs.repo.Create(ctx, habit); err != nil {
		return nil, errors.New("habits repository error: " + err.Error())
	}
	return habit, nil
}

func (hs *HabitsService) RenameHabit(ctx context.Context, habitID uuid.UUID, name string) (habit *entity.Habit, err error) {
	defer func() { observeMutation("rename_habit", err) }()
	habit, err = hs.GetHabit(ctx, habitID)
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return habit, nil
	}
	if err = validateRequest(RenameHabitRequest{Name: name}); err != nil {
		return nil, err
	}
	if err = hs.repo.UpdateName(ctx, habitID, name); err != nil {
		if errors.Is(err, errorvalues.ErrHabitNotFound) {
			return nil, err
		}
		return nil, errors.New("habits repository error: " + err.Error())
	}
	habit.Name = name
	return habit, nil
}

func (hs *HabitsService) DeleteHabit(ctx context.Context, habitID uuid.UUID) (err error) {
	defer func() { observeMutation("delete_habit", err) }()
	err = hs.repo.Delete(ctx, habitID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrHabitNotFound) {
			return nil
		}
		return errors.New("habits repository error: " + err.Error())
	}
	return nil
}

func (hs *HabitsService) GetHabit(ctx context.Context, habitID uuid.UUID) (*entity.Habit, error) {
	habit, err := hs.repo.GetByID(ctx, habitID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrHabitNotFound) {
			return nil, err
		}
		return nil, errors.New("habits repository error: " + err.Error())
	}
	return habit, nil
}

func (hs *HabitsService) ListHabits(ctx context.Context) ([]*entity.Habit, error) {
	habits, err := hs.repo.List(ctx)
	if err != nil {
		return nil, errors.New("habits repository error: " + err.Error())
	}
	return habits, nil
}
