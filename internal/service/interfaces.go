package service

//go:generate mockgen -source=interfaces.go -destination=mocks/service_mocks.go -package=mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/limbo/habits/pkg/entity"
)

type CreateHabitRequest struct {
	Name          string               `json:"name" validate:"not_blank,max=100"`
	FrequencyType entity.FrequencyType `json:"frequency_type" validate:"habit_frequency"`
	TargetValue   float64              `json:"target_value" validate:"finite,gt=0"`
}

type RenameHabitRequest struct {
	Name string `json:"name" validate:"max=100"`
}

type LogProgressRequest struct {
	Value float64 `json:"value" validate:"finite,gte=0"`
	// Absent keeps the stored note, empty string clears it
	Note *string `json:"note,omitempty"`
	// Base64 in JSON. Absent keeps the stored photo, empty clears it
	Photo *[]byte `json:"photo,omitempty"`
}

func (r *LogProgressRequest) Patch() entity.LogPatch {
	return entity.LogPatch{
		Note:      r.Note,
		PhotoData: r.Photo,
	}
}

type HabitsServiceI interface {
	// Validates request and stores a new habit created now
	CreateHabit(ctx context.Context, req CreateHabitRequest) (*entity.Habit, error)
	// Blank name leaves the habit unchanged
	RenameHabit(ctx context.Context, habitID uuid.UUID, name string) (*entity.Habit, error)
	// Removes the habit with all its logs. Absent habit is not an error
	DeleteHabit(ctx context.Context, habitID uuid.UUID) error
	GetHabit(ctx context.Context, habitID uuid.UUID) (*entity.Habit, error)
	// All habits, oldest first
	ListHabits(ctx context.Context) ([]*entity.Habit, error)
}

type HabitLogsServiceI interface {
	// Writes value for the day containing date, deriving completion from the habit's cadence
	LogProgress(ctx context.Context, habitID uuid.UUID, date time.Time, req LogProgressRequest) (*entity.HabitLog, error)
	// Logs the value that completes the day. Zero date means today
	MarkComplete(ctx context.Context, habitID uuid.UUID, date time.Time) (*entity.HabitLog, error)
	// Absent log is not an error
	DeleteLog(ctx context.Context, habitID uuid.UUID, date time.Time) error
	GetLog(ctx context.Context, habitID uuid.UUID, date time.Time) (*entity.HabitLog, error)
	// Logs of the habit, newest first
	GetHabitLogs(ctx context.Context, habitID uuid.UUID) ([]entity.HabitLog, error)
	// Logs of every habit, newest first, each with its habit
	Feed(ctx context.Context) ([]entity.FeedItem, error)
}

type StatsServiceI interface {
	Summary(ctx context.Context, habitID uuid.UUID) (*entity.HabitSummary, error)
	Statistics(ctx context.Context, habitID uuid.UUID, period entity.TimePeriod) (*entity.PeriodStatistics, error)
	CurrentWeek(ctx context.Context, habitID uuid.UUID) ([]entity.DayData, error)
	WeeksForPeriod(ctx context.Context, habitID uuid.UUID, period entity.TimePeriod) ([]entity.WeekData, error)
	MonthCalendar(ctx context.Context, habitID uuid.UUID) ([]entity.WeekData, error)
	Heatmap(ctx context.Context, habitID uuid.UUID) ([]entity.WeekData, error)
}
