package repository

//go:generate mockgen -source=interfaces.go -destination=mocks/repository_mocks.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/limbo/habits/pkg/entity"
)

type HabitsRepositoryI interface {
	// Creates new habit. ID and CreatedAt must be filled by caller
	Create(ctx context.Context, habit *entity.Habit) error
	// Searches habit with given id
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Habit, error)
	// Lists all habits, oldest first
	List(ctx context.Context) ([]*entity.Habit, error)
	// Sets new name for habit with id
	UpdateName(ctx context.Context, id uuid.UUID, name string) error
	// Deletes habit with id together with all its logs
	Delete(ctx context.Context, id uuid.UUID) error
}

type HabitLogsRepositoryI interface {
	// Inserts the log or, if the habit already has a log on log.Date, overwrites
	// its value and completed flag. Note and photo are written only when set in patch.
	// Returns the stored row.
	Upsert(ctx context.Context, log *entity.HabitLog, patch entity.LogPatch) (*entity.HabitLog, error)
	// Returns the log of habit on day
	GetByHabitAndDate(ctx context.Context, habitID uuid.UUID, day time.Time) (*entity.HabitLog, error)
	// Lists logs of habit, newest first
	ListByHabit(ctx context.Context, habitID uuid.UUID) ([]entity.HabitLog, error)
	// Lists logs of every habit, newest first
	ListAll(ctx context.Context) ([]entity.HabitLog, error)
	// Deletes the log of habit on day
	Delete(ctx context.Context, habitID uuid.UUID, day time.Time) error
}

type DBConfig interface {
	ConnString() string
}

type PgConnection interface {
	Ping(ctx context.Context) error
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PGCfg struct {
	Address  string
	Username string
	Password string
	DB       string
}

func (pgcfg *PGCfg) ConnString() string {
	return fmt.Sprintf("postgresql://%s:%s@%s/%s", pgcfg.Username, pgcfg.Password, pgcfg.Address, pgcfg.DB)
}

// photoArg converts a photo patch into a statement argument: NULL keeps the stored photo
func photoArg(patch entity.LogPatch) []byte {
	if patch.PhotoData == nil {
		return nil
	}
	if *patch.PhotoData == nil {
		return []byte{}
	}
	return *patch.PhotoData
}
