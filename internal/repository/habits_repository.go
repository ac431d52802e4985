package repository

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	errorvalues "github.com/limbo/habits/internal/error_values"
	"github.com/limbo/habits/pkg/entity"
)

type HabitsRepository struct {
	conn PgConnection
}

func NewHabitsRepoWithConn(conn PgConnection) *HabitsRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for habitsRepo: " + err.Error())
	}
	return &HabitsRepository{
		conn: conn,
	}
}

func (hr *HabitsRepository) Create(ctx context.Context, habit *entity.Habit) error {
	_, err := hr.conn.Exec(ctx, `INSERT INTO habits (id, name, frequency_type, target_value, created_at) VALUES ($1, $2, $3, $4, $5);`,
		habit.ID,
		habit.Name,
		string(habit.FrequencyType),
		habit.TargetValue,
		habit.CreatedAt,
	)
	if err != nil {
		return errors.New("creating habit db error: " + err.Error())
	}
	return nil
}

func (hr *HabitsRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Habit, error) {
	var (
		habit     entity.Habit
		frequency string
	)
	habit.ID = id
	row := hr.conn.QueryRow(ctx, `SELECT name, frequency_type, target_value, created_at FROM habits WHERE id = $1;`, id)
	if err := row.Scan(&habit.Name, &frequency, &habit.TargetValue, &habit.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrHabitNotFound
		}
		return nil, errors.New("getting habit by id error: " + err.Error())
	}
	habit.FrequencyType = entity.FrequencyType(frequency)
	return &habit, nil
}

func (hr *HabitsRepository) List(ctx context.Context) ([]*entity.Habit, error) {
	habits := make([]*entity.Habit, 0)
	rows, err := hr.conn.Query(ctx, `SELECT id, name, frequency_type, target_value, created_at FROM habits ORDER BY created_at ASC;`)
	if err != nil {
		return nil, errors.New("listing habits error: " + err.Error())
	}
	defer rows.Close()
	for rows.Next() {
		var (
			h         entity.Habit
			frequency string
		)
		err = rows.Scan(&h.ID, &h.Name, &frequency, &h.TargetValue, &h.CreatedAt)
		if err != nil {
			return nil, errors.New("unmarshalling habit error: " + err.Error())
		}
		h.FrequencyType = entity.FrequencyType(frequency)
		habits = append(habits, &h)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.New("unexpected error after scanning habits: " + err.Error())
	}
	return habits, nil
}

func (hr *HabitsRepository) UpdateName(ctx context.Context, id uuid.UUID, name string) error {
	ct, err := hr.conn.Exec(ctx, `UPDATE habits SET name = $1 WHERE id = $2;`, name, id)
	if err != nil {
		return errors.New("error updating habit: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrHabitNotFound
	}
	return nil
}

// Delete removes logs first, then the habit, in one transaction.
// If either statement fails nothing is removed.
func (hr *HabitsRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := hr.conn.Begin(ctx)
	if err != nil {
		return errors.New("error starting tx: " + err.Error())
	}
	_, err = tx.Exec(ctx, `DELETE FROM habit_logs WHERE habit_id = $1;`, id)
	if err != nil {
		tx.Rollback(ctx)
		return errors.New("error deleting habit logs: " + err.Error())
	}
	ct, err := tx.Exec(ctx, `DELETE FROM habits WHERE id = $1;`, id)
	if err != nil {
		tx.Rollback(ctx)
		return errors.New("error deleting habit: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		tx.Rollback(ctx)
		return errorvalues.ErrHabitNotFound
	}
	if err = tx.Commit(ctx); err != nil {
		return errors.New("error committing habit deletion: " + err.Error())
	}
	return nil
}
