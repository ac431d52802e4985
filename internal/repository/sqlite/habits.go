package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/habits/internal/error_values"
	"github.com/limbo/habits/pkg/entity"
)

type HabitsRepository struct {
	db *sql.DB
}

func NewHabitsRepo(db *sql.DB) *HabitsRepository {
	return &HabitsRepository{
		db: db,
	}
}

func (hr *HabitsRepository) Create(ctx context.Context, habit *entity.Habit) error {
	_, err := hr.db.ExecContext(ctx, `INSERT INTO habits (id, name, frequency_type, target_value, created_at) VALUES (?, ?, ?, ?, ?);`,
		habit.ID.String(),
		habit.Name,
		string(habit.FrequencyType),
		habit.TargetValue,
		formatTime(habit.CreatedAt),
	)
	if err != nil {
		return errors.New("creating habit db error: " + err.Error())
	}
	return nil
}

func (hr *HabitsRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Habit, error) {
	row := hr.db.QueryRowContext(ctx, `SELECT id, name, frequency_type, target_value, created_at FROM habits WHERE id = ?;`, id.String())
	habit, err := scanHabit(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errorvalues.ErrHabitNotFound
		}
		return nil, errors.New("getting habit by id error: " + err.Error())
	}
	return habit, nil
}

func (hr *HabitsRepository) List(ctx context.Context) ([]*entity.Habit, error) {
	rows, err := hr.db.QueryContext(ctx, `SELECT id, name, frequency_type, target_value, created_at FROM habits ORDER BY created_at ASC;`)
	if err != nil {
		return nil, errors.New("listing habits error: " + err.Error())
	}
	defer rows.Close()
	habits := make([]*entity.Habit, 0)
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, errors.New("unmarshalling habit error: " + err.Error())
		}
		habits = append(habits, h)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.New("unexpected error after scanning habits: " + err.Error())
	}
	return habits, nil
}

func (hr *HabitsRepository) UpdateName(ctx context.Context, id uuid.UUID, name string) error {
	res, err := hr.db.ExecContext(ctx, `UPDATE habits SET name = ? WHERE id = ?;`, name, id.String())
	if err != nil {
		return errors.New("error updating habit: " + err.Error())
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return errorvalues.ErrHabitNotFound
	}
	return nil
}

func (hr *HabitsRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := hr.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.New("error starting tx: " + err.Error())
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, `DELETE FROM habit_logs WHERE habit_id = ?;`, id.String()); err != nil {
		return errors.New("error deleting habit logs: " + err.Error())
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM habits WHERE id = ?;`, id.String())
	if err != nil {
		return errors.New("error deleting habit: " + err.Error())
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return errorvalues.ErrHabitNotFound
	}
	if err = tx.Commit(); err != nil {
		return errors.New("error committing habit deletion: " + err.Error())
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanHabit(row scanner) (*entity.Habit, error) {
	var (
		h                    entity.Habit
		id, frequency, added string
	)
	if err := row.Scan(&id, &h.Name, &frequency, &h.TargetValue, &added); err != nil {
		return nil, err
	}
	var err error
	if h.ID, err = uuid.Parse(id); err != nil {
		return nil, err
	}
	if h.CreatedAt, err = parseTime(added); err != nil {
		return nil, err
	}
	h.FrequencyType = entity.FrequencyType(frequency)
	return &h, nil
}
