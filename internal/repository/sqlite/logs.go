package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/habits/internal/error_values"
	"github.com/limbo/habits/pkg/entity"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const logColumns = `id, habit_id, log_date, value, completed, note, photo_data`

type HabitLogsRepository struct {
	db *sql.DB
}

func NewHabitLogsRepo(db *sql.DB) *HabitLogsRepository {
	return &HabitLogsRepository{
		db: db,
	}
}

func (lr *HabitLogsRepository) Upsert(ctx context.Context, habitLog *entity.HabitLog, patch entity.LogPatch) (*entity.HabitLog, error) {
	var photo any
	if patch.PhotoData != nil {
		photo = []byte{}
		if *patch.PhotoData != nil {
			photo = *patch.PhotoData
		}
	}
	var note any
	if patch.Note != nil {
		note = *patch.Note
	}
	row := lr.db.QueryRowContext(ctx, `INSERT INTO habit_logs (`+logColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (habit_id, log_date) DO UPDATE SET
			value = excluded.value,
			completed = excluded.completed,
			note = COALESCE(excluded.note, habit_logs.note),
			photo_data = COALESCE(excluded.photo_data, habit_logs.photo_data)
		RETURNING `+logColumns+`;`,
		habitLog.ID.String(),
		habitLog.HabitID.String(),
		formatTime(habitLog.Date),
		habitLog.Value,
		habitLog.Completed,
		note,
		photo,
	)
	stored, err := scanLog(row)
	if err != nil {
		var sqliteErr *sqlite.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY {
			return nil, errorvalues.ErrHabitNotFound
		}
		return nil, errors.New("upserting log error: " + err.Error())
	}
	return stored, nil
}

func (lr *HabitLogsRepository) GetByHabitAndDate(ctx context.Context, habitID uuid.UUID, day time.Time) (*entity.HabitLog, error) {
	row := lr.db.QueryRowContext(ctx, `SELECT `+logColumns+` FROM habit_logs WHERE habit_id = ? AND log_date = ?;`,
		habitID.String(),
		formatTime(day),
	)
	stored, err := scanLog(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errorvalues.ErrLogNotFound
		}
		return nil, errors.New("getting log error: " + err.Error())
	}
	return stored, nil
}

func (lr *HabitLogsRepository) ListByHabit(ctx context.Context, habitID uuid.UUID) ([]entity.HabitLog, error) {
	rows, err := lr.db.QueryContext(ctx, `SELECT `+logColumns+` FROM habit_logs WHERE habit_id = ? ORDER BY log_date DESC;`, habitID.String())
	if err != nil {
		return nil, errors.New("listing habit logs error: " + err.Error())
	}
	return collectLogs(rows)
}

func (lr *HabitLogsRepository) ListAll(ctx context.Context) ([]entity.HabitLog, error) {
	rows, err := lr.db.QueryContext(ctx, `SELECT `+logColumns+` FROM habit_logs ORDER BY log_date DESC;`)
	if err != nil {
		return nil, errors.New("listing logs error: " + err.Error())
	}
	return collectLogs(rows)
}

func (lr *HabitLogsRepository) Delete(ctx context.Context, habitID uuid.UUID, day time.Time) error {
	res, err := lr.db.ExecContext(ctx, `DELETE FROM habit_logs WHERE habit_id = ? AND log_date = ?;`,
		habitID.String(),
		formatTime(day),
	)
	if err != nil {
		return errors.New("deleting log error: " + err.Error())
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return errorvalues.ErrLogNotFound
	}
	return nil
}

func scanLog(row scanner) (*entity.HabitLog, error) {
	var (
		l                 entity.HabitLog
		id, habitID, date string
		note              sql.NullString
	)
	if err := row.Scan(&id, &habitID, &date, &l.Value, &l.Completed, &note, &l.PhotoData); err != nil {
		return nil, err
	}
	var err error
	if l.ID, err = uuid.Parse(id); err != nil {
		return nil, err
	}
	if l.HabitID, err = uuid.Parse(habitID); err != nil {
		return nil, err
	}
	if l.Date, err = parseTime(date); err != nil {
		return nil, err
	}
	if note.Valid {
		l.Note = &note.String
	}
	return &l, nil
}

func collectLogs(rows *sql.Rows) ([]entity.HabitLog, error) {
	defer rows.Close()
	result := make([]entity.HabitLog, 0)
	for rows.Next() {
		l, err := scanLog(rows)
		if err != nil {
			return nil, errors.New("log row parsing error: " + err.Error())
		}
		result = append(result, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.New("unexpected log rows error: " + err.Error())
	}
	return result, nil
}
