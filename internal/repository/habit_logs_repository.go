package repository

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	errorvalues "github.com/limbo/habits/internal/error_values"
	"github.com/limbo/habits/pkg/entity"
)

const upsertLogQuery = `INSERT INTO habit_logs (id, habit_id, log_date, value, completed, note, photo_data)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (habit_id, log_date) DO UPDATE SET
		value = EXCLUDED.value,
		completed = EXCLUDED.completed,
		note = COALESCE(EXCLUDED.note, habit_logs.note),
		photo_data = COALESCE(EXCLUDED.photo_data, habit_logs.photo_data)
	RETURNING id, habit_id, log_date, value, completed, note, photo_data;`

type HabitLogsRepository struct {
	conn PgConnection
}

func NewHabitLogsRepoWithConn(conn PgConnection) *HabitLogsRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for habitLogsRepo: " + err.Error())
	}
	return &HabitLogsRepository{
		conn: conn,
	}
}

func (lr *HabitLogsRepository) Upsert(ctx context.Context, habitLog *entity.HabitLog, patch entity.LogPatch) (*entity.HabitLog, error) {
	row := lr.conn.QueryRow(
		ctx,
		upsertLogQuery,
		habitLog.ID,
		habitLog.HabitID,
		habitLog.Date,
		habitLog.Value,
		habitLog.Completed,
		patch.Note,
		photoArg(patch),
	)
	stored, err := scanLog(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// FK violation
			case "23503":
				return nil, errorvalues.ErrHabitNotFound
			}
		}
		return nil, errors.New("upserting log error: " + err.Error())
	}
	return stored, nil
}

func (lr *HabitLogsRepository) GetByHabitAndDate(ctx context.Context, habitID uuid.UUID, day time.Time) (*entity.HabitLog, error) {
	row := lr.conn.QueryRow(
		ctx,
		`SELECT id, habit_id, log_date, value, completed, note, photo_data FROM habit_logs WHERE habit_id = $1 AND log_date = $2;`,
		habitID,
		day,
	)
	stored, err := scanLog(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrLogNotFound
		}
		return nil, errors.New("getting log error: " + err.Error())
	}
	return stored, nil
}

func (lr *HabitLogsRepository) ListByHabit(ctx context.Context, habitID uuid.UUID) ([]entity.HabitLog, error) {
	rows, err := lr.conn.Query(
		ctx,
		`SELECT id, habit_id, log_date, value, completed, note, photo_data FROM habit_logs WHERE habit_id = $1 ORDER BY log_date DESC;`,
		habitID,
	)
	if err != nil {
		return nil, errors.New("listing habit logs error: " + err.Error())
	}
	return collectLogs(rows)
}

func (lr *HabitLogsRepository) ListAll(ctx context.Context) ([]entity.HabitLog, error) {
	rows, err := lr.conn.Query(
		ctx,
		`SELECT id, habit_id, log_date, value, completed, note, photo_data FROM habit_logs ORDER BY log_date DESC;`,
	)
	if err != nil {
		return nil, errors.New("listing logs error: " + err.Error())
	}
	return collectLogs(rows)
}

func (lr *HabitLogsRepository) Delete(ctx context.Context, habitID uuid.UUID, day time.Time) error {
	ct, err := lr.conn.Exec(
		ctx,
		`DELETE FROM habit_logs WHERE habit_id = $1 AND log_date = $2;`,
		habitID,
		day,
	)
	if err != nil {
		return errors.New("deleting log error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrLogNotFound
	}
	return nil
}

func scanLog(row pgx.Row) (*entity.HabitLog, error) {
	var l entity.HabitLog
	err := row.Scan(&l.ID, &l.HabitID, &l.Date, &l.Value, &l.Completed, &l.Note, &l.PhotoData)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func collectLogs(rows pgx.Rows) ([]entity.HabitLog, error) {
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
