package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/habits/internal/error_values"
	"github.com/limbo/habits/internal/service"
	"github.com/limbo/habits/pkg/entity"
	"github.com/limbo/habits/pkg/httputil"
)

const (
	// Photos travel base64-encoded inside the log body
	maxLogBodySize   = 10 << 20
	maxHabitBodySize = 64 << 10

	todayPathValue = "today"
)

type HabitResponse struct {
	*entity.Habit
	Subtitle string `json:"subtitle"`
	Unit     string `json:"unit"`
}

func newHabitResponse(habit *entity.Habit) HabitResponse {
	return HabitResponse{
		Habit:    habit,
		Subtitle: habit.Subtitle(),
		Unit:     habit.FrequencyType.Unit(),
	}
}

type ListHabitsResponse struct {
	Habits []HabitResponse `json:"habits"`
}

type HabitLogsResponse struct {
	HabitID uuid.UUID         `json:"habit_id"`
	Logs    []entity.HabitLog `json:"logs"`
}

type FeedResponse struct {
	Items []entity.FeedItem `json:"items"`
}

type WeeksResponse struct {
	HabitID uuid.UUID         `json:"habit_id"`
	Period  entity.TimePeriod `json:"period,omitempty"`
	Weeks   []entity.WeekData `json:"weeks"`
}

type WeekResponse struct {
	HabitID uuid.UUID        `json:"habit_id"`
	Days    []entity.DayData `json:"days"`
}

type StatisticsResponse struct {
	HabitID uuid.UUID         `json:"habit_id"`
	Period  entity.TimePeriod `json:"period"`
	*entity.PeriodStatistics
}

func isValidationError(err error) bool {
	for _, target := range []error{
		errorvalues.ErrEmptyName,
		errorvalues.ErrNameTooLong,
		errorvalues.ErrInvalidFrequency,
		errorvalues.ErrInvalidTarget,
		errorvalues.ErrInvalidValue,
		errorvalues.ErrInvalidPeriod,
		errorvalues.ErrInvalidDate,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func habitIDFromPath(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(r.PathValue("id"))
}

// dateFromPath reads YYYY-MM-DD in the user's zone. "today" yields the zero time,
// which services resolve against their own clock.
func (s *Server) dateFromPath(r *http.Request) (time.Time, error) {
	raw := strings.TrimSpace(r.PathValue("date"))
	if strings.EqualFold(raw, todayPathValue) {
		return time.Time{}, nil
	}
	day, err := s.cal.ParseDay(raw)
	if err != nil {
		return time.Time{}, errorvalues.ErrInvalidDate
	}
	return day, nil
}

func (s *Server) CreateHabit(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	var req service.CreateHabitRequest
	err := httputil.DecodeJSON(w, r, &req, maxHabitBodySize)
	if err != nil {
		logger.Error("create habit error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), time.Second*10)
	defer cancel()
	habit, err := s.habitService.CreateHabit(ctx, req)
	if err != nil {
		switch {
		case isValidationError(err):
			logger.Error("create habit error: invalid habit", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid habit", err)
		default:
			logger.Error("create habit error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while creating habit", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, newHabitResponse(habit))
	logger.Info("habit created", slog.String("habit_id", habit.ID.String()))
}

func (s *Server) ListHabits(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	ctx, cancel := context.WithTimeout(r.Context(), time.Second*15)
	defer cancel()
	habits, err := s.habitService.ListHabits(ctx)
	if err != nil {
		logger.Error("getting habits list error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting habits list", nil)
		return
	}
	resp := ListHabitsResponse{Habits: make([]HabitResponse, 0, len(habits))}
	for _, habit := range habits {
		resp.Habits = append(resp.Habits, newHabitResponse(habit))
	}
	httputil.WriteJSONResponse(w, http.StatusOK, resp)
	logger.Info("habits provided")
}

func (s *Server) GetHabit(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	id, err := habitIDFromPath(r)
	if err != nil {
		logger.Error("get habit error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid habit id in path value", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), time.Second*10)
	defer cancel()
	habit, err := s.habitService.GetHabit(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrHabitNotFound):
			logger.Error("get habit error: unexist habit")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "habit doesn't exist", nil)
		default:
			logger.Error("get habit error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while getting habit", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, newHabitResponse(habit))
	logger.Info("habit provided")
}

func (s *Server) RenameHabit(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	id, err := habitIDFromPath(r)
	if err != nil {
		logger.Error("rename habit error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid habit id in path value", nil)
		return
	}
	var req service.RenameHabitRequest
	err = httputil.DecodeJSON(w, r, &req, maxHabitBodySize)
	if err != nil {
		logger.Error("rename habit error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), time.Second*10)
	defer cancel()
	habit, err := s.habitService.RenameHabit(ctx, id, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrHabitNotFound):
			logger.Error("rename habit error: unexist habit")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "habit doesn't exist", nil)
		case isValidationError(err):
			logger.Error("rename habit error: invalid name", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid habit name", err)
		default:
			logger.Error("rename habit error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while renaming habit", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, newHabitResponse(habit))
	logger.Info("habit renamed")
}

func (s *Server) DeleteHabit(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	id, err := habitIDFromPath(r)
	if err != nil {
		logger.Error("habit deletion error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid habit id in path value", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), time.Second*10)
	defer cancel()
	err = s.habitService.DeleteHabit(ctx, id)
	if err != nil {
		logger.Error("habit deletion error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while deleting habit", nil)
		return
	}
	httputil.WriteNoContent(w)
	logger.Info("habit deleted")
}

func (s *Server) GetHabitLogs(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	id, err := habitIDFromPath(r)
	if err != nil {
		logger.Error("get habit logs error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid habit id in path value", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), time.Second*15)
	defer cancel()
	logs, err := s.logsService.GetHabitLogs(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrHabitNotFound):
			logger.Error("get habit logs error: unexist habit")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "habit doesn't exist", nil)
		default:
			logger.Error("get habit logs error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while getting habit logs", nil)
		}
		return
	}
	if logs == nil {
		logs = []entity.HabitLog{}
	}
	httputil.WriteJSONResponse(w, http.StatusOK, HabitLogsResponse{HabitID: id, Logs: logs})
	logger.Info("habit logs provided")
}

func (s *Server) GetLog(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	id, err := habitIDFromPath(r)
	if err != nil {
		logger.Error("get log error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid habit id in path value", nil)
		return
	}
	date, err := s.dateFromPath(r)
	if err != nil {
		logger.Error("get log error: invalid date in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid date in path value", err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), time.Second*10)
	defer cancel()
	habitLog, err := s.logsService.GetLog(ctx, id, date)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrLogNotFound):
			logger.Error("get log error: no log on this day")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "no log on this day", nil)
		case errors.Is(err, errorvalues.ErrHabitNotFound):
			logger.Error("get log error: unexist habit")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "habit doesn't exist", nil)
		default:
			logger.Error("get log error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while getting log", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, habitLog)
	logger.Info("log provided")
}

func (s *Server) LogProgress(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	id, err := habitIDFromPath(r)
	if err != nil {
		logger.Error("log progress error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid habit id in path value", nil)
		return
	}
	date, err := s.dateFromPath(r)
	if err != nil {
		logger.Error("log progress error: invalid date in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid date in path value", err)
		return
	}
	var req service.LogProgressRequest
	err = httputil.DecodeJSON(w, r, &req, maxLogBodySize)
	if err != nil {
		logger.Error("log progress error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), time.Second*10)
	defer cancel()
	habitLog, err := s.logsService.LogProgress(ctx, id, date, req)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrHabitNotFound):
			logger.Error("log progress error: unexist habit")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "habit doesn't exist", nil)
		case isValidationError(err):
			logger.Error("log progress error: invalid progress", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid progress", err)
		default:
			logger.Error("log progress error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while logging progress", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, habitLog)
	logger.Info("progress logged", slog.Bool("completed", habitLog.Completed))
}

func (s *Server) MarkComplete(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	id, err := habitIDFromPath(r)
	if err != nil {
		logger.Error("mark complete error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid habit id in path value", nil)
		return
	}
	date, err := s.dateFromPath(r)
	if err != nil {
		logger.Error("mark complete error: invalid date in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid date in path value", err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), time.Second*10)
	defer cancel()
	habitLog, err := s.logsService.MarkComplete(ctx, id, date)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrHabitNotFound):
			logger.Error("mark complete error: unexist habit")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "habit doesn't exist", nil)
		default:
			logger.Error("mark complete error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while completing habit", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, habitLog)
	logger.Info("habit marked complete")
}

func (s *Server) DeleteLog(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	id, err := habitIDFromPath(r)
	if err != nil {
		logger.Error("log deletion error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid habit id in path value", nil)
		return
	}
	date, err := s.dateFromPath(r)
	if err != nil {
		logger.Error("log deletion error: invalid date in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid date in path value", err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), time.Second*10)
	defer cancel()
	err = s.logsService.DeleteLog(ctx, id, date)
	if err != nil {
		logger.Error("log deletion error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while deleting log", nil)
		return
	}
	httputil.WriteNoContent(w)
	logger.Info("log deleted")
}

func (s *Server) Feed(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	ctx, cancel := context.WithTimeout(r.Context(), time.Second*15)
	defer cancel()
	items, err := s.logsService.Feed(ctx)
	if err != nil {
		logger.Error("getting feed error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting feed", nil)
		return
	}
	if items == nil {
		items = []entity.FeedItem{}
	}
	httputil.WriteJSONResponse(w, http.StatusOK, FeedResponse{Items: items})
	logger.Info("feed provided")
}
