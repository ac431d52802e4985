package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	errorvalues "github.com/limbo/habits/internal/error_values"
	"github.com/limbo/habits/pkg/entity"
	"github.com/limbo/habits/pkg/httputil"
)

// periodFromQuery defaults to a week when the parameter is absent
func periodFromQuery(r *http.Request) entity.TimePeriod {
	raw := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("period")))
	if raw == "" {
		return entity.PeriodWeek
	}
	return entity.TimePeriod(raw)
}

func writeStatsError(w http.ResponseWriter, logger *slog.Logger, op string, err error) {
	switch {
	case errors.Is(err, errorvalues.ErrHabitNotFound):
		logger.Error(op + " error: unexist habit")
		httputil.WriteErrorResponse(w, http.StatusNotFound, "habit doesn't exist", nil)
	case errors.Is(err, errorvalues.ErrInvalidPeriod):
		logger.Error(op + " error: invalid period")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid period", err)
	default:
		logger.Error(op+" error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while computing "+op, nil)
	}
}

func (s *Server) Summary(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	id, err := habitIDFromPath(r)
	if err != nil {
		logger.Error("summary error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid habit id in path value", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), time.Second*15)
	defer cancel()
	summary, err := s.statsService.Summary(ctx, id)
	if err != nil {
		writeStatsError(w, logger, "summary", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, summary)
	logger.Info("summary provided")
}

func (s *Server) Statistics(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	id, err := habitIDFromPath(r)
	if err != nil {
		logger.Error("statistics error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid habit id in path value", nil)
		return
	}
	period := periodFromQuery(r)
	ctx, cancel := context.WithTimeout(r.Context(), time.Second*15)
	defer cancel()
	result, err := s.statsService.Statistics(ctx, id, period)
	if err != nil {
		writeStatsError(w, logger, "statistics", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, StatisticsResponse{
		HabitID:          id,
		Period:           period,
		PeriodStatistics: result,
	})
	logger.Info("statistics provided", slog.String("period", string(period)))
}

func (s *Server) CurrentWeek(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	id, err := habitIDFromPath(r)
	if err != nil {
		logger.Error("week grid error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid habit id in path value", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), time.Second*15)
	defer cancel()
	days, err := s.statsService.CurrentWeek(ctx, id)
	if err != nil {
		writeStatsError(w, logger, "week grid", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, WeekResponse{HabitID: id, Days: days})
	logger.Info("week grid provided")
}

func (s *Server) WeeksForPeriod(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	id, err := habitIDFromPath(r)
	if err != nil {
		logger.Error("period grid error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid habit id in path value", nil)
		return
	}
	period := periodFromQuery(r)
	ctx, cancel := context.WithTimeout(r.Context(), time.Second*15)
	defer cancel()
	weeks, err := s.statsService.WeeksForPeriod(ctx, id, period)
	if err != nil {
		writeStatsError(w, logger, "period grid", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, WeeksResponse{HabitID: id, Period: period, Weeks: weeks})
	logger.Info("period grid provided", slog.String("period", string(period)))
}

func (s *Server) MonthCalendar(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	id, err := habitIDFromPath(r)
	if err != nil {
		logger.Error("month grid error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid habit id in path value", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), time.Second*15)
	defer cancel()
	weeks, err := s.statsService.MonthCalendar(ctx, id)
	if err != nil {
		writeStatsError(w, logger, "month grid", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, WeeksResponse{HabitID: id, Weeks: weeks})
	logger.Info("month grid provided")
}

func (s *Server) Heatmap(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	id, err := habitIDFromPath(r)
	if err != nil {
		logger.Error("heatmap error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid habit id in path value", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), time.Second*15)
	defer cancel()
	weeks, err := s.statsService.Heatmap(ctx, id)
	if err != nil {
		writeStatsError(w, logger, "heatmap", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, WeeksResponse{HabitID: id, Weeks: weeks})
	logger.Info("heatmap provided")
}
