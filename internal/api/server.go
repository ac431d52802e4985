package api

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/limbo/habits/internal/service"
	"github.com/limbo/habits/pkg/calendar"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Server struct {
	mx           *chi.Mux
	habitService service.HabitsServiceI
	logsService  service.HabitLogsServiceI
	statsService service.StatsServiceI
	cal          calendar.Calendar
}

type ServicesList struct {
	HabitsService service.HabitsServiceI
	LogsService   service.HabitLogsServiceI
	StatsService  service.StatsServiceI
	// Resolves path dates in the user's zone
	Calendar calendar.Calendar
}

func New(servicesOptions *ServicesList) *Server {
	cal := servicesOptions.Calendar
	if cal == nil {
		cal = calendar.New(time.Local, time.Monday)
	}
	s := &Server{
		mx:           chi.NewMux(),
		habitService: servicesOptions.HabitsService,
		logsService:  servicesOptions.LogsService,
		statsService: servicesOptions.StatsService,
		cal:          cal,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mx.Use(s.RequestIDMiddleware)
	s.mx.Use(s.SettingUpLoggerMiddleware)
	s.mx.Use(s.MetricsMiddleware)
	s.mx.Handle("/metrics", promhttp.Handler())
	s.mx.Route("/api/v1", func(r chi.Router) {
		r.Get("/feed", s.Feed)
		r.Route("/habits", func(r chi.Router) {
			r.Post("/", s.CreateHabit)
			r.Get("/", s.ListHabits)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.GetHabit)
				r.Patch("/", s.RenameHabit)
				r.Delete("/", s.DeleteHabit)

				r.Get("/logs", s.GetHabitLogs)
				r.Get("/logs/{date}", s.GetLog)
				r.Put("/logs/{date}", s.LogProgress)
				r.Delete("/logs/{date}", s.DeleteLog)
				r.Post("/logs/{date}/complete", s.MarkComplete)

				r.Get("/summary", s.Summary)
				r.Get("/stats", s.Statistics)
				r.Get("/grid/week", s.CurrentWeek)
				r.Get("/grid/weeks", s.WeeksForPeriod)
				r.Get("/grid/month", s.MonthCalendar)
				r.Get("/grid/heatmap", s.Heatmap)
			})
		})
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mx.ServeHTTP(w, r)
}

// Run serves on address until ctx is done, then shuts down gracefully
func (s *Server) Run(ctx context.Context, address string) error {
	srv := &http.Server{
		Addr:              address,
		Handler:           s.mx,
		ReadHeaderTimeout: time.Second * 5,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Println("server listening on " + address)
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	if err != nil {
		return errors.New("server shutdown error: " + err.Error())
	}
	err = <-errCh
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
