// @title Habits API
// @description API for tracking habits, their daily progress and streaks
// @BasePath /api/v1
// @schemes http
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/limbo/habits/internal/api"
	"github.com/limbo/habits/internal/reminder"
	"github.com/limbo/habits/internal/repository"
	"github.com/limbo/habits/internal/repository/sqlite"
	"github.com/limbo/habits/internal/service"
	"github.com/limbo/habits/internal/stats"
	"github.com/limbo/habits/pkg/calendar"
	"github.com/limbo/habits/pkg/cleanup"
	"github.com/limbo/habits/pkg/config"
)

func init() {
	service.InitValidator()
}

type repositories struct {
	habits repository.HabitsRepositoryI
	logs   repository.HabitLogsRepositoryI
}

func openStorage(ctx context.Context, cfg *config.Config) repositories {
	switch driver := cfg.GetStringOr("STORAGE_DRIVER", "postgres"); driver {
	case "postgres":
		pool := repository.NewPGPool(&repository.PGCfg{
			Address:  cfg.GetString("POSTGRES_DB_ADDRESS"),
			Username: cfg.GetString("POSTGRES_USER"),
			Password: cfg.GetString("POSTGRES_PASSWORD"),
			DB:       cfg.GetString("POSTGRES_DB"),
		})
		return repositories{
			habits: repository.NewHabitsRepoWithConn(pool),
			logs:   repository.NewHabitLogsRepoWithConn(pool),
		}
	case "sqlite":
		db, err := sqlite.Open(ctx, cfg.GetStringOr("SQLITE_PATH", "./data/habits.db"))
		if err != nil {
			log.Fatal("opening sqlite storage error: " + err.Error())
		}
		cleanup.Register(&cleanup.Job{
			Name: "closing sqlite database",
			F:    db.Close,
		})
		return repositories{
			habits: sqlite.NewHabitsRepo(db),
			logs:   sqlite.NewHabitLogsRepo(db),
		}
	default:
		log.Fatal("unknown STORAGE_DRIVER " + driver)
	}
	return repositories{}
}

func newCalendar(cfg *config.Config) *calendar.LocalCalendar {
	loc, err := calendar.LoadLocation(cfg.GetString("TIMEZONE"))
	if err != nil {
		log.Fatal("loading TIMEZONE error: " + err.Error())
	}
	weekStart, err := calendar.ParseWeekday(cfg.GetStringOr("WEEK_START", "monday"))
	if err != nil {
		log.Fatal("parsing WEEK_START error: " + err.Error())
	}
	cal := calendar.New(loc, weekStart)
	log.Printf("calendar zone %s, weeks start on %s", cal.Location(), cal.WeekStart())
	return cal
}

func startReminder(ctx context.Context, cfg *config.Config, cal calendar.Calendar) {
	if !cfg.GetBool("REMINDER_ENABLED", false) {
		return
	}
	hour, minute, err := reminder.ParseTime(cfg.GetStringOr("REMINDER_TIME", "21:00"))
	if err != nil {
		log.Fatal("parsing REMINDER_TIME error: " + err.Error())
	}
	logger := slog.Default().With(slog.String("component", "reminder"))
	scheduler := reminder.New(reminder.NewLogNotifier(logger), cal, reminder.WithLogger(logger))
	if err = scheduler.Schedule(hour, minute); err != nil {
		log.Fatal("scheduling reminder error: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "cancelling daily reminder",
		F: func() error {
			scheduler.Cancel()
			return nil
		},
	})
	go func() {
		err := scheduler.Run(ctx)
		if err != nil && ctx.Err() == nil {
			log.Println("reminder stopped: " + err.Error())
		}
	}()
	log.Printf("daily reminder scheduled at %02d:%02d", hour, minute)
}

func main() {
	cfg := config.New()
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cal := newCalendar(cfg)
	repos := openStorage(ctx, cfg)
	engine := stats.New(cal, cfg.GetInt("STREAK_LOOKBACK_DAYS", stats.DefaultStreakLookbackDays))

	startReminder(ctx, cfg, cal)

	serv := api.New(&api.ServicesList{
		HabitsService: service.NewHabitsService(repos.habits, cal),
		LogsService:   service.NewHabitLogsService(repos.habits, repos.logs, cal),
		StatsService:  service.NewStatsService(repos.habits, repos.logs, engine),
		Calendar:      cal,
	})
	err := serv.Run(ctx, cfg.GetStringOr("API_ADDRESS", ":8080"))
	if err != nil {
		log.Println("Server error: " + err.Error())
	}
	stop()
	done := make(chan struct{})
	go func() {
		cleanup.CleanUp()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second * 15):
		log.Println("cleanup timed out")
	}
}
