// Package reminder fires a daily check-in notification at a configured local time.
package reminder

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/limbo/habits/pkg/calendar"
)

const (
	DailyReminderID = "dailyHabitReminder"
	DefaultTitle    = "Habit Check-in"
	DefaultBody     = "Did you complete your habits today?"
)

var ErrInvalidTime = errors.New("reminder time must be formatted as HH:MM")

type Notification struct {
	ID    string
	Title string
	Body  string
	At    time.Time
}

type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// LogNotifier delivers notifications into the structured log
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger}
}

func (ln *LogNotifier) Notify(ctx context.Context, n Notification) error {
	ln.logger.InfoContext(ctx, n.Body, slog.String("id", n.ID), slog.String("title", n.Title), slog.Time("at", n.At))
	return nil
}

// ParseTime reads a "HH:MM" wall-clock time
func ParseTime(s string) (hour, minute int, err error) {
	h, m, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, 0, ErrInvalidTime
	}
	hour, err = strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, ErrInvalidTime
	}
	minute, err = strconv.Atoi(m)
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, ErrInvalidTime
	}
	return hour, minute, nil
}

type Option func(*Scheduler)

// WithTimer replaces time.After, mostly for tests
func WithTimer(after func(time.Duration) <-chan time.Time) Option {
	return func(s *Scheduler) {
		s.after = after
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Scheduler) {
		s.logger = logger
	}
}

type Scheduler struct {
	notifier Notifier
	cal      calendar.Calendar
	after    func(time.Duration) <-chan time.Time
	logger   *slog.Logger

	mu      sync.Mutex
	enabled bool
	hour    int
	minute  int
	changed chan struct{}
}

// New creates a scheduler firing at 21:00. It stays idle until Schedule is called.
func New(notifier Notifier, cal calendar.Calendar, opts ...Option) *Scheduler {
	s := &Scheduler{
		notifier: notifier,
		cal:      cal,
		after:    time.After,
		logger:   slog.Default(),
		hour:     21,
		changed:  make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Schedule enables the daily reminder at hour:minute, replacing any previous one
func (s *Scheduler) Schedule(hour, minute int) error {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return ErrInvalidTime
	}
	s.mu.Lock()
	s.enabled, s.hour, s.minute = true, hour, minute
	s.mu.Unlock()
	s.notifyChanged()
	return nil
}

// Cancel removes the pending reminder
func (s *Scheduler) Cancel() {
	s.mu.Lock()
	s.enabled = false
	s.mu.Unlock()
	s.notifyChanged()
}

func (s *Scheduler) notifyChanged() {
	select {
	case s.changed <- struct{}{}:
	default:
	}
}

func (s *Scheduler) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled
}

// NextFireTime is the first reminder time strictly after from
func (s *Scheduler) NextFireTime(from time.Time) time.Time {
	s.mu.Lock()
	hour, minute := s.hour, s.minute
	s.mu.Unlock()

	day := s.cal.StartOfDay(from)
	next := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location())
	if !next.After(from) {
		tomorrow := s.cal.AddDays(day, 1)
		next = time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), hour, minute, 0, 0, tomorrow.Location())
	}
	return next
}

// Run delivers reminders until ctx is done. Delivery errors are logged and do not stop the loop.
func (s *Scheduler) Run(ctx context.Context) error {
	for {
		var fire <-chan time.Time
		var at time.Time
		if s.Enabled() {
			at = s.NextFireTime(s.cal.Now())
			fire = s.after(at.Sub(s.cal.Now()))
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.changed:
			continue
		case <-fire:
			if !s.Enabled() {
				continue
			}
			err := s.notifier.Notify(ctx, Notification{
				ID:    DailyReminderID,
				Title: DefaultTitle,
				Body:  DefaultBody,
				At:    at,
			})
			if err != nil {
				s.logger.Error("delivering reminder error", slog.String("error", err.Error()))
			}
		}
	}
}
