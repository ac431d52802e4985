// Package calendar centralizes the day arithmetic used by habits: what "today" is,
// where a day and a week start, and how many calendar days lie between two instants.
package calendar

import (
	"errors"
	"strings"
	"time"
)

const DateFormat = "2006-01-02"

type Calendar interface {
	// Current instant in the calendar's location
	Now() time.Time
	// Start of the current day
	Today() time.Time
	Location() *time.Location
	// Midnight of the day containing t
	StartOfDay(t time.Time) time.Time
	// Midnight of the day n days after the day containing t (n may be negative)
	AddDays(t time.Time, n int) time.Time
	// Whole calendar days from the day of `from` to the day of `to`
	DaysBetween(from, to time.Time) int
	// Midnight of the first day of the week containing t
	StartOfWeek(t time.Time) time.Time
	// Midnight of the first day of the month containing t
	StartOfMonth(t time.Time) time.Time
	SameDay(a, b time.Time) bool
	SameMonth(a, b time.Time) bool
	// YYYY-MM-DD of the day containing t
	DayKey(t time.Time) string
	// Parses YYYY-MM-DD as midnight in the calendar's location
	ParseDay(s string) (time.Time, error)
}

type Option func(*LocalCalendar)

// WithClock replaces the wall clock, mostly for tests
func WithClock(now func() time.Time) Option {
	return func(c *LocalCalendar) {
		c.now = now
	}
}

type LocalCalendar struct {
	loc       *time.Location
	weekStart time.Weekday
	now       func() time.Time
}

func New(loc *time.Location, weekStart time.Weekday, opts ...Option) *LocalCalendar {
	if loc == nil {
		loc = time.Local
	}
	c := &LocalCalendar{
		loc:       loc,
		weekStart: weekStart,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *LocalCalendar) Now() time.Time {
	return c.now().In(c.loc)
}

func (c *LocalCalendar) Today() time.Time {
	return c.StartOfDay(c.now())
}

func (c *LocalCalendar) Location() *time.Location {
	return c.loc
}

func (c *LocalCalendar) WeekStart() time.Weekday {
	return c.weekStart
}

func (c *LocalCalendar) StartOfDay(t time.Time) time.Time {
	t = t.In(c.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, c.loc)
}

func (c *LocalCalendar) AddDays(t time.Time, n int) time.Time {
	t = t.In(c.loc)
	return time.Date(t.Year(), t.Month(), t.Day()+n, 0, 0, 0, 0, c.loc)
}

func (c *LocalCalendar) DaysBetween(from, to time.Time) int {
	// Counting on UTC civil dates keeps DST days at 24h
	a := civil(from.In(c.loc))
	b := civil(to.In(c.loc))
	return int(b.Sub(a).Hours() / 24)
}

func (c *LocalCalendar) StartOfWeek(t time.Time) time.Time {
	day := c.StartOfDay(t)
	offset := (int(day.Weekday()) - int(c.weekStart) + 7) % 7
	return c.AddDays(day, -offset)
}

func (c *LocalCalendar) StartOfMonth(t time.Time) time.Time {
	t = t.In(c.loc)
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, c.loc)
}

func (c *LocalCalendar) SameDay(a, b time.Time) bool {
	return c.DayKey(a) == c.DayKey(b)
}

func (c *LocalCalendar) SameMonth(a, b time.Time) bool {
	a, b = a.In(c.loc), b.In(c.loc)
	return a.Year() == b.Year() && a.Month() == b.Month()
}

func (c *LocalCalendar) DayKey(t time.Time) string {
	return t.In(c.loc).Format(DateFormat)
}

func (c *LocalCalendar) ParseDay(s string) (time.Time, error) {
	return time.ParseInLocation(DateFormat, s, c.loc)
}

func civil(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// LoadLocation resolves an IANA name; empty and "Local" mean the system zone
func LoadLocation(name string) (*time.Location, error) {
	if name == "" || name == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(name)
}

var ErrUnknownWeekday = errors.New("unknown weekday")

// ParseWeekday accepts full English names or their three-letter prefixes, case-insensitively
func ParseWeekday(s string) (time.Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) < 3 {
		return time.Sunday, ErrUnknownWeekday
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if s == name || s == name[:3] {
			return d, nil
		}
	}
	return time.Sunday, ErrUnknownWeekday
}
