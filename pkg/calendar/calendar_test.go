package calendar_test

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/limbo/habits/pkg/calendar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var zone = time.FixedZone("UTC-5", -5*60*60)

func fixedClock(t time.Time) calendar.Option {
	return calendar.WithClock(func() time.Time { return t })
}

func TestStartOfDayAndToday(t *testing.T) {
	now := time.Date(2026, 10, 14, 15, 30, 0, 0, zone)
	cal := calendar.New(zone, time.Sunday, fixedClock(now))
	expected := time.Date(2026, 10, 14, 0, 0, 0, 0, zone)
	assert.True(t, expected.Equal(cal.StartOfDay(now)))
	assert.True(t, expected.Equal(cal.Today()))
	// 02:00 UTC on the 15th is still the 14th five hours west
	assert.True(t, expected.Equal(cal.StartOfDay(time.Date(2026, 10, 15, 2, 0, 0, 0, time.UTC))))
}

func TestStartOfWeek(t *testing.T) {
	wednesday := time.Date(2026, 10, 14, 9, 0, 0, 0, zone)
	testCases := []struct {
		Desc      string
		WeekStart time.Weekday
		Date      time.Time
		Expected  time.Time
	}{
		{
			Desc:      "sunday start",
			WeekStart: time.Sunday,
			Date:      wednesday,
			Expected:  time.Date(2026, 10, 11, 0, 0, 0, 0, zone),
		},
		{
			Desc:      "monday start",
			WeekStart: time.Monday,
			Date:      wednesday,
			Expected:  time.Date(2026, 10, 12, 0, 0, 0, 0, zone),
		},
		{
			Desc:      "date already on week start",
			WeekStart: time.Sunday,
			Date:      time.Date(2026, 10, 11, 23, 59, 0, 0, zone),
			Expected:  time.Date(2026, 10, 11, 0, 0, 0, 0, zone),
		},
		{
			Desc:      "week start after the date's weekday",
			WeekStart: time.Saturday,
			Date:      wednesday,
			Expected:  time.Date(2026, 10, 10, 0, 0, 0, 0, zone),
		},
	}
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			cal := calendar.New(zone, tc.WeekStart)
			assert.Equal(t, tc.WeekStart, cal.WeekStart())
			result := cal.StartOfWeek(tc.Date)
			assert.True(t, tc.Expected.Equal(result), "got %s", result)
		})
	}
}

func TestDaysBetween(t *testing.T) {
	cal := calendar.New(zone, time.Sunday)
	a := time.Date(2026, 10, 14, 23, 0, 0, 0, zone)
	b := time.Date(2026, 10, 15, 1, 0, 0, 0, zone)
	assert.Equal(t, 1, cal.DaysBetween(a, b))
	assert.Equal(t, -1, cal.DaysBetween(b, a))
	assert.Equal(t, 0, cal.DaysBetween(a, a))
	assert.Equal(t, 365, cal.DaysBetween(time.Date(2025, 1, 1, 0, 0, 0, 0, zone), time.Date(2026, 1, 1, 0, 0, 0, 0, zone)))
}

func TestDSTTransitions(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	cal := calendar.New(ny, time.Sunday)
	before := time.Date(2025, 3, 8, 0, 0, 0, 0, ny)
	after := time.Date(2025, 3, 10, 0, 0, 0, 0, ny)
	// 2025-03-09 is only 23 hours long
	assert.Equal(t, 2, cal.DaysBetween(before, after))
	next := cal.AddDays(before, 1)
	assert.Equal(t, 0, next.Hour())
	assert.Equal(t, 9, next.Day())
	assert.Equal(t, 0, cal.AddDays(next, 1).Hour())
}

func TestMonthHelpers(t *testing.T) {
	cal := calendar.New(zone, time.Sunday)
	d := time.Date(2026, 10, 14, 12, 0, 0, 0, zone)
	assert.True(t, time.Date(2026, 10, 1, 0, 0, 0, 0, zone).Equal(cal.StartOfMonth(d)))
	assert.True(t, cal.SameMonth(d, time.Date(2026, 10, 31, 23, 0, 0, 0, zone)))
	assert.False(t, cal.SameMonth(d, time.Date(2026, 11, 1, 0, 0, 0, 0, zone)))
	assert.True(t, cal.SameDay(d, time.Date(2026, 10, 14, 0, 1, 0, 0, zone)))
	assert.Equal(t, "2026-10-14", cal.DayKey(d))
}

func TestParseDay(t *testing.T) {
	cal := calendar.New(zone, time.Sunday)
	d, err := cal.ParseDay("2026-10-14")
	require.NoError(t, err)
	assert.True(t, time.Date(2026, 10, 14, 0, 0, 0, 0, zone).Equal(d))
	_, err = cal.ParseDay("14.10.2026")
	assert.Error(t, err)
}

func TestParseWeekday(t *testing.T) {
	testCases := []struct {
		Input    string
		Expected time.Weekday
		Error    error
	}{
		{Input: "sunday", Expected: time.Sunday},
		{Input: "Mon", Expected: time.Monday},
		{Input: " SATURDAY ", Expected: time.Saturday},
		{Input: "mo", Error: calendar.ErrUnknownWeekday},
		{Input: "funday", Error: calendar.ErrUnknownWeekday},
	}
	for _, tc := range testCases {
		t.Run(tc.Input, func(t *testing.T) {
			d, err := calendar.ParseWeekday(tc.Input)
			if tc.Error != nil {
				assert.ErrorIs(t, err, tc.Error)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.Expected, d)
		})
	}
}
