package entity

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

type FrequencyType string

const (
	FrequencyDaily        FrequencyType = "daily"
	FrequencyTimesPerWeek FrequencyType = "times_per_week"
	FrequencyHoursPerWeek FrequencyType = "hours_per_week"
)

func (f FrequencyType) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyTimesPerWeek, FrequencyHoursPerWeek:
		return true
	}
	return false
}

// IsWeekly reports whether the target is an aggregate over a week rather than a per-day goal
func (f FrequencyType) IsWeekly() bool {
	return f == FrequencyTimesPerWeek || f == FrequencyHoursPerWeek
}

func (f FrequencyType) Description() string {
	switch f {
	case FrequencyDaily:
		return "Daily Goal"
	case FrequencyTimesPerWeek:
		return "Times per Week"
	case FrequencyHoursPerWeek:
		return "Hours per Week"
	}
	return string(f)
}

func (f FrequencyType) Unit() string {
	switch f {
	case FrequencyDaily:
		return "per day"
	case FrequencyTimesPerWeek:
		return "times/week"
	case FrequencyHoursPerWeek:
		return "hours/week"
	}
	return ""
}

type Habit struct {
	ID            uuid.UUID     `json:"id"`
	Name          string        `json:"name"`
	FrequencyType FrequencyType `json:"frequency_type"`
	TargetValue   float64       `json:"target_value"`
	CreatedAt     time.Time     `json:"created_at"`
}

// Subtitle renders the cadence and target, e.g. "Daily Goal: 100" or "Hours per Week: 2.5"
func (h *Habit) Subtitle() string {
	return h.FrequencyType.Description() + ": " + FormatValue(h.TargetValue)
}

// IsCompleted derives the completed flag of a log carrying value for this habit.
// Weekly cadences count any positive progress, daily habits need the full target.
func (h *Habit) IsCompleted(value float64) bool {
	if h.FrequencyType.IsWeekly() {
		return value > 0
	}
	return value >= h.TargetValue
}

// CompletionValue is the value logged when a day is marked complete in one step
func (h *Habit) CompletionValue() float64 {
	if h.FrequencyType == FrequencyDaily {
		return h.TargetValue
	}
	return 1.0
}

type HabitLog struct {
	ID        uuid.UUID `json:"id"`
	HabitID   uuid.UUID `json:"habit_id"`
	Date      time.Time `json:"date"`
	Value     float64   `json:"value"`
	Completed bool      `json:"completed"`
	Note      *string   `json:"note,omitempty"`
	PhotoData []byte    `json:"photo,omitempty"`
}

// LogPatch carries the optional fields of a progress write.
// A nil field leaves the stored value untouched, a non-nil one (even empty) replaces it.
type LogPatch struct {
	Note      *string
	PhotoData *[]byte
}

type IntensityLevel string

const (
	IntensityNone     IntensityLevel = "none"
	IntensityLow      IntensityLevel = "low"
	IntensityMedium   IntensityLevel = "medium"
	IntensityHigh     IntensityLevel = "high"
	IntensityVeryHigh IntensityLevel = "very_high"
)

type TimePeriod string

const (
	PeriodWeek  TimePeriod = "week"
	PeriodMonth TimePeriod = "month"
	PeriodYear  TimePeriod = "year"
)

func (p TimePeriod) Valid() bool {
	switch p {
	case PeriodWeek, PeriodMonth, PeriodYear:
		return true
	}
	return false
}

// Days is the length of the trailing statistics window
func (p TimePeriod) Days() int {
	switch p {
	case PeriodMonth:
		return 30
	case PeriodYear:
		return 365
	default:
		return 7
	}
}

// Weeks is the number of grid rows shown for the period
func (p TimePeriod) Weeks() int {
	switch p {
	case PeriodMonth:
		return 4
	case PeriodYear:
		return 52
	default:
		return 1
	}
}

type DayData struct {
	Date           time.Time      `json:"date"`
	Intensity      IntensityLevel `json:"intensity"`
	IsToday        bool           `json:"is_today"`
	Log            *HabitLog      `json:"log,omitempty"`
	IsCurrentMonth bool           `json:"is_current_month"`
}

type WeekData struct {
	Days []DayData `json:"days"`
}

type PeriodStatistics struct {
	CompletedDays  int     `json:"completed_days"`
	TotalValue     float64 `json:"total_value"`
	CompletionRate float64 `json:"completion_rate"`
	LongestStreak  int     `json:"longest_streak"`
}

type HabitSummary struct {
	HabitID        uuid.UUID `json:"habit_id"`
	TodayValue     float64   `json:"today_value"`
	WeekValue      float64   `json:"week_value"`
	TotalDays      int       `json:"total_days"`
	PerfectDays    int       `json:"perfect_days"`
	TotalCompleted float64   `json:"total_completed"`
	CompletionRate float64   `json:"completion_rate"`
	CurrentStreak  int       `json:"current_streak"`
	LongestStreak  int       `json:"longest_streak"`
}

type FeedItem struct {
	Log   HabitLog `json:"log"`
	Habit Habit    `json:"habit"`
}

// FormatValue prints whole numbers without decimals and everything else with one
func FormatValue(value float64) string {
	if value == math.Trunc(value) && !math.IsInf(value, 0) {
		return fmt.Sprintf("%d", int64(value))
	}
	return fmt.Sprintf("%.1f", value)
}
