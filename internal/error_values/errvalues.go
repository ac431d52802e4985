package errorvalues

import "errors"

var (
	ErrHabitNotFound = errors.New("habit doesn't exist")
	ErrLogNotFound   = errors.New("no log for this habit on given day")
)

// Validation errors, reported to clients as 400
var (
	ErrEmptyName        = errors.New("habit name must not be empty")
	ErrNameTooLong      = errors.New("habit name must be at most 100 characters")
	ErrInvalidFrequency = errors.New("unknown frequency type")
	ErrInvalidTarget    = errors.New("target value must be positive")
	ErrInvalidValue     = errors.New("progress value must be non-negative")
	ErrInvalidPeriod    = errors.New("period must be one of week, month, year")
	ErrInvalidDate      = errors.New("date must be formatted as YYYY-MM-DD or be 'today'")
)
