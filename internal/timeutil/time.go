package timeutil

import (
	"fmt"
	"time"

	"github.com/julianstephens/habitkeep/internal/constants"
)

// Clock supplies the current time. Substituting it keeps date-sensitive
// logic deterministic under test.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by the wall clock.
func SystemClock() Clock { return systemClock{} }

// FormatDate formats a time as a YYYY-MM-DD date string.
func FormatDate(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// ParseDate parses a date string (YYYY-MM-DD) in the local timezone,
// returning midnight of that day.
func ParseDate(dateStr string) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format (expected YYYY-MM-DD): %w", err)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local), nil
}

// ParseClockTime parses a time string in the standard format (HH:MM).
func ParseClockTime(timeStr string) (time.Time, error) {
	return time.Parse(constants.TimeFormat, timeStr)
}

// ValidateTimeFormat checks if the string matches the standard time format.
func ValidateTimeFormat(timeStr string) bool {
	_, err := ParseClockTime(timeStr)
	return err == nil
}

// CombineDateAndTime combines a calendar day and a time-of-day string (HH:MM)
// into a single instant in the day's location.
func CombineDateAndTime(day time.Time, timeStr string) (time.Time, error) {
	timeOfDay, err := ParseClockTime(timeStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time format: %w", err)
	}

	return time.Date(
		day.Year(), day.Month(), day.Day(),
		timeOfDay.Hour(), timeOfDay.Minute(), 0, 0,
		day.Location(),
	), nil
}

// AddDays returns the date n calendar days after the given date.
func AddDays(date time.Time, n int) time.Time {
	return date.AddDate(0, 0, n)
}

// DayOfWeek returns the weekday index (0=Sunday..6=Saturday) of the date.
func DayOfWeek(date time.Time) time.Weekday {
	return date.Weekday()
}
