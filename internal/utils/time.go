package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/habitkit/internal/constants"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// DayMillis truncates t to midnight in its own location and returns the
// result as epoch milliseconds. This is the canonical day marker stored in
// habit_history rows.
func DayMillis(t time.Time) int64 {
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return midnight.UnixMilli()
}

// DateMillis returns the midnight epoch-millisecond marker for the given
// calendar date in loc.
func DateMillis(year int, month time.Month, day int, loc *time.Location) int64 {
	return time.Date(year, month, day, 0, 0, 0, 0, loc).UnixMilli()
}

// TodayMillis returns the day marker for the current day in loc.
func TodayMillis(loc *time.Location) int64 {
	return DayMillis(time.Now().In(loc))
}

// FromMillis converts an epoch-millisecond timestamp into a time.Time in loc.
func FromMillis(ms int64, loc *time.Location) time.Time {
	return time.UnixMilli(ms).In(loc)
}

// FormatDay renders a day marker as YYYY-MM-DD in loc.
func FormatDay(ms int64, loc *time.Location) string {
	return FromMillis(ms, loc).Format(constants.DateFormat)
}

// ParseDay parses a YYYY-MM-DD string as a midnight day marker in loc.
func ParseDay(s string, loc *time.Location) (int64, error) {
	t, err := time.ParseInLocation(constants.DateFormat, s, loc)
	if err != nil {
		return 0, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", s, err)
	}
	return t.UnixMilli(), nil
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	if timezone == "" || timezone == "Local" {
		return true
	}
	_, err := time.LoadLocation(timezone)
	return err == nil
}
