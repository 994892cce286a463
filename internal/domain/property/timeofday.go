package property

import (
	"fmt"
	"time"

	"github.com/rentals/backend/internal/domain/shared"
)

// DateLayout is the wire format of calendar dates
const DateLayout = "2006-01-02"

// TimeOfDay is a wall-clock time expressed in minutes after midnight
type TimeOfDay int

// ParseTimeOfDay parses a zero-padded 24h "HH:MM" string
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, shared.NewInvalidInput(fmt.Sprintf("Invalid time %q, expected HH:MM", s))
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, shared.NewInvalidInput(fmt.Sprintf("Invalid time %q, expected HH:MM", s))
	}
	return TimeOfDay(t.Hour()*60 + t.Minute()), nil
}

// MustParseTimeOfDay is ParseTimeOfDay for constants; it panics on bad input
func MustParseTimeOfDay(s string) TimeOfDay {
	t, err := ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

// Hour returns the hour component
func (t TimeOfDay) Hour() int {
	return int(t) / 60
}

// Minute returns the minute component
func (t TimeOfDay) Minute() int {
	return int(t) % 60
}

// String formats the time as "HH:MM"
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// Add returns t shifted by d minutes
func (t TimeOfDay) Add(minutes int) TimeOfDay {
	return t + TimeOfDay(minutes)
}

// IsValidTimeOfDay reports whether s is a well-formed "HH:MM" string
func IsValidTimeOfDay(s string) bool {
	_, err := ParseTimeOfDay(s)
	return err == nil
}

// NormalizeDate strips the time-of-day, keeping the calendar day of t
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a "YYYY-MM-DD" calendar date
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, shared.NewInvalidInput(fmt.Sprintf("Invalid date %q, expected YYYY-MM-DD", s))
	}
	return t, nil
}

// SameDate reports whether a and b fall on the same calendar day
func SameDate(a, b time.Time) bool {
	return NormalizeDate(a).Equal(NormalizeDate(b))
}

// At combines a calendar date and a wall-clock time in loc
func At(date time.Time, t TimeOfDay, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := date.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, loc)
}
