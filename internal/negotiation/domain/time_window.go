package domain

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidTime = errors.New("invalid time of day, expected HH:MM or HH:MM:SS")

// DefaultDurationMinutes is assumed when a window has no positive length.
// Malformed records still render and still occupy a slot of this size.
const DefaultDurationMinutes = 60

const minutesPerDay = 24 * 60

// TimeOfDay is a clock time without a date.
type TimeOfDay struct {
	hour   int
	minute int
}

// DefaultStart is substituted for unparseable time strings so display
// stays resilient to partial data.
var DefaultStart = TimeOfDay{hour: 9}

// NewTimeOfDay creates a time of day, validating the clock range.
func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return TimeOfDay{}, ErrInvalidTime
	}
	return TimeOfDay{hour: hour, minute: minute}, nil
}

// ParseTimeOfDay parses a HH:MM or HH:MM:SS string. Seconds are accepted
// and discarded.
func ParseTimeOfDay(value string) (TimeOfDay, error) {
	parsed, err := time.Parse("15:04", value)
	if err != nil {
		parsed, err = time.Parse("15:04:05", value)
	}
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTime, value)
	}
	return TimeOfDay{hour: parsed.Hour(), minute: parsed.Minute()}, nil
}

// ParseTimeOfDayOrDefault parses the value, substituting DefaultStart when
// it is malformed.
func ParseTimeOfDayOrDefault(value string) TimeOfDay {
	tod, err := ParseTimeOfDay(value)
	if err != nil {
		return DefaultStart
	}
	return tod
}

// TimeOfDayFromMinutes recreates a time of day from minutes since midnight.
// Out-of-range values wrap into a single day.
func TimeOfDayFromMinutes(minutes int) TimeOfDay {
	minutes %= minutesPerDay
	if minutes < 0 {
		minutes += minutesPerDay
	}
	return TimeOfDay{hour: minutes / 60, minute: minutes % 60}
}

func (t TimeOfDay) Hour() int   { return t.hour }
func (t TimeOfDay) Minute() int { return t.minute }

// MinutesFromMidnight returns the time as minutes since midnight.
func (t TimeOfDay) MinutesFromMidnight() int {
	return t.hour*60 + t.minute
}

// Before reports whether t is earlier than other.
func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t.MinutesFromMidnight() < other.MinutesFromMidnight()
}

// After reports whether t is later than other.
func (t TimeOfDay) After(other TimeOfDay) bool {
	return t.MinutesFromMidnight() > other.MinutesFromMidnight()
}

// On combines the time of day with a calendar date into a comparable instant.
func (t TimeOfDay) On(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), t.hour, t.minute, 0, 0, date.Location())
}

// String returns the 24-hour HH:MM form.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.hour, t.minute)
}

// Clock returns the 12-hour display form, e.g. "9:00 AM".
func (t TimeOfDay) Clock() string {
	return time.Date(0, 1, 1, t.hour, t.minute, 0, 0, time.UTC).Format("3:04 PM")
}

// Window is a concrete meeting slot: a calendar date plus start and end times.
type Window struct {
	Date  time.Time
	Start TimeOfDay
	End   TimeOfDay
}

// StartAt returns the window start as an instant.
func (w Window) StartAt() time.Time {
	return w.Start.On(w.Date)
}

// EndAt returns the window end as an instant.
func (w Window) EndAt() time.Time {
	return w.End.On(w.Date)
}

// Overlaps reports half-open interval overlap: windows that merely touch
// do not overlap. Zero-length windows never overlap anything.
func (w Window) Overlaps(other Window) bool {
	return w.StartAt().Before(other.EndAt()) && other.StartAt().Before(w.EndAt())
}

// DurationMinutes returns the window length in minutes. Windows with zero
// or negative length report DefaultDurationMinutes; the stored record is
// left as-is.
func (w Window) DurationMinutes() int {
	minutes := w.End.MinutesFromMidnight() - w.Start.MinutesFromMidnight()
	if minutes <= 0 {
		return DefaultDurationMinutes
	}
	return minutes
}

// Format renders the window for display. Windows without a positive length
// degrade to a placeholder instead of failing.
func (w Window) Format() string {
	if !w.Start.Before(w.End) {
		return "Time TBD"
	}
	return fmt.Sprintf("%s - %s", w.Start.Clock(), w.End.Clock())
}
