package utils

import (
	"fmt"
	"time"
)

// Boundary formats: calendar dates as YYYY-MM-DD, clock times as 24-hour
// HH:MM, durations as integer minutes. All times are naive local times.
const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// ParseDate parses a YYYY-MM-DD string into a local midnight time.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t, nil
}

// ParseClock parses an HH:MM string into minutes since midnight.
func ParseClock(s string) (int, error) {
	t, err := time.Parse(ClockLayout, s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock renders minutes since midnight as HH:MM.
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// CombineDateTime builds a concrete local instant from the boundary formats.
func CombineDateTime(date, clock string) (time.Time, error) {
	d, err := ParseDate(date)
	if err != nil {
		return time.Time{}, err
	}
	m, err := ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	return d.Add(time.Duration(m) * time.Minute), nil
}
