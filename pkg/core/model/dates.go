package model

import (
	"time"
)

// DateFormat is the wire format for dates throughout the engine.
const DateFormat = "2006-01-02"

// Day boundaries used for full-day entries.
const (
	DayStart = "00:00"
	DayEnd   = "23:59"
)

// ParseDate parses a date in DateFormat.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateFormat, s)
}

// FormatDate formats a time as a date in DateFormat.
func FormatDate(t time.Time) string {
	return t.Format(DateFormat)
}

// DaysBetween returns the number of whole days from a to b (negative if b
// precedes a). Both values are truncated to midnight before comparing.
func DaysBetween(a, b time.Time) int {
	a = time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	b = time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

// MinuteOfDay converts an "HH:MM" clock string to minutes since midnight.
// Malformed values return 0 so that availability resolution degrades to a
// full-day interpretation instead of failing a render path.
func MinuteOfDay(clock string) int {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return 0
	}
	return t.Hour()*60 + t.Minute()
}

// IsFullDay reports whether the window covers the whole day. Empty bounds
// count as full-day.
func IsFullDay(startHour, endHour string) bool {
	if startHour == "" && endHour == "" {
		return true
	}
	return startHour == DayStart && endHour == DayEnd
}

// DateCovers reports whether date falls within [startDate, endDate]
// inclusive. Malformed bounds are treated as not covering.
func DateCovers(date, startDate, endDate string) bool {
	d, err := ParseDate(date)
	if err != nil {
		return false
	}
	s, err := ParseDate(startDate)
	if err != nil {
		return false
	}
	e, err := ParseDate(endDate)
	if err != nil {
		return false
	}
	return !d.Before(s) && !d.After(e)
}
