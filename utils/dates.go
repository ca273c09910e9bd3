package utils

import (
	"fmt"
	"time"
)

const (
	DefaultTimezone = "America/Sao_Paulo"
	DateLayout      = "2006-01-02"
)

// Location resolves tz, falling back to DefaultTimezone.
func Location(tz string) *time.Location {
	if tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}
	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// TodayIn returns the current calendar date in tz as YYYY-MM-DD.
func TodayIn(tz string, now time.Time) string {
	return now.In(Location(tz)).Format(DateLayout)
}

// ParseDate parses YYYY-MM-DD into midnight UTC.
func ParseDate(date string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, date, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return t, nil
}

// DayBounds returns the UTC calendar day containing t as [start, end).
func DayBounds(t time.Time) (time.Time, time.Time) {
	u := t.UTC()
	start := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}

// AddDays shifts a UTC calendar date by n days.
func AddDays(t time.Time, n int) string {
	start, _ := DayBounds(t)
	return start.AddDate(0, 0, n).Format(DateLayout)
}

// FormatDDMMYYYY renders YYYY-MM-DD as DD/MM/YYYY.
func FormatDDMMYYYY(date string) string {
	t, err := ParseDate(date)
	if err != nil {
		return date
	}
	return t.Format("02/01/2006")
}
