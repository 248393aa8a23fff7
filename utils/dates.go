// utils/dates.go
package utils

import (
	"strconv"
	"time"
)

const (
	DefaultPeriodDays = 30
	MaxPeriodDays     = 365
)

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// ParsePeriodDays interprets the dashboard `period` query param as a number
// of days, clamped to [1, MaxPeriodDays].
func ParsePeriodDays(raw string) int {
	days := DefaultPeriodDays
	if raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			days = n
		}
	}
	if days > MaxPeriodDays {
		days = MaxPeriodDays
	}
	return days
}

// PeriodWindow returns the reporting window ending now and starting `days`
// days ago at midnight.
func PeriodWindow(days int) (start, end time.Time) {
	end = time.Now()
	start = BeginningOfDay(end.AddDate(0, 0, -days))
	return start, end
}
