package handlers

import (
	"time"

	"github.com/alphaclinic/clinic-manager/internal/timezone"
)

// All user-facing dates are interpreted in the clinic's timezone.

func parseClinicDate(tz, dateStr string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", dateStr, timezone.Location(tz))
}

func dayBounds(date time.Time) (time.Time, time.Time) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return start, start.Add(24 * time.Hour)
}
