package leave

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/alphaclinic/clinic-manager/internal/models"
)

var (
	deductionDaily   = decimal.NewFromInt(-1)            // leave, sick: per calendar day
	deductionHalfDay = decimal.RequireFromString("-0.5") // fixed, single day
	deductionOther   = decimal.NewFromInt(1)             // fixed compensation credit
)

// DurationDays counts calendar days in the inclusive range. The count
// runs on civil dates, so a DST shift inside the range cannot drop or
// add a day.
func DurationDays(d *models.DayOff) int {
	return int(civilDate(d.EndDate).Sub(civilDate(d.StartDate)).Hours()/24) + 1
}

// Deduction is the signed day-count impact of the request on its
// category's balance:
//
//	leave     -1.0 per day
//	sick      -1.0 per day
//	half_day  -0.5 fixed, regardless of range length
//	other     +1.0 fixed, regardless of range length
func Deduction(d *models.DayOff) decimal.Decimal {
	switch Category(d.Category) {
	case CategoryHalfDay:
		return deductionHalfDay
	case CategoryOther:
		return deductionOther
	case CategoryLeave, CategorySick:
		return deductionDaily.Mul(decimal.NewFromInt(int64(DurationDays(d))))
	}
	return decimal.Zero
}

func IsUpcoming(d *models.DayOff, today time.Time) bool {
	return civilDate(d.StartDate).After(civilDate(today))
}

func IsActive(d *models.DayOff, today time.Time) bool {
	t := civilDate(today)
	return !civilDate(d.StartDate).After(t) && !civilDate(d.EndDate).Before(t)
}

func IsPast(d *models.DayOff, today time.Time) bool {
	return civilDate(d.EndDate).Before(civilDate(today))
}

// civilDate strips the clock and location, leaving the calendar date at
// UTC midnight. Day-off ranges reach this package in mixed locations
// (request parsing uses the clinic timezone, database date columns load
// as UTC), so every date comparison goes through this.
func civilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
