package leave

import (
	"github.com/shopspring/decimal"

	"github.com/alphaclinic/clinic-manager/internal/models"
)

// ===============================
// Leave ledger (pure computation)
// ===============================

// The ledger sums whatever approved rows it is handed; it is not an
// append-only event log. A request rejected and later re-approved
// contributes exactly once, because only its current status row exists.

// Balance computes the remaining balance for the year and category.
//
// leave/sick: allowance - sum |deduction|; other: allowance + sum of
// the (positive) deductions. Result is rounded to one decimal place.
// dayoffs must already be filtered to approved rows of the matching
// categories whose start date falls within the year (see Repository).
func Balance(profile *models.StaffProfile, dayoffs []models.DayOff, category Category) decimal.Decimal {
	used := Used(dayoffs, category)

	switch category {
	case CategorySick:
		return profile.SickLeaveAllowance.Sub(used).Round(1)
	case CategoryOther:
		return profile.OtherBalance.Add(used).Round(1)
	default: // leave, includes half_day rows
		return profile.AnnualLeaveAllowance.Sub(used).Round(1)
	}
}

// Used computes the total used (leave/sick, reported positive) or total
// added (other, reported positive) for the given rows.
func Used(dayoffs []models.DayOff, category Category) decimal.Decimal {
	total := decimal.Zero
	for i := range dayoffs {
		d := Deduction(&dayoffs[i])
		if category == CategoryOther {
			total = total.Add(d)
		} else {
			total = total.Add(d.Abs())
		}
	}
	return total.Round(1)
}

// LedgerCategories returns the day-off categories that feed the given
// balance category. Half-day requests count against annual leave.
func LedgerCategories(category Category) []string {
	if category == CategoryLeave {
		return []string{string(CategoryLeave), string(CategoryHalfDay)}
	}
	return []string{string(category)}
}
