package leave

import (
	"github.com/alphaclinic/clinic-manager/internal/httperr"
	"github.com/alphaclinic/clinic-manager/internal/models"
)

// Validate checks the request's own invariants plus overlap against the
// staff member's already-approved requests. Pending requests are
// deliberately not part of the overlap set: speculative pending
// submissions may conflict with each other until one is approved.
//
// Runs on every validation pass (create and edit), never only at
// creation.
//
// All comparisons run on civil dates: the candidate carries
// clinic-timezone midnights while persisted rows load as UTC midnights,
// and comparing those instants directly lets ranges that touch on a
// calendar day slip past each other.
func Validate(d *models.DayOff, approved []models.DayOff) error {
	start, end := civilDate(d.StartDate), civilDate(d.EndDate)

	if end.Before(start) {
		return httperr.ErrBusiness("end_before_start")
	}

	if !IsValidCategory(Category(d.Category)) {
		return httperr.ErrBusiness("invalid_category")
	}

	if Category(d.Category) == CategoryHalfDay && !start.Equal(end) {
		return httperr.ErrBusiness("half_day_must_be_single_day")
	}

	for i := range approved {
		other := &approved[i]
		if other.ID == d.ID {
			continue
		}
		// Closed intervals intersect.
		otherStart, otherEnd := civilDate(other.StartDate), civilDate(other.EndDate)
		if !start.After(otherEnd) && !end.Before(otherStart) {
			return httperr.ErrBusiness("overlapping_day_off")
		}
	}

	return nil
}
