package dayoff

import (
	"context"
	"time"

	domain "github.com/alphaclinic/clinic-manager/internal/domain/leave"
	"github.com/alphaclinic/clinic-manager/internal/httperr"
	"github.com/alphaclinic/clinic-manager/internal/models"
)

type UpdateDayOffInput struct {
	StartDate time.Time
	EndDate   time.Time
	Category  string
	Reason    string
}

type UpdateDayOff struct {
	repo domain.Repository
}

func NewUpdateDayOff(repo domain.Repository) *UpdateDayOff {
	return &UpdateDayOff{repo: repo}
}

// Execute edits a request's range, category or reason. The full
// validation pass runs again, overlap included; the status is left
// untouched.
func (uc *UpdateDayOff) Execute(
	ctx context.Context,
	dayOffID uint,
	in UpdateDayOffInput,
) (*models.DayOff, error) {

	d, err := uc.repo.GetDayOff(ctx, dayOffID)
	if err != nil {
		return nil, httperr.ErrBusiness("dayoff_not_found")
	}

	d.StartDate = in.StartDate
	d.EndDate = in.EndDate
	d.Category = in.Category
	d.Reason = in.Reason

	approved, err := uc.repo.ListApproved(ctx, d.StaffID)
	if err != nil {
		return nil, err
	}

	if err := domain.Validate(d, approved); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateDayOff(ctx, d); err != nil {
		return nil, err
	}

	return d, nil
}
