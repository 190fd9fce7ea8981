package dayoff

import (
	"context"

	"github.com/alphaclinic/clinic-manager/internal/audit"
	domain "github.com/alphaclinic/clinic-manager/internal/domain/leave"
	"github.com/alphaclinic/clinic-manager/internal/httperr"
	"github.com/alphaclinic/clinic-manager/internal/models"
	"github.com/alphaclinic/clinic-manager/internal/timezone"
)

type DecideDayOff struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDecideDayOff(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DecideDayOff {
	return &DecideDayOff{
		repo:  repo,
		audit: audit,
	}
}

// Approve re-validates overlap against the currently approved set, then
// sets the decision. Re-invoking overwrites the previous decision
// metadata: last write wins, decisions never accumulate.
func (uc *DecideDayOff) Approve(
	ctx context.Context,
	dayOffID uint,
	approverID uint,
) (*models.DayOff, error) {

	d, err := uc.repo.GetDayOff(ctx, dayOffID)
	if err != nil {
		return nil, httperr.ErrBusiness("dayoff_not_found")
	}

	approved, err := uc.repo.ListApproved(ctx, d.StaffID)
	if err != nil {
		return nil, err
	}

	if err := domain.Validate(d, approved); err != nil {
		return nil, err
	}

	now := timezone.Now()
	d.Status = string(domain.StatusApproved)
	d.ApprovedByID = &approverID
	d.ApprovalDate = &now

	if err := uc.repo.UpdateDayOff(ctx, d); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &approverID,
		Action:   "dayoff_approved",
		Entity:   "day_off",
		EntityID: &d.ID,
	})

	return d, nil
}

func (uc *DecideDayOff) Reject(
	ctx context.Context,
	dayOffID uint,
	approverID uint,
	notes string,
) (*models.DayOff, error) {

	d, err := uc.repo.GetDayOff(ctx, dayOffID)
	if err != nil {
		return nil, httperr.ErrBusiness("dayoff_not_found")
	}

	now := timezone.Now()
	d.Status = string(domain.StatusRejected)
	d.ApprovedByID = &approverID
	d.ApprovalDate = &now
	d.ApprovalNotes = notes

	if err := uc.repo.UpdateDayOff(ctx, d); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &approverID,
		Action:   "dayoff_rejected",
		Entity:   "day_off",
		EntityID: &d.ID,
	})

	return d, nil
}
