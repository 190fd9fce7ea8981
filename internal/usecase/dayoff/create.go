package dayoff

import (
	"context"
	"time"

	"github.com/alphaclinic/clinic-manager/internal/audit"
	domain "github.com/alphaclinic/clinic-manager/internal/domain/leave"
	"github.com/alphaclinic/clinic-manager/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateDayOffInput struct {
	StaffID   uint
	StartDate time.Time
	EndDate   time.Time
	Category  string
	Reason    string
}

// ======================================================
// USE CASE
// ======================================================

type CreateDayOff struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateDayOff(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateDayOff {
	return &CreateDayOff{
		repo:  repo,
		audit: audit,
	}
}

// Execute validates the request and creates it in pending status. The
// caller cannot pick a status; every new request starts pending.
// Overlap is checked against approved requests only, so conflicting
// pending submissions are allowed to coexist.
func (uc *CreateDayOff) Execute(
	ctx context.Context,
	in CreateDayOffInput,
) (*models.DayOff, error) {

	d := &models.DayOff{
		StaffID:   in.StaffID,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		Category:  in.Category,
		Reason:    in.Reason,
		Status:    string(domain.StatusPending),
	}

	approved, err := uc.repo.ListApproved(ctx, in.StaffID)
	if err != nil {
		return nil, err
	}

	if err := domain.Validate(d, approved); err != nil {
		return nil, err
	}

	if err := uc.repo.CreateDayOff(ctx, d); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.StaffID,
		Action:   "dayoff_requested",
		Entity:   "day_off",
		EntityID: &d.ID,
		Metadata: map[string]any{
			"category": d.Category,
			"start":    d.StartDate.Format("2006-01-02"),
			"end":      d.EndDate.Format("2006-01-02"),
		},
	})

	return d, nil
}
