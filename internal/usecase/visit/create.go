package visit

import (
	"context"

	"github.com/shopspring/decimal"

	domain "github.com/alphaclinic/clinic-manager/internal/domain/visit"
	"github.com/alphaclinic/clinic-manager/internal/httperr"
	"github.com/alphaclinic/clinic-manager/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateVisitInput struct {
	AppointmentID uint

	// Optional; default to the appointment's staff/machine.
	StaffID   *uint
	MachineID *uint

	Area        string
	SpotSizeMM  *decimal.Decimal
	FluenceJCm2 *decimal.Decimal
	PulseCount  *int
	Remarks     string

	ChargeAmount  *decimal.Decimal
	PaidAmount    *decimal.Decimal
	PaymentMethod string

	ClientPackageItemID *uint
}

// ======================================================
// USE CASE
// ======================================================

type CreateVisit struct {
	repo domain.Repository
}

func NewCreateVisit(repo domain.Repository) *CreateVisit {
	return &CreateVisit{repo: repo}
}

// Execute creates a visit by hand (the materialized path lives in the
// appointment status change). A linked package line must match the
// appointment's service, and exactly one session is redeemed from it
// inside the creation transaction; an exhausted line fails the whole
// creation and no visit is persisted.
func (uc *CreateVisit) Execute(
	ctx context.Context,
	in CreateVisitInput,
) (*models.Visit, error) {

	ap, err := uc.repo.GetAppointment(ctx, in.AppointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if in.ClientPackageItemID != nil {
		item, err := uc.repo.GetClientPackageItem(ctx, *in.ClientPackageItemID)
		if err != nil {
			return nil, httperr.ErrBusiness("package_item_not_found")
		}
		if item.PackageItem.ServiceID != ap.ServiceID {
			return nil, httperr.ErrBusiness("package_service_mismatch")
		}
	}

	staffID := ap.StaffID
	if in.StaffID != nil {
		staffID = *in.StaffID
	}
	machineID := ap.MachineID
	if in.MachineID != nil {
		machineID = in.MachineID
	}

	charge := decimal.Zero
	if in.ChargeAmount != nil {
		charge = *in.ChargeAmount
	} else if ap.PriceOverride != nil {
		charge = *ap.PriceOverride
	}

	paid := decimal.Zero
	if in.PaidAmount != nil {
		paid = *in.PaidAmount
	}

	v := &models.Visit{
		AppointmentID:       in.AppointmentID,
		StaffID:             staffID,
		MachineID:           machineID,
		Area:                in.Area,
		SpotSizeMM:          in.SpotSizeMM,
		FluenceJCm2:         in.FluenceJCm2,
		PulseCount:          in.PulseCount,
		Remarks:             in.Remarks,
		ChargeAmount:        charge,
		PaidAmount:          paid,
		PaymentMethod:       in.PaymentMethod,
		ClientPackageItemID: in.ClientPackageItemID,
	}

	if err := uc.repo.CreateVisit(ctx, v); err != nil {
		if httperr.IsUniqueViolation(err) {
			return nil, httperr.ErrBusiness("visit_already_exists")
		}
		return nil, err
	}

	return v, nil
}
