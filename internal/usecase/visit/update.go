package visit

import (
	"context"

	"github.com/shopspring/decimal"

	domain "github.com/alphaclinic/clinic-manager/internal/domain/visit"
	"github.com/alphaclinic/clinic-manager/internal/httperr"
	"github.com/alphaclinic/clinic-manager/internal/models"
)

type UpdateVisitInput struct {
	Area        string
	SpotSizeMM  *decimal.Decimal
	FluenceJCm2 *decimal.Decimal
	PulseCount  *int
	Remarks     string

	ChargeAmount  *decimal.Decimal
	PaidAmount    *decimal.Decimal
	PaymentMethod string
}

type UpdateVisit struct {
	repo domain.Repository
}

func NewUpdateVisit(repo domain.Repository) *UpdateVisit {
	return &UpdateVisit{repo: repo}
}

// Execute edits the visit's treatment and payment data. The package
// link is creation-only and cannot be edited here, so no redemption can
// ever fire twice for the same visit.
func (uc *UpdateVisit) Execute(
	ctx context.Context,
	visitID uint,
	in UpdateVisitInput,
) (*models.Visit, error) {

	v, err := uc.repo.GetVisit(ctx, visitID)
	if err != nil {
		return nil, httperr.ErrBusiness("visit_not_found")
	}

	v.Area = in.Area
	v.SpotSizeMM = in.SpotSizeMM
	v.FluenceJCm2 = in.FluenceJCm2
	v.PulseCount = in.PulseCount
	v.Remarks = in.Remarks
	v.PaymentMethod = in.PaymentMethod

	if in.ChargeAmount != nil {
		v.ChargeAmount = *in.ChargeAmount
	}
	if in.PaidAmount != nil {
		v.PaidAmount = *in.PaidAmount
	}

	if err := uc.repo.UpdateVisit(ctx, v); err != nil {
		return nil, err
	}

	return v, nil
}
