package dayoff

import (
	"context"

	"github.com/shopspring/decimal"

	domain "github.com/alphaclinic/clinic-manager/internal/domain/leave"
	"github.com/alphaclinic/clinic-manager/internal/httperr"
	"github.com/alphaclinic/clinic-manager/internal/timezone"
)

type LeaveBalanceResult struct {
	StaffID  uint            `json:"staff_id"`
	Year     int             `json:"year"`
	Category string          `json:"category"`
	Balance  decimal.Decimal `json:"balance"`
	Used     decimal.Decimal `json:"used"`
}

type QueryLeaveBalance struct {
	repo domain.Repository
}

func NewQueryLeaveBalance(repo domain.Repository) *QueryLeaveBalance {
	return &QueryLeaveBalance{repo: repo}
}

// Execute computes the remaining balance and used/added total for one
// staff member, year and category, both rounded to one decimal place.
// Year zero means the current year; category defaults to annual leave.
func (uc *QueryLeaveBalance) Execute(
	ctx context.Context,
	staffID uint,
	year int,
	category string,
) (*LeaveBalanceResult, error) {

	if year == 0 {
		year = timezone.Now().Year()
	}
	if category == "" {
		category = string(domain.CategoryLeave)
	}
	if !domain.IsBalanceCategory(domain.Category(category)) {
		return nil, httperr.ErrBusiness("invalid_category")
	}

	profile, err := uc.repo.GetStaffProfile(ctx, staffID)
	if err != nil {
		return nil, httperr.ErrBusiness("staff_not_found")
	}

	cat := domain.Category(category)
	rows, err := uc.repo.ListApprovedForYear(ctx, staffID, year, domain.LedgerCategories(cat))
	if err != nil {
		return nil, err
	}

	return &LeaveBalanceResult{
		StaffID:  staffID,
		Year:     year,
		Category: category,
		Balance:  domain.Balance(profile, rows, cat),
		Used:     domain.Used(rows, cat),
	}, nil
}
