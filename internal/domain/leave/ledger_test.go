package leave

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/alphaclinic/clinic-manager/internal/models"
)

func profileWithAllowances() *models.StaffProfile {
	return &models.StaffProfile{
		AnnualLeaveAllowance: decimal.RequireFromString("21.0"),
		SickLeaveAllowance:   decimal.RequireFromString("10.0"),
		OtherBalance:         decimal.Zero,
	}
}

func TestBalanceAnnualLeaveWithHalfDay(t *testing.T) {
	// One 3-day leave plus one half day against a 21-day allowance.
	rows := []models.DayOff{
		{Category: "leave", StartDate: date(2025, 3, 10), EndDate: date(2025, 3, 12), Status: "approved"},
		{Category: "half_day", StartDate: date(2025, 4, 1), EndDate: date(2025, 4, 1), Status: "approved"},
	}

	used := Used(rows, CategoryLeave)
	if used.String() != "3.5" {
		t.Fatalf("expected used 3.5, got %s", used)
	}

	balance := Balance(profileWithAllowances(), rows, CategoryLeave)
	if balance.String() != "17.5" {
		t.Fatalf("expected balance 17.5, got %s", balance)
	}
}

func TestBalanceSick(t *testing.T) {
	rows := []models.DayOff{
		{Category: "sick", StartDate: date(2025, 2, 3), EndDate: date(2025, 2, 4), Status: "approved"},
	}

	balance := Balance(profileWithAllowances(), rows, CategorySick)
	if balance.String() != "8" {
		t.Fatalf("expected balance 8, got %s", balance)
	}
}

func TestBalanceOtherAccumulates(t *testing.T) {
	// Compensation entries add a fixed +1 each.
	rows := []models.DayOff{
		{Category: "other", StartDate: date(2025, 1, 6), EndDate: date(2025, 1, 6), Status: "approved"},
		{Category: "other", StartDate: date(2025, 2, 10), EndDate: date(2025, 2, 14), Status: "approved"},
	}

	balance := Balance(profileWithAllowances(), rows, CategoryOther)
	if balance.String() != "2" {
		t.Fatalf("expected balance 2, got %s", balance)
	}
}

func TestBalanceEmptyRows(t *testing.T) {
	balance := Balance(profileWithAllowances(), nil, CategoryLeave)
	if balance.String() != "21" {
		t.Fatalf("expected full allowance, got %s", balance)
	}
}

func TestBalanceRoundsToOneDecimal(t *testing.T) {
	rows := []models.DayOff{
		{Category: "half_day", StartDate: date(2025, 5, 5), EndDate: date(2025, 5, 5)},
		{Category: "half_day", StartDate: date(2025, 5, 6), EndDate: date(2025, 5, 6)},
		{Category: "half_day", StartDate: date(2025, 5, 7), EndDate: date(2025, 5, 7)},
	}

	balance := Balance(profileWithAllowances(), rows, CategoryLeave)
	if balance.String() != "19.5" {
		t.Fatalf("expected 19.5, got %s", balance)
	}
}

func TestLedgerCategories(t *testing.T) {
	cases := []struct {
		category Category
		expected []string
	}{
		{CategoryLeave, []string{"leave", "half_day"}},
		{CategorySick, []string{"sick"}},
		{CategoryOther, []string{"other"}},
	}

	for _, c := range cases {
		got := LedgerCategories(c.category)
		if len(got) != len(c.expected) {
			t.Fatalf("%s: expected %v, got %v", c.category, c.expected, got)
		}
		for i := range got {
			if got[i] != c.expected[i] {
				t.Fatalf("%s: expected %v, got %v", c.category, c.expected, got)
			}
		}
	}
}
