package dayoff

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	domain "github.com/alphaclinic/clinic-manager/internal/domain/leave"
	"github.com/alphaclinic/clinic-manager/internal/httperr"
	"github.com/alphaclinic/clinic-manager/internal/models"
)

// ======================================================
// FAKE REPOSITORY
// ======================================================

type fakeLeaveRepo struct {
	dayoffs  map[uint]*models.DayOff
	profiles map[uint]*models.StaffProfile
	nextID   uint
}

var _ domain.Repository = (*fakeLeaveRepo)(nil)

func newFakeLeaveRepo() *fakeLeaveRepo {
	return &fakeLeaveRepo{
		dayoffs:  map[uint]*models.DayOff{},
		profiles: map[uint]*models.StaffProfile{},
		nextID:   1,
	}
}

func (f *fakeLeaveRepo) GetDayOff(ctx context.Context, id uint) (*models.DayOff, error) {
	if d, ok := f.dayoffs[id]; ok {
		cp := *d
		return &cp, nil
	}
	return nil, errors.New("record not found")
}

func (f *fakeLeaveRepo) CreateDayOff(ctx context.Context, d *models.DayOff) error {
	d.ID = f.nextID
	f.nextID++
	cp := *d
	f.dayoffs[d.ID] = &cp
	return nil
}

func (f *fakeLeaveRepo) UpdateDayOff(ctx context.Context, d *models.DayOff) error {
	if _, ok := f.dayoffs[d.ID]; !ok {
		return errors.New("record not found")
	}
	cp := *d
	f.dayoffs[d.ID] = &cp
	return nil
}

func (f *fakeLeaveRepo) DeleteDayOff(ctx context.Context, id uint) error {
	delete(f.dayoffs, id)
	return nil
}

func (f *fakeLeaveRepo) ListDayOffs(ctx context.Context, staffID uint, status string) ([]models.DayOff, error) {
	var out []models.DayOff
	for _, d := range f.dayoffs {
		if staffID != 0 && d.StaffID != staffID {
			continue
		}
		if status != "" && d.Status != status {
			continue
		}
		out = append(out, *d)
	}
	return out, nil
}

func (f *fakeLeaveRepo) ListApproved(ctx context.Context, staffID uint) ([]models.DayOff, error) {
	return f.ListDayOffs(ctx, staffID, string(domain.StatusApproved))
}

func (f *fakeLeaveRepo) ListApprovedForYear(ctx context.Context, staffID uint, year int, categories []string) ([]models.DayOff, error) {
	approved, _ := f.ListApproved(ctx, staffID)
	var out []models.DayOff
	for _, d := range approved {
		if d.StartDate.Year() != year {
			continue
		}
		for _, c := range categories {
			if d.Category == c {
				out = append(out, d)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeLeaveRepo) GetStaffProfile(ctx context.Context, staffID uint) (*models.StaffProfile, error) {
	if p, ok := f.profiles[staffID]; ok {
		return p, nil
	}
	return nil, errors.New("record not found")
}

// ======================================================
// HELPERS
// ======================================================

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mustBusinessCode(t *testing.T, err error, code string) {
	t.Helper()
	got, ok := httperr.BusinessCode(err)
	if !ok || got != code {
		t.Fatalf("expected business error %q, got %v", code, err)
	}
}

// ======================================================
// CREATE
// ======================================================

func TestCreateStartsPending(t *testing.T) {
	repo := newFakeLeaveRepo()
	uc := NewCreateDayOff(repo, nil)

	d, err := uc.Execute(context.Background(), CreateDayOffInput{
		StaffID:   1,
		StartDate: day(2025, 3, 10),
		EndDate:   day(2025, 3, 12),
		Category:  "leave",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Status != string(domain.StatusPending) {
		t.Fatalf("expected pending, got %s", d.Status)
	}
}

func TestCreateAllowsConflictingPendingRequests(t *testing.T) {
	repo := newFakeLeaveRepo()
	uc := NewCreateDayOff(repo, nil)

	in := CreateDayOffInput{
		StaffID:   1,
		StartDate: day(2025, 3, 10),
		EndDate:   day(2025, 3, 12),
		Category:  "leave",
	}

	if _, err := uc.Execute(context.Background(), in); err != nil {
		t.Fatalf("first request failed: %v", err)
	}
	// Overlap is enforced against approved rows only.
	if _, err := uc.Execute(context.Background(), in); err != nil {
		t.Fatalf("overlapping pending request should be accepted, got %v", err)
	}
}

func TestCreateRejectsOverlapWithApproved(t *testing.T) {
	repo := newFakeLeaveRepo()
	repo.dayoffs[50] = &models.DayOff{
		ID: 50, StaffID: 1, Category: "leave",
		StartDate: day(2025, 3, 11), EndDate: day(2025, 3, 13),
		Status: string(domain.StatusApproved),
	}

	uc := NewCreateDayOff(repo, nil)
	_, err := uc.Execute(context.Background(), CreateDayOffInput{
		StaffID:   1,
		StartDate: day(2025, 3, 10),
		EndDate:   day(2025, 3, 12),
		Category:  "leave",
	})
	mustBusinessCode(t, err, "overlapping_day_off")
}

// ======================================================
// DECIDE
// ======================================================

func TestApproveSetsDecisionMetadata(t *testing.T) {
	repo := newFakeLeaveRepo()
	repo.dayoffs[1] = &models.DayOff{
		ID: 1, StaffID: 1, Category: "leave",
		StartDate: day(2025, 3, 10), EndDate: day(2025, 3, 12),
		Status: string(domain.StatusPending),
	}

	uc := NewDecideDayOff(repo, nil)
	d, err := uc.Approve(context.Background(), 1, 99)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Status != string(domain.StatusApproved) {
		t.Fatalf("expected approved, got %s", d.Status)
	}
	if d.ApprovedByID == nil || *d.ApprovedByID != 99 {
		t.Fatal("expected approver to be recorded")
	}
	if d.ApprovalDate == nil {
		t.Fatal("expected approval date to be set")
	}
}

func TestRedecisionLastWriteWins(t *testing.T) {
	repo := newFakeLeaveRepo()
	repo.dayoffs[1] = &models.DayOff{
		ID: 1, StaffID: 1, Category: "leave",
		StartDate: day(2025, 3, 10), EndDate: day(2025, 3, 12),
		Status: string(domain.StatusPending),
	}

	uc := NewDecideDayOff(repo, nil)

	if _, err := uc.Approve(context.Background(), 1, 99); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	d, err := uc.Reject(context.Background(), 1, 100, "overstaffed week")
	if err != nil {
		t.Fatalf("reject after approve failed: %v", err)
	}

	if d.Status != string(domain.StatusRejected) {
		t.Fatalf("expected rejected, got %s", d.Status)
	}
	if *d.ApprovedByID != 100 {
		t.Fatalf("expected the second decider, got %d", *d.ApprovedByID)
	}
	if d.ApprovalNotes != "overstaffed week" {
		t.Fatalf("unexpected notes: %q", d.ApprovalNotes)
	}
}

func TestApproveRejectsOverlapWithOtherApproved(t *testing.T) {
	repo := newFakeLeaveRepo()
	repo.dayoffs[1] = &models.DayOff{
		ID: 1, StaffID: 1, Category: "leave",
		StartDate: day(2025, 3, 10), EndDate: day(2025, 3, 12),
		Status: string(domain.StatusPending),
	}
	repo.dayoffs[2] = &models.DayOff{
		ID: 2, StaffID: 1, Category: "leave",
		StartDate: day(2025, 3, 12), EndDate: day(2025, 3, 14),
		Status: string(domain.StatusApproved),
	}

	uc := NewDecideDayOff(repo, nil)
	_, err := uc.Approve(context.Background(), 1, 99)
	mustBusinessCode(t, err, "overlapping_day_off")
}

// ======================================================
// BALANCE
// ======================================================

func TestLeaveBalanceQuery(t *testing.T) {
	repo := newFakeLeaveRepo()
	repo.profiles[1] = &models.StaffProfile{
		UserID:               1,
		AnnualLeaveAllowance: decimal.RequireFromString("21.0"),
		SickLeaveAllowance:   decimal.RequireFromString("10.0"),
	}
	repo.dayoffs[1] = &models.DayOff{
		ID: 1, StaffID: 1, Category: "leave",
		StartDate: day(2025, 3, 10), EndDate: day(2025, 3, 12),
		Status: string(domain.StatusApproved),
	}
	repo.dayoffs[2] = &models.DayOff{
		ID: 2, StaffID: 1, Category: "half_day",
		StartDate: day(2025, 4, 1), EndDate: day(2025, 4, 1),
		Status: string(domain.StatusApproved),
	}
	// Rejected rows never reach the ledger.
	repo.dayoffs[3] = &models.DayOff{
		ID: 3, StaffID: 1, Category: "leave",
		StartDate: day(2025, 5, 5), EndDate: day(2025, 5, 9),
		Status: string(domain.StatusRejected),
	}
	// A different year is out of scope.
	repo.dayoffs[4] = &models.DayOff{
		ID: 4, StaffID: 1, Category: "leave",
		StartDate: day(2024, 3, 10), EndDate: day(2024, 3, 12),
		Status: string(domain.StatusApproved),
	}

	uc := NewQueryLeaveBalance(repo)
	result, err := uc.Execute(context.Background(), 1, 2025, "leave")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Used.String() != "3.5" {
		t.Fatalf("expected used 3.5, got %s", result.Used)
	}
	if result.Balance.String() != "17.5" {
		t.Fatalf("expected balance 17.5, got %s", result.Balance)
	}
}

func TestLeaveBalanceRejectsHalfDayCategory(t *testing.T) {
	repo := newFakeLeaveRepo()
	repo.profiles[1] = &models.StaffProfile{UserID: 1}

	uc := NewQueryLeaveBalance(repo)
	_, err := uc.Execute(context.Background(), 1, 2025, "half_day")
	mustBusinessCode(t, err, "invalid_category")
}

func TestLeaveBalanceDefaultsToAnnualLeave(t *testing.T) {
	repo := newFakeLeaveRepo()
	repo.profiles[1] = &models.StaffProfile{
		UserID:               1,
		AnnualLeaveAllowance: decimal.RequireFromString("21.0"),
	}

	uc := NewQueryLeaveBalance(repo)
	result, err := uc.Execute(context.Background(), 1, 2025, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Category != "leave" {
		t.Fatalf("expected leave, got %s", result.Category)
	}
	if result.Balance.String() != "21" {
		t.Fatalf("expected 21, got %s", result.Balance)
	}
}
