package visit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	domain "github.com/alphaclinic/clinic-manager/internal/domain/visit"
	"github.com/alphaclinic/clinic-manager/internal/httperr"
	"github.com/alphaclinic/clinic-manager/internal/models"
)

// ======================================================
// FAKE REPOSITORY
// ======================================================

type fakeVisitRepo struct {
	visits       map[uint]*models.Visit
	appointments map[uint]*models.Appointment
	packageItems map[uint]*models.ClientPackageItem
	nextID       uint

	visitExistsFor map[uint]bool // appointment ids with a visit row
}

var _ domain.Repository = (*fakeVisitRepo)(nil)

func newFakeVisitRepo() *fakeVisitRepo {
	return &fakeVisitRepo{
		visits:         map[uint]*models.Visit{},
		appointments:   map[uint]*models.Appointment{},
		packageItems:   map[uint]*models.ClientPackageItem{},
		nextID:         1,
		visitExistsFor: map[uint]bool{},
	}
}

func (f *fakeVisitRepo) GetVisit(ctx context.Context, id uint) (*models.Visit, error) {
	if v, ok := f.visits[id]; ok {
		cp := *v
		return &cp, nil
	}
	return nil, errors.New("record not found")
}

// CreateVisit mirrors the transactional semantics of the real
// repository: the guarded decrement runs first and an exhausted package
// line aborts the whole creation.
func (f *fakeVisitRepo) CreateVisit(ctx context.Context, v *models.Visit) error {
	if f.visitExistsFor[v.AppointmentID] {
		return &pgconn.PgError{Code: "23505"}
	}

	if v.ClientPackageItemID != nil {
		item, ok := f.packageItems[*v.ClientPackageItemID]
		if !ok {
			return errors.New("record not found")
		}
		if item.RemainingSessions <= 0 {
			return httperr.ErrBusiness("no_remaining_sessions")
		}
		item.RemainingSessions--
	}

	v.ID = f.nextID
	f.nextID++
	cp := *v
	f.visits[v.ID] = &cp
	f.visitExistsFor[v.AppointmentID] = true
	return nil
}

func (f *fakeVisitRepo) UpdateVisit(ctx context.Context, v *models.Visit) error {
	if _, ok := f.visits[v.ID]; !ok {
		return errors.New("record not found")
	}
	cp := *v
	f.visits[v.ID] = &cp
	return nil
}

func (f *fakeVisitRepo) DeleteVisit(ctx context.Context, id uint) error {
	delete(f.visits, id)
	return nil
}

func (f *fakeVisitRepo) ListRecent(ctx context.Context, limit int) ([]models.Visit, error) {
	var out []models.Visit
	for id := f.nextID; id > 0 && len(out) < limit; id-- {
		if v, ok := f.visits[id]; ok {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (f *fakeVisitRepo) ListAll(ctx context.Context) ([]models.Visit, error) {
	return f.ListRecent(ctx, len(f.visits))
}

func (f *fakeVisitRepo) GetClientPackageItem(ctx context.Context, id uint) (*models.ClientPackageItem, error) {
	if item, ok := f.packageItems[id]; ok {
		return item, nil
	}
	return nil, errors.New("record not found")
}

func (f *fakeVisitRepo) GetAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	if ap, ok := f.appointments[id]; ok {
		return ap, nil
	}
	return nil, errors.New("record not found")
}

// ======================================================
// HELPERS
// ======================================================

func seedAppointment(f *fakeVisitRepo) {
	price := decimal.RequireFromString("60.00")
	f.appointments[1] = &models.Appointment{
		ID:            1,
		ServiceID:     5,
		StaffID:       3,
		PriceOverride: &price,
	}
}

func seedPackageItem(f *fakeVisitRepo, remaining int, serviceID uint) {
	f.packageItems[10] = &models.ClientPackageItem{
		ID:                10,
		PackageItem:       models.PackageItem{ServiceID: serviceID},
		RemainingSessions: remaining,
	}
}

func mustCode(t *testing.T, err error, code string) {
	t.Helper()
	got, ok := httperr.BusinessCode(err)
	if !ok || got != code {
		t.Fatalf("expected business error %q, got %v", code, err)
	}
}

// ======================================================
// CREATE
// ======================================================

func TestCreateDefaultsFromAppointment(t *testing.T) {
	repo := newFakeVisitRepo()
	seedAppointment(repo)

	uc := NewCreateVisit(repo)
	v, err := uc.Execute(context.Background(), CreateVisitInput{AppointmentID: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if v.StaffID != 3 {
		t.Fatalf("expected staff from appointment, got %d", v.StaffID)
	}
	if v.ChargeAmount.String() != "60" {
		t.Fatalf("expected charge from price override, got %s", v.ChargeAmount)
	}
	if !v.PaidAmount.IsZero() {
		t.Fatalf("expected zero paid, got %s", v.PaidAmount)
	}
}

func TestCreateRedeemsOneSession(t *testing.T) {
	repo := newFakeVisitRepo()
	seedAppointment(repo)
	seedPackageItem(repo, 3, 5)

	itemID := uint(10)
	uc := NewCreateVisit(repo)

	if _, err := uc.Execute(context.Background(), CreateVisitInput{
		AppointmentID:       1,
		ClientPackageItemID: &itemID,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := repo.packageItems[10].RemainingSessions; got != 2 {
		t.Fatalf("expected 2 sessions left, got %d", got)
	}
}

func TestCreateFailsWhenPackageExhausted(t *testing.T) {
	repo := newFakeVisitRepo()
	seedAppointment(repo)
	seedPackageItem(repo, 0, 5)

	itemID := uint(10)
	uc := NewCreateVisit(repo)

	_, err := uc.Execute(context.Background(), CreateVisitInput{
		AppointmentID:       1,
		ClientPackageItemID: &itemID,
	})
	mustCode(t, err, "no_remaining_sessions")

	// The failed redemption must leave no visit behind.
	if len(repo.visits) != 0 {
		t.Fatal("expected no visit persisted")
	}
	if repo.packageItems[10].RemainingSessions != 0 {
		t.Fatal("session count must be untouched")
	}
}

func TestCreateRejectsServiceMismatch(t *testing.T) {
	repo := newFakeVisitRepo()
	seedAppointment(repo)
	seedPackageItem(repo, 3, 99) // different service than the appointment

	itemID := uint(10)
	uc := NewCreateVisit(repo)

	_, err := uc.Execute(context.Background(), CreateVisitInput{
		AppointmentID:       1,
		ClientPackageItemID: &itemID,
	})
	mustCode(t, err, "package_service_mismatch")

	if repo.packageItems[10].RemainingSessions != 3 {
		t.Fatal("no session may be redeemed on mismatch")
	}
}

func TestCreateRejectsSecondVisitForAppointment(t *testing.T) {
	repo := newFakeVisitRepo()
	seedAppointment(repo)

	uc := NewCreateVisit(repo)

	if _, err := uc.Execute(context.Background(), CreateVisitInput{AppointmentID: 1}); err != nil {
		t.Fatalf("first visit failed: %v", err)
	}
	_, err := uc.Execute(context.Background(), CreateVisitInput{AppointmentID: 1})
	mustCode(t, err, "visit_already_exists")
}

// ======================================================
// UPDATE
// ======================================================

func TestUpdateNeverRedeems(t *testing.T) {
	repo := newFakeVisitRepo()
	seedAppointment(repo)
	seedPackageItem(repo, 3, 5)

	itemID := uint(10)
	createUC := NewCreateVisit(repo)
	v, err := createUC.Execute(context.Background(), CreateVisitInput{
		AppointmentID:       1,
		ClientPackageItemID: &itemID,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updateUC := NewUpdateVisit(repo)
	pulse := 150
	updated, err := updateUC.Execute(context.Background(), v.ID, UpdateVisitInput{
		Area:          "Μασχάλες",
		PulseCount:    &pulse,
		PaymentMethod: "cash",
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if got := repo.packageItems[10].RemainingSessions; got != 2 {
		t.Fatalf("updates must not redeem sessions, got %d left", got)
	}
	if !domain.IsComplete(updated) {
		t.Fatal("expected complete visit after update")
	}
}

// ======================================================
// INCOMPLETE FEED
// ======================================================

func TestIncompleteFeedFiltersAndAges(t *testing.T) {
	repo := newFakeVisitRepo()

	pulse := 120
	created := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)

	// One complete, two incomplete.
	repo.visits[1] = &models.Visit{
		ID: 1, AppointmentID: 11, Area: "Πλάτη", PulseCount: &pulse,
		PaymentMethod: "cash", CreatedAt: created,
	}
	repo.visits[2] = &models.Visit{
		ID: 2, AppointmentID: 12, Area: "Μασχάλες", PulseCount: &pulse,
		CreatedAt: created.Add(-2 * time.Hour),
	}
	repo.visits[3] = &models.Visit{
		ID: 3, AppointmentID: 13,
		CreatedAt: created.Add(-30 * time.Second),
	}
	repo.nextID = 4

	uc := NewIncompleteFeed(repo, nil)
	uc.now = func() time.Time { return created }

	result, err := uc.Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Count != 2 {
		t.Fatalf("expected 2 incomplete, got %d", result.Count)
	}
	for _, entry := range result.Visits {
		switch entry.VisitID {
		case 2:
			if len(entry.MissingFields) != 1 || entry.MissingFields[0] != domain.GroupPaymentInformation {
				t.Fatalf("visit 2: unexpected missing fields %v", entry.MissingFields)
			}
			if entry.TimeSince != "2 hours ago" {
				t.Fatalf("visit 2: unexpected age %q", entry.TimeSince)
			}
		case 3:
			if len(entry.MissingFields) != 3 {
				t.Fatalf("visit 3: unexpected missing fields %v", entry.MissingFields)
			}
			if entry.TimeSince != "Just now" {
				t.Fatalf("visit 3: unexpected age %q", entry.TimeSince)
			}
		default:
			t.Fatalf("unexpected visit %d in feed", entry.VisitID)
		}
	}
}

func TestIncompleteCountWithoutCache(t *testing.T) {
	repo := newFakeVisitRepo()
	repo.visits[1] = &models.Visit{ID: 1, AppointmentID: 11}
	repo.nextID = 2

	uc := NewIncompleteFeed(repo, nil)
	count, err := uc.Count(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1, got %d", count)
	}
}
