package leave

import (
	"testing"
	"time"

	"github.com/alphaclinic/clinic-manager/internal/httperr"
	"github.com/alphaclinic/clinic-manager/internal/models"
)

func mustCode(t *testing.T, err error, code string) {
	t.Helper()
	got, ok := httperr.BusinessCode(err)
	if !ok {
		t.Fatalf("expected business error %q, got %v", code, err)
	}
	if got != code {
		t.Fatalf("expected code %q, got %q", code, got)
	}
}

func TestValidateRejectsReversedRange(t *testing.T) {
	d := &models.DayOff{
		Category:  "leave",
		StartDate: date(2025, 3, 12),
		EndDate:   date(2025, 3, 10),
	}
	mustCode(t, Validate(d, nil), "end_before_start")
}

func TestValidateRejectsUnknownCategory(t *testing.T) {
	d := &models.DayOff{
		Category:  "vacation",
		StartDate: date(2025, 3, 10),
		EndDate:   date(2025, 3, 10),
	}
	mustCode(t, Validate(d, nil), "invalid_category")
}

func TestValidateHalfDayMustBeSingleDay(t *testing.T) {
	d := &models.DayOff{
		Category:  "half_day",
		StartDate: date(2025, 3, 10),
		EndDate:   date(2025, 3, 11),
	}
	mustCode(t, Validate(d, nil), "half_day_must_be_single_day")

	d.EndDate = d.StartDate
	if err := Validate(d, nil); err != nil {
		t.Fatalf("single-day half day should pass, got %v", err)
	}
}

func TestValidateOverlap(t *testing.T) {
	approved := []models.DayOff{
		{ID: 7, Category: "leave", StartDate: date(2025, 3, 10), EndDate: date(2025, 3, 12), Status: "approved"},
	}

	cases := []struct {
		name    string
		start   time.Time
		end     time.Time
		overlap bool
	}{
		{"fully inside", date(2025, 3, 11), date(2025, 3, 11), true},
		{"touches start edge", date(2025, 3, 8), date(2025, 3, 10), true},
		{"touches end edge", date(2025, 3, 12), date(2025, 3, 14), true},
		{"covers whole range", date(2025, 3, 9), date(2025, 3, 13), true},
		{"before", date(2025, 3, 7), date(2025, 3, 9), false},
		{"after", date(2025, 3, 13), date(2025, 3, 14), false},
	}

	for _, c := range cases {
		d := &models.DayOff{
			Category:  "leave",
			StartDate: c.start,
			EndDate:   c.end,
		}
		err := Validate(d, approved)
		if c.overlap {
			mustCode(t, err, "overlapping_day_off")
		} else if err != nil {
			t.Fatalf("%s: expected no error, got %v", c.name, err)
		}
	}
}

func TestValidateOverlapAcrossMixedLocations(t *testing.T) {
	// Candidates carry clinic-timezone midnights from request parsing,
	// while approved rows load from date columns as UTC midnights. The
	// shared calendar day must still register as an overlap.
	approved := []models.DayOff{
		{ID: 7, Category: "leave", StartDate: date(2025, 3, 10), EndDate: date(2025, 3, 12), Status: "approved"},
	}

	d := &models.DayOff{
		Category:  "leave",
		StartDate: athensDate(t, "2025-03-08"),
		EndDate:   athensDate(t, "2025-03-10"),
	}
	mustCode(t, Validate(d, approved), "overlapping_day_off")

	// The day before the approved range stays clear.
	d.EndDate = athensDate(t, "2025-03-09")
	if err := Validate(d, approved); err != nil {
		t.Fatalf("expected no overlap, got %v", err)
	}
}

func TestValidateHalfDayAcceptsMixedLocationSingleDay(t *testing.T) {
	d := &models.DayOff{
		Category:  "half_day",
		StartDate: athensDate(t, "2025-03-10"),
		EndDate:   date(2025, 3, 10),
	}
	if err := Validate(d, nil); err != nil {
		t.Fatalf("same calendar day in different locations should pass, got %v", err)
	}
}

func TestValidateSkipsOwnRowOnEdit(t *testing.T) {
	// Editing an approved request must not collide with itself.
	approved := []models.DayOff{
		{ID: 7, Category: "leave", StartDate: date(2025, 3, 10), EndDate: date(2025, 3, 12), Status: "approved"},
	}

	edit := &models.DayOff{
		ID:        7,
		Category:  "leave",
		StartDate: date(2025, 3, 10),
		EndDate:   date(2025, 3, 13),
	}
	if err := Validate(edit, approved); err != nil {
		t.Fatalf("expected edit of own row to pass, got %v", err)
	}
}
