package visit

import (
	"reflect"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/alphaclinic/clinic-manager/internal/models"
)

func intPtr(n int) *int { return &n }

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestMissingFields(t *testing.T) {
	cases := []struct {
		name     string
		visit    models.Visit
		expected []string
	}{
		{
			name:  "empty visit misses everything in order",
			visit: models.Visit{},
			expected: []string{
				GroupTreatmentArea,
				GroupTreatmentParameters,
				GroupPaymentInformation,
			},
		},
		{
			name: "area and parameters set, payment missing",
			visit: models.Visit{
				Area:       "Μασχάλες",
				PulseCount: intPtr(150),
			},
			expected: []string{GroupPaymentInformation},
		},
		{
			name: "whitespace area does not count",
			visit: models.Visit{
				Area:          "   ",
				SpotSizeMM:    decPtr("12"),
				PaymentMethod: "cash",
			},
			expected: []string{GroupTreatmentArea},
		},
		{
			name: "fluence alone satisfies parameters",
			visit: models.Visit{
				Area:        "Πλάτη",
				FluenceJCm2: decPtr("8.5"),
				PaidAmount:  decimal.RequireFromString("40"),
			},
			expected: []string{},
		},
		{
			name: "zero paid amount without method is unpaid",
			visit: models.Visit{
				Area:       "Πλάτη",
				PulseCount: intPtr(90),
				PaidAmount: decimal.Zero,
			},
			expected: []string{GroupPaymentInformation},
		},
	}

	for _, c := range cases {
		got := MissingFields(&c.visit)
		if !reflect.DeepEqual(got, c.expected) {
			t.Fatalf("%s: expected %v, got %v", c.name, c.expected, got)
		}
		if IsComplete(&c.visit) != (len(c.expected) == 0) {
			t.Fatalf("%s: IsComplete disagrees with MissingFields", c.name)
		}
	}
}

func TestCompletenessAfterPaymentRecorded(t *testing.T) {
	v := models.Visit{
		Area:       "Μασχάλες",
		PulseCount: intPtr(150),
	}
	if IsComplete(&v) {
		t.Fatal("expected incomplete before payment")
	}

	v.PaymentMethod = "cash"
	if !IsComplete(&v) {
		t.Fatal("expected complete after payment method recorded")
	}
	if got := MissingFields(&v); len(got) != 0 {
		t.Fatalf("expected no missing fields, got %v", got)
	}
}
