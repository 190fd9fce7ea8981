package visit

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/alphaclinic/clinic-manager/internal/models"
)

// ===============================
// Visit completeness (pure)
// ===============================

// Field-group names, reported in this fixed order.
const (
	GroupTreatmentArea       = "Treatment Area"
	GroupTreatmentParameters = "Treatment Parameters"
	GroupPaymentInformation  = "Payment Information"
)

// IsComplete reports whether the visit carries enough clinical and
// payment data to be considered finished: a non-empty treatment area,
// at least one treatment parameter, and either a payment or a payment
// method. Drives the needs-attention feed only; blocks nothing.
func IsComplete(v *models.Visit) bool {
	return hasArea(v) && hasParameters(v) && hasPayment(v)
}

// MissingFields lists the failing field groups, ordered.
func MissingFields(v *models.Visit) []string {
	missing := make([]string, 0, 3)
	if !hasArea(v) {
		missing = append(missing, GroupTreatmentArea)
	}
	if !hasParameters(v) {
		missing = append(missing, GroupTreatmentParameters)
	}
	if !hasPayment(v) {
		missing = append(missing, GroupPaymentInformation)
	}
	return missing
}

func hasArea(v *models.Visit) bool {
	return strings.TrimSpace(v.Area) != ""
}

func hasParameters(v *models.Visit) bool {
	return v.SpotSizeMM != nil || v.FluenceJCm2 != nil || v.PulseCount != nil
}

func hasPayment(v *models.Visit) bool {
	return v.PaidAmount.GreaterThan(decimal.Zero) || v.PaymentMethod != ""
}
