package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Visit is the clinical/billing record materialized once an appointment
// is marked completed. At most one visit exists per appointment; the
// unique index is what makes concurrent materialization safe.
type Visit struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AppointmentID uint        `gorm:"uniqueIndex;not null" json:"appointment_id"`
	Appointment   Appointment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"appointment"`

	StaffID uint `gorm:"index;not null" json:"staff_id"`
	Staff   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"staff"`

	MachineID *uint    `json:"machine_id"`
	Machine   *Machine `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"machine,omitempty"`

	Area         string           `gorm:"size:64" json:"area"`
	SpotSizeMM   *decimal.Decimal `gorm:"type:decimal(4,1)" json:"spot_size_mm"`
	FluenceJCm2  *decimal.Decimal `gorm:"type:decimal(6,2)" json:"fluence_j_cm2"`
	PulseCount   *int             `json:"pulse_count"`
	Remarks      string           `gorm:"type:text" json:"remarks"`

	ChargeAmount  decimal.Decimal `gorm:"type:decimal(8,2)" json:"charge_amount"`
	PaidAmount    decimal.Decimal `gorm:"type:decimal(8,2);default:0" json:"paid_amount"`
	PaymentMethod string          `gorm:"size:16" json:"payment_method"`

	ClientPackageItemID *uint              `json:"client_package_item_id"`
	ClientPackageItem   *ClientPackageItem `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client_package_item,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
