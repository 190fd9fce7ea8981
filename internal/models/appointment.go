package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClientID uint   `gorm:"index;not null" json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"client"`

	ServiceID uint    `gorm:"not null" json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"service"`

	StaffID uint `gorm:"index:idx_appt_staff_start;not null" json:"staff_id"`
	Staff   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"staff"`

	RoomID uint `gorm:"index:idx_appt_room_start;not null" json:"room_id"`
	Room   Room `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"room"`

	MachineID *uint    `json:"machine_id"`
	Machine   *Machine `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"machine,omitempty"`

	Start time.Time `gorm:"index;index:idx_appt_staff_start;index:idx_appt_room_start" json:"start"`
	End   time.Time `json:"end"`

	Status string `gorm:"size:16;default:'booked'" json:"status"`
	Notes  string `gorm:"type:text" json:"notes"`

	PriceOverride *decimal.Decimal `gorm:"type:decimal(8,2)" json:"price_override"`

	CreatedByID *uint `json:"created_by_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
