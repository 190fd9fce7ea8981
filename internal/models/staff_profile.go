package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FallbackStaffName is used wherever a staff member has no usable name,
// e.g. in client-facing notification messages.
const FallbackStaffName = "Our Team"

type StaffProfile struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`

	Position       string     `gorm:"size:100" json:"position"`
	EmploymentType string     `gorm:"size:20;default:'full_time'" json:"employment_type"`
	HireDate       *time.Time `gorm:"type:date" json:"hire_date"`
	EmployeeID     string     `gorm:"size:20" json:"employee_id"`

	Certifications string `gorm:"type:text" json:"certifications"`
	Bio            string `gorm:"type:text" json:"bio"`
	AvatarURL      string `gorm:"size:255" json:"avatar_url"`

	// Leave allowances in days, halves allowed. OtherBalance starts at
	// zero and only grows through approved compensation entries.
	AnnualLeaveAllowance decimal.Decimal `gorm:"type:decimal(5,1);default:21.0" json:"annual_leave_allowance"`
	SickLeaveAllowance   decimal.Decimal `gorm:"type:decimal(5,1);default:10.0" json:"sick_leave_allowance"`
	OtherBalance         decimal.Decimal `gorm:"type:decimal(5,1);default:0.0" json:"other_balance"`

	IsActiveStaff bool `gorm:"default:true" json:"is_active_staff"`
	CanBeBooked   bool `gorm:"default:true" json:"can_be_booked"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DisplayName resolves the best available human name for the staff
// member, falling back to FallbackStaffName.
func (p *StaffProfile) DisplayName() string {
	if p == nil {
		return FallbackStaffName
	}
	if name := strings.TrimSpace(p.User.Name); name != "" {
		return name
	}
	return FallbackStaffName
}
