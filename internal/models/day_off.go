package models

import "time"

type DayOff struct {
	ID uint `gorm:"primaryKey" json:"id"`

	StaffID uint `gorm:"index:idx_dayoff_staff_start;not null" json:"staff_id"`
	Staff   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"staff"`

	StartDate time.Time `gorm:"type:date;index:idx_dayoff_staff_start;index:idx_dayoff_range" json:"start_date"`
	EndDate   time.Time `gorm:"type:date;index:idx_dayoff_range" json:"end_date"`

	Category string `gorm:"size:20;default:'leave'" json:"category"`
	Reason   string `gorm:"type:text" json:"reason"`

	Status        string     `gorm:"size:20;default:'pending'" json:"status"`
	ApprovedByID  *uint      `json:"approved_by_id"`
	ApprovedBy    *User      `gorm:"foreignKey:ApprovedByID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"approved_by,omitempty"`
	ApprovalDate  *time.Time `json:"approval_date"`
	ApprovalNotes string     `gorm:"type:text" json:"approval_notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
