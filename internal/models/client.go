package models

import "time"

type Client struct {
	ID uint `gorm:"primaryKey" json:"id"`

	FullName string `gorm:"size:120;not null" json:"full_name"`
	Phone    string `gorm:"size:20" json:"phone"`
	Email    string `gorm:"size:100" json:"email"`
	Notes    string `gorm:"type:text" json:"notes"`

	// Per-channel notification preferences.
	ReceiveBookingSMS    bool `gorm:"default:true" json:"receive_booking_sms"`
	ReceiveBookingEmail  bool `gorm:"default:true" json:"receive_booking_email"`
	ReceiveReminderSMS   bool `gorm:"default:true" json:"receive_reminder_sms"`
	ReceiveReminderEmail bool `gorm:"default:true" json:"receive_reminder_email"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
