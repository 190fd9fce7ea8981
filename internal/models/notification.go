package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ChannelSMS   = "sms"
	ChannelEmail = "email"
)

const (
	NotificationPending = "pending"
	NotificationSent    = "sent"
	NotificationFailed  = "failed"
)

type NotificationTemplate struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name string `gorm:"size:100;not null" json:"name"`
	// appointment_booked, appointment_reminder or custom.
	Type string `gorm:"size:30;default:'custom'" json:"type"`

	SMSBody      string `gorm:"type:text" json:"sms_body"`
	EmailSubject string `gorm:"size:200" json:"email_subject"`
	EmailBody    string `gorm:"type:text" json:"email_body"`

	IsActive bool `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NotificationLog is an immutable record of one delivery attempt chain:
// created once per dispatch, updated only by the dispatch worker with
// the terminal outcome, never edited afterwards.
type NotificationLog struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	ClientID uint   `gorm:"index;not null" json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"client"`

	Channel string `gorm:"size:10;not null" json:"channel"`
	Subject string `gorm:"size:200" json:"subject"`
	Message string `gorm:"type:text;not null" json:"message"`

	Status   string `gorm:"size:20;default:'pending'" json:"status"`
	Attempts int    `gorm:"default:0" json:"attempts"`

	ExternalID   string `gorm:"size:100" json:"external_id"`
	ErrorMessage string `gorm:"type:text" json:"error_message"`

	AppointmentID *uint `gorm:"index" json:"appointment_id"`
	SentByID      *uint `json:"sent_by_id"`

	SentAt    *time.Time `json:"sent_at"`
	CreatedAt time.Time  `json:"created_at"`
}

func (n *NotificationLog) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
