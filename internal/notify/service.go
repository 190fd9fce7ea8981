package notify

import (
	"errors"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/alphaclinic/clinic-manager/internal/models"
)

// Service builds notifications for appointment events and hands them to
// the dispatcher. Client channel preferences are honored here; the
// dispatcher only delivers.
type Service struct {
	db         *gorm.DB
	dispatcher *Dispatcher
	enabled    bool
	log        *logrus.Logger
}

func NewService(db *gorm.DB, dispatcher *Dispatcher, enabled bool, log *logrus.Logger) *Service {
	return &Service{
		db:         db,
		dispatcher: dispatcher,
		enabled:    enabled,
		log:        log,
	}
}

func (s *Service) staffName(staffID uint) string {
	var profile models.StaffProfile
	err := s.db.Preload("User").Where("user_id = ?", staffID).First(&profile).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.log.WithError(err).Warn("failed to load staff profile for notification")
		}
		var user models.User
		if s.db.First(&user, staffID).Error == nil && user.Name != "" {
			return user.Name
		}
		return models.FallbackStaffName
	}
	return profile.DisplayName()
}

// SendBookedConfirmation enqueues the booking confirmation over every
// channel the client has opted into.
func (s *Service) SendBookedConfirmation(ap *models.Appointment, sentByID *uint) {
	if s == nil || !s.enabled {
		return
	}

	staffName := s.staffName(ap.StaffID)
	client := ap.Client

	if client.Phone != "" && client.ReceiveBookingSMS {
		s.dispatcher.Enqueue(Outbound{
			Message: Message{
				Channel:   models.ChannelSMS,
				Recipient: client.Phone,
				Body:      BookedSMS(ap, staffName),
			},
			ClientID:      client.ID,
			AppointmentID: &ap.ID,
			SentByID:      sentByID,
		})
	}

	if client.Email != "" && client.ReceiveBookingEmail {
		subject, body := BookedEmail(ap, staffName)
		s.dispatcher.Enqueue(Outbound{
			Message: Message{
				Channel:   models.ChannelEmail,
				Recipient: client.Email,
				Subject:   subject,
				Body:      body,
			},
			ClientID:      client.ID,
			AppointmentID: &ap.ID,
			SentByID:      sentByID,
		})
	}
}

// SendReminder enqueues the day-before reminder, honoring preferences.
func (s *Service) SendReminder(ap *models.Appointment) {
	if s == nil || !s.enabled {
		return
	}

	staffName := s.staffName(ap.StaffID)
	client := ap.Client

	if client.Phone != "" && client.ReceiveReminderSMS {
		s.dispatcher.Enqueue(Outbound{
			Message: Message{
				Channel:   models.ChannelSMS,
				Recipient: client.Phone,
				Body:      ReminderSMS(ap, staffName),
			},
			ClientID:      client.ID,
			AppointmentID: &ap.ID,
		})
	}

	if client.Email != "" && client.ReceiveReminderEmail {
		subject, body := ReminderEmail(ap, staffName)
		s.dispatcher.Enqueue(Outbound{
			Message: Message{
				Channel:   models.ChannelEmail,
				Recipient: client.Email,
				Subject:   subject,
				Body:      body,
			},
			ClientID:      client.ID,
			AppointmentID: &ap.ID,
		})
	}
}

// SendCustom enqueues a manually composed message to one client.
func (s *Service) SendCustom(client *models.Client, channel, subject, body string, sentByID *uint) {
	if s == nil {
		return
	}
	recipient := client.Phone
	if channel == models.ChannelEmail {
		recipient = client.Email
	}
	if recipient == "" {
		return
	}

	s.dispatcher.Enqueue(Outbound{
		Message: Message{
			Channel:   channel,
			Recipient: recipient,
			Subject:   subject,
			Body:      body,
		},
		ClientID: client.ID,
		SentByID: sentByID,
	})
}
