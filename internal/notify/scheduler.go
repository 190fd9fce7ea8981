package notify

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	domain "github.com/alphaclinic/clinic-manager/internal/domain/appointment"
	"github.com/alphaclinic/clinic-manager/internal/timezone"
)

// ReminderScheduler runs a daily cron job that enqueues reminders for
// tomorrow's still-booked appointments. Cancelled and completed
// appointments are excluded by the repository query.
type ReminderScheduler struct {
	repo    domain.Repository
	service *Service
	spec    string
	tz      string
	log     *logrus.Logger
}

func NewReminderScheduler(
	repo domain.Repository,
	service *Service,
	spec string,
	tz string,
	log *logrus.Logger,
) *ReminderScheduler {
	return &ReminderScheduler{
		repo:    repo,
		service: service,
		spec:    spec,
		tz:      tz,
		log:     log,
	}
}

func (s *ReminderScheduler) Start() (*cron.Cron, error) {
	c := cron.New(cron.WithLocation(timezone.Location(s.tz)))
	if _, err := c.AddFunc(s.spec, s.Run); err != nil {
		return nil, err
	}
	c.Start()
	s.log.WithField("spec", s.spec).Info("reminder scheduler started")
	return c, nil
}

// Run enqueues reminders for all booked appointments starting tomorrow.
func (s *ReminderScheduler) Run() {
	now := timezone.NowIn(s.tz)
	tomorrow := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, 1)

	aps, err := s.repo.ListBookedForDay(context.Background(), tomorrow, tomorrow.AddDate(0, 0, 1))
	if err != nil {
		s.log.WithError(err).Error("reminder query failed")
		return
	}

	for i := range aps {
		s.service.SendReminder(&aps[i])
	}

	s.log.WithField("count", len(aps)).Info("appointment reminders enqueued")
}
