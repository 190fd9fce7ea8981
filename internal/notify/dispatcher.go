package notify

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/alphaclinic/clinic-manager/internal/models"
)

const (
	maxAttempts    = 3
	backoffBase    = time.Minute
	defaultQueueSz = 200
)

// Outbound couples a rendered message with the records the delivery
// should be attributed to.
type Outbound struct {
	Message Message

	ClientID      uint
	AppointmentID *uint
	SentByID      *uint
}

// Dispatcher consumes a bounded queue of outbound notifications on a
// background worker. Enqueuing never blocks the triggering request;
// delivery failures are retried with exponential backoff and the final
// outcome (success or permanent failure) is recorded as one
// NotificationLog row. A failed delivery is never surfaced back to the
// business operation that triggered it.
type Dispatcher struct {
	db      *gorm.DB
	senders map[string]Sender
	queue   chan Outbound
	log     *logrus.Logger

	sleep func(time.Duration) // test seam
}

func NewDispatcher(db *gorm.DB, senders map[string]Sender, log *logrus.Logger) *Dispatcher {
	d := &Dispatcher{
		db:      db,
		senders: senders,
		queue:   make(chan Outbound, defaultQueueSz),
		log:     log,
		sleep:   time.Sleep,
	}

	go d.worker()
	return d
}

func (d *Dispatcher) Enqueue(out Outbound) {
	select {
	case d.queue <- out:
	default:
		// queue full: record the drop, never block the request
		d.log.WithField("channel", out.Message.Channel).
			Warn("notification queue full, dropping message")
		d.record(out, 0, "", "notification queue full")
	}
}

func (d *Dispatcher) worker() {
	for out := range d.queue {
		d.deliver(out)
	}
}

func (d *Dispatcher) deliver(out Outbound) {
	sender, ok := d.senders[out.Message.Channel]
	if !ok {
		d.record(out, 0, "", "no sender for channel "+out.Message.Channel)
		return
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		externalID, err := sender.Send(context.Background(), out.Message)
		if err == nil {
			d.record(out, attempt, externalID, "")
			return
		}

		lastErr = err
		d.log.WithError(err).
			WithFields(logrus.Fields{
				"channel": out.Message.Channel,
				"attempt": attempt,
			}).
			Warn("notification send failed")

		if attempt < maxAttempts {
			// 1m, 2m, 4m...
			d.sleep(backoffBase * time.Duration(1<<(attempt-1)))
		}
	}

	d.record(out, maxAttempts, "", lastErr.Error())
}

// record writes the immutable delivery-outcome row.
func (d *Dispatcher) record(out Outbound, attempts int, externalID, errMsg string) {
	if d.db == nil {
		return
	}
	status := models.NotificationSent
	var sentAt *time.Time
	if errMsg != "" {
		status = models.NotificationFailed
	} else {
		now := time.Now()
		sentAt = &now
	}

	entry := models.NotificationLog{
		ClientID:      out.ClientID,
		Channel:       out.Message.Channel,
		Subject:       out.Message.Subject,
		Message:       out.Message.Body,
		Status:        status,
		Attempts:      attempts,
		ExternalID:    externalID,
		ErrorMessage:  errMsg,
		AppointmentID: out.AppointmentID,
		SentByID:      out.SentByID,
		SentAt:        sentAt,
	}

	if err := d.db.Create(&entry).Error; err != nil {
		d.log.WithError(err).Error("failed to write notification log")
	}
}
