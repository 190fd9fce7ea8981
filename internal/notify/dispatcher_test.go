package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/alphaclinic/clinic-manager/internal/models"
)

// ======================================================
// FAKE SENDER
// ======================================================

type fakeSender struct {
	failures int // fail this many sends before succeeding
	attempts int
}

func (s *fakeSender) Send(ctx context.Context, msg Message) (string, error) {
	s.attempts++
	if s.attempts <= s.failures {
		return "", errors.New("provider unavailable")
	}
	return "ext-123", nil
}

func testDispatcher(senders map[string]Sender) (*Dispatcher, *[]time.Duration) {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	var sleeps []time.Duration
	d := &Dispatcher{
		senders: senders,
		log:     log,
		sleep:   func(t time.Duration) { sleeps = append(sleeps, t) },
	}
	return d, &sleeps
}

// ======================================================
// TESTS
// ======================================================

func TestDeliverSucceedsFirstAttempt(t *testing.T) {
	sender := &fakeSender{}
	d, sleeps := testDispatcher(map[string]Sender{models.ChannelSMS: sender})

	d.deliver(Outbound{Message: Message{Channel: models.ChannelSMS, Recipient: "+3069", Body: "hi"}})

	if sender.attempts != 1 {
		t.Fatalf("expected 1 attempt, got %d", sender.attempts)
	}
	if len(*sleeps) != 0 {
		t.Fatalf("expected no backoff, got %v", *sleeps)
	}
}

func TestDeliverRetriesWithExponentialBackoff(t *testing.T) {
	sender := &fakeSender{failures: 2}
	d, sleeps := testDispatcher(map[string]Sender{models.ChannelSMS: sender})

	d.deliver(Outbound{Message: Message{Channel: models.ChannelSMS, Recipient: "+3069", Body: "hi"}})

	if sender.attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", sender.attempts)
	}
	expected := []time.Duration{time.Minute, 2 * time.Minute}
	if len(*sleeps) != len(expected) {
		t.Fatalf("expected backoffs %v, got %v", expected, *sleeps)
	}
	for i := range expected {
		if (*sleeps)[i] != expected[i] {
			t.Fatalf("expected backoffs %v, got %v", expected, *sleeps)
		}
	}
}

func TestDeliverGivesUpAfterMaxAttempts(t *testing.T) {
	sender := &fakeSender{failures: 10}
	d, sleeps := testDispatcher(map[string]Sender{models.ChannelEmail: sender})

	d.deliver(Outbound{Message: Message{Channel: models.ChannelEmail, Recipient: "a@b.gr", Body: "hi"}})

	if sender.attempts != maxAttempts {
		t.Fatalf("expected %d attempts, got %d", maxAttempts, sender.attempts)
	}
	// No sleep after the final failed attempt.
	if len(*sleeps) != maxAttempts-1 {
		t.Fatalf("expected %d backoffs, got %d", maxAttempts-1, len(*sleeps))
	}
}

func TestDeliverUnknownChannel(t *testing.T) {
	sender := &fakeSender{}
	d, _ := testDispatcher(map[string]Sender{models.ChannelSMS: sender})

	d.deliver(Outbound{Message: Message{Channel: "pigeon", Recipient: "roof", Body: "hi"}})

	if sender.attempts != 0 {
		t.Fatal("no sender may be invoked for an unknown channel")
	}
}
