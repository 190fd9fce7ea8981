package notify

import (
	"strings"
	"testing"
	"time"

	"github.com/alphaclinic/clinic-manager/internal/models"
)

func sampleAppointment() *models.Appointment {
	return &models.Appointment{
		Client: models.Client{
			FullName: "Μαρία Παπαδοπούλου",
			Phone:    "+306912345678",
			Email:    "maria@example.com",
		},
		Service: models.Service{Name: "Laser Full Legs"},
		Start:   time.Date(2025, 3, 20, 14, 30, 0, 0, time.UTC),
	}
}

func TestRenderVariables(t *testing.T) {
	ap := sampleAppointment()

	cases := []struct {
		template string
		expected string
	}{
		{"Hi {client_name}", "Hi Μαρία Παπαδοπούλου"},
		{"{date} {time}", "20/03/2025 14:30"},
		{"{service} with {staff}", "Laser Full Legs with Ελένη"},
		{"{phone} / {email}", "+306912345678 / maria@example.com"},
		{"no variables here", "no variables here"},
		{"", ""},
	}

	for _, c := range cases {
		if got := RenderVariables(c.template, ap, "Ελένη"); got != c.expected {
			t.Fatalf("RenderVariables(%q): expected %q, got %q", c.template, c.expected, got)
		}
	}
}

func TestBookedSMSContainsAppointmentData(t *testing.T) {
	ap := sampleAppointment()
	body := BookedSMS(ap, "Ελένη")

	for _, want := range []string{"Μαρία Παπαδοπούλου", "20/03/2025", "14:30", "Laser Full Legs", "Ελένη"} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected SMS to contain %q, got %q", want, body)
		}
	}
}

func TestBookedEmailSubjectAndBody(t *testing.T) {
	ap := sampleAppointment()
	subject, body := BookedEmail(ap, "Ελένη")

	if !strings.Contains(subject, "20/03/2025") || !strings.Contains(subject, "14:30") {
		t.Fatalf("expected subject with date and time, got %q", subject)
	}
	if !strings.Contains(body, "Laser Full Legs") || !strings.Contains(body, "Ελένη") {
		t.Fatalf("expected body with service and staff, got %q", body)
	}
}

func TestReminderMessages(t *testing.T) {
	ap := sampleAppointment()

	sms := ReminderSMS(ap, "Ελένη")
	if !strings.Contains(sms, "Μαρία Παπαδοπούλου") || !strings.Contains(sms, "14:30") {
		t.Fatalf("unexpected reminder SMS: %q", sms)
	}

	subject, body := ReminderEmail(ap, "Ελένη")
	if !strings.Contains(subject, "20/03/2025") {
		t.Fatalf("unexpected reminder subject: %q", subject)
	}
	if !strings.Contains(body, "Laser Full Legs") {
		t.Fatalf("unexpected reminder body: %q", body)
	}
}

func TestStaffDisplayNameFallback(t *testing.T) {
	var p *models.StaffProfile
	if got := p.DisplayName(); got != models.FallbackStaffName {
		t.Fatalf("expected fallback for nil profile, got %q", got)
	}

	p = &models.StaffProfile{}
	if got := p.DisplayName(); got != models.FallbackStaffName {
		t.Fatalf("expected fallback for empty name, got %q", got)
	}

	p.User.Name = "  Ελένη  "
	if got := p.DisplayName(); got != "Ελένη" {
		t.Fatalf("expected trimmed name, got %q", got)
	}
}
