package appointment

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/alphaclinic/clinic-manager/internal/audit"
	domain "github.com/alphaclinic/clinic-manager/internal/domain/appointment"
	"github.com/alphaclinic/clinic-manager/internal/httperr"
	"github.com/alphaclinic/clinic-manager/internal/models"
	"github.com/alphaclinic/clinic-manager/internal/notify"
	"github.com/alphaclinic/clinic-manager/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type BookAppointmentInput struct {
	ClientID  uint
	ServiceID uint
	StaffID   uint
	RoomID    uint
	MachineID *uint

	Date string // 2006-01-02
	Time string // 15:04

	Notes         string
	PriceOverride *decimal.Decimal
	CreatedByID   uint
}

// ======================================================
// USE CASE
// ======================================================

type BookAppointment struct {
	repo     domain.Repository
	notifier *notify.Service
	audit    *audit.Dispatcher
	tz       string
}

func NewBookAppointment(
	repo domain.Repository,
	notifier *notify.Service,
	audit *audit.Dispatcher,
	tz string,
) *BookAppointment {
	return &BookAppointment{
		repo:     repo,
		notifier: notifier,
		audit:    audit,
		tz:       tz,
	}
}

func (uc *BookAppointment) Execute(
	ctx context.Context,
	in BookAppointmentInput,
) (*models.Appointment, error) {

	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		timezone.Location(uc.tz),
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	svc, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	client, err := uc.repo.GetClient(ctx, in.ClientID)
	if err != nil {
		return nil, httperr.ErrBusiness("client_not_found")
	}

	end := start.Add(time.Duration(svc.DurationMin) * time.Minute)

	ap := &models.Appointment{
		ClientID:      in.ClientID,
		ServiceID:     in.ServiceID,
		StaffID:       in.StaffID,
		RoomID:        in.RoomID,
		MachineID:     in.MachineID,
		Start:         start,
		End:           end,
		Status:        string(domain.InitialStatus()),
		Notes:         in.Notes,
		PriceOverride: in.PriceOverride,
		CreatedByID:   &in.CreatedByID,
	}

	// The repository checks staff and room availability inside the same
	// transaction as the insert, so a conflict surfaces here as a
	// "time_conflict" business error.
	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.CreatedByID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	// Confirmation is best-effort: delivery failure never unwinds the
	// booking.
	ap.Client = *client
	ap.Service = *svc
	uc.notifier.SendBookedConfirmation(ap, &in.CreatedByID)

	return ap, nil
}
