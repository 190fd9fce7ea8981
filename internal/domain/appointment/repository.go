package appointment

import (
	"context"
	"time"

	"github.com/alphaclinic/clinic-manager/internal/models"
)

type Repository interface {
	// -------- Lookup --------
	GetAppointment(ctx context.Context, id uint) (*models.Appointment, error)

	GetService(ctx context.Context, id uint) (*models.Service, error)

	GetClient(ctx context.Context, id uint) (*models.Client, error)

	// -------- Booking --------

	// CreateAppointment inserts the appointment. The resource-conflict
	// check runs inside the same transaction as the insert: existing
	// non-cancelled appointments of the same staff member or room that
	// overlap [Start, End) are locked and, if any exist, the insert is
	// rejected with a "time_conflict" business error.
	CreateAppointment(ctx context.Context, ap *models.Appointment) error

	// -------- Status change --------

	// UpdateStatus persists the new status. When materializeVisit is
	// set it also creates the visit for the appointment inside the same
	// transaction, guarded by a row lock and the one-to-one unique
	// index, so two concurrent completions never produce two visits.
	// Returns the visit it created, or nil when one already existed.
	UpdateStatus(
		ctx context.Context,
		ap *models.Appointment,
		materializeVisit bool,
	) (*models.Visit, error)

	// -------- Listing --------
	ListForPeriod(ctx context.Context, start, end time.Time) ([]models.Appointment, error)

	ListBookedForDay(ctx context.Context, dayStart, dayEnd time.Time) ([]models.Appointment, error)
}
