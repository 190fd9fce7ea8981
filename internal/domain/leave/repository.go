package leave

import (
	"context"

	"github.com/alphaclinic/clinic-manager/internal/models"
)

type Repository interface {
	// -------- Day-off rows --------
	GetDayOff(ctx context.Context, id uint) (*models.DayOff, error)

	CreateDayOff(ctx context.Context, d *models.DayOff) error

	UpdateDayOff(ctx context.Context, d *models.DayOff) error

	DeleteDayOff(ctx context.Context, id uint) error

	ListDayOffs(ctx context.Context, staffID uint, status string) ([]models.DayOff, error)

	// -------- Ledger inputs --------

	// ListApproved returns the staff member's approved requests,
	// used for overlap validation.
	ListApproved(ctx context.Context, staffID uint) ([]models.DayOff, error)

	// ListApprovedForYear returns approved requests of the given
	// categories whose start date falls within [Jan 1, Dec 31] of year.
	ListApprovedForYear(ctx context.Context, staffID uint, year int, categories []string) ([]models.DayOff, error)

	// -------- Staff profile --------
	GetStaffProfile(ctx context.Context, staffID uint) (*models.StaffProfile, error)
}
