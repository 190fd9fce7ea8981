package visit

import (
	"context"

	"github.com/alphaclinic/clinic-manager/internal/models"
)

type Repository interface {
	GetVisit(ctx context.Context, id uint) (*models.Visit, error)

	// CreateVisit persists a new visit. When a client package item is
	// linked, one session is redeemed from it inside the same
	// transaction; the whole creation fails when no sessions remain.
	// Redemption happens only here, never on later saves.
	CreateVisit(ctx context.Context, v *models.Visit) error

	UpdateVisit(ctx context.Context, v *models.Visit) error

	DeleteVisit(ctx context.Context, id uint) error

	// ListRecent returns the most recently created visits with their
	// appointment, client and service preloaded, newest first.
	ListRecent(ctx context.Context, limit int) ([]models.Visit, error)

	ListAll(ctx context.Context) ([]models.Visit, error)

	GetClientPackageItem(ctx context.Context, id uint) (*models.ClientPackageItem, error)

	GetAppointment(ctx context.Context, id uint) (*models.Appointment, error)
}
