package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/alphaclinic/clinic-manager/internal/domain/visit"
	"github.com/alphaclinic/clinic-manager/internal/httperr"
	"github.com/alphaclinic/clinic-manager/internal/models"
)

type VisitGormRepository struct {
	db *gorm.DB
}

func NewVisitGormRepository(db *gorm.DB) *VisitGormRepository {
	return &VisitGormRepository{db: db}
}

func (r *VisitGormRepository) GetVisit(
	ctx context.Context,
	id uint,
) (*models.Visit, error) {

	var v models.Visit
	if err := r.db.WithContext(ctx).
		Preload("Appointment").
		Preload("Appointment.Client").
		Preload("Appointment.Service").
		Preload("Staff").
		Preload("Machine").
		First(&v, id).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

// CreateVisit persists the visit and, when a package item is linked,
// redeems one session from it in the same transaction. The decrement is
// a guarded UPDATE so the remaining-sessions check cannot race; zero
// rows affected means the line is exhausted and the whole creation
// rolls back.
func (r *VisitGormRepository) CreateVisit(
	ctx context.Context,
	v *models.Visit,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(v).Error; err != nil {
			return err
		}

		if v.ClientPackageItemID == nil {
			return nil
		}

		res := tx.Model(&models.ClientPackageItem{}).
			Where("id = ? AND remaining_sessions > 0", *v.ClientPackageItemID).
			UpdateColumn("remaining_sessions", gorm.Expr("remaining_sessions - 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return httperr.ErrBusiness("no_remaining_sessions")
		}

		return nil
	})
}

// UpdateVisit saves an existing visit. Package sessions are never
// redeemed here; redemption is a creation-only side effect.
func (r *VisitGormRepository) UpdateVisit(
	ctx context.Context,
	v *models.Visit,
) error {
	return r.db.WithContext(ctx).Save(v).Error
}

func (r *VisitGormRepository) DeleteVisit(
	ctx context.Context,
	id uint,
) error {
	return r.db.WithContext(ctx).Delete(&models.Visit{}, id).Error
}

func (r *VisitGormRepository) ListRecent(
	ctx context.Context,
	limit int,
) ([]models.Visit, error) {

	var visits []models.Visit
	if err := r.db.WithContext(ctx).
		Preload("Appointment").
		Preload("Appointment.Client").
		Preload("Appointment.Service").
		Preload("Staff").
		Order("created_at DESC").
		Limit(limit).
		Find(&visits).Error; err != nil {
		return nil, err
	}
	return visits, nil
}

func (r *VisitGormRepository) ListAll(
	ctx context.Context,
) ([]models.Visit, error) {

	var visits []models.Visit
	if err := r.db.WithContext(ctx).
		Preload("Appointment").
		Preload("Appointment.Client").
		Preload("Appointment.Service").
		Preload("Staff").
		Preload("Machine").
		Order("created_at DESC").
		Find(&visits).Error; err != nil {
		return nil, err
	}
	return visits, nil
}

func (r *VisitGormRepository) GetClientPackageItem(
	ctx context.Context,
	id uint,
) (*models.ClientPackageItem, error) {

	var item models.ClientPackageItem
	if err := r.db.WithContext(ctx).
		Preload("PackageItem").
		First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *VisitGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		First(&ap, id).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

// Compile-time check
var _ domain.Repository = (*VisitGormRepository)(nil)
