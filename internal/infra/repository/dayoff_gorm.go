package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "github.com/alphaclinic/clinic-manager/internal/domain/leave"
	"github.com/alphaclinic/clinic-manager/internal/models"
)

type DayOffGormRepository struct {
	db *gorm.DB
}

func NewDayOffGormRepository(db *gorm.DB) *DayOffGormRepository {
	return &DayOffGormRepository{db: db}
}

// --------------------------------------------------
// Day-off rows
// --------------------------------------------------

func (r *DayOffGormRepository) GetDayOff(
	ctx context.Context,
	id uint,
) (*models.DayOff, error) {

	var d models.DayOff
	if err := r.db.WithContext(ctx).
		Preload("Staff").
		First(&d, id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DayOffGormRepository) CreateDayOff(
	ctx context.Context,
	d *models.DayOff,
) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *DayOffGormRepository) UpdateDayOff(
	ctx context.Context,
	d *models.DayOff,
) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *DayOffGormRepository) DeleteDayOff(
	ctx context.Context,
	id uint,
) error {
	return r.db.WithContext(ctx).Delete(&models.DayOff{}, id).Error
}

func (r *DayOffGormRepository) ListDayOffs(
	ctx context.Context,
	staffID uint,
	status string,
) ([]models.DayOff, error) {

	q := r.db.WithContext(ctx).Preload("Staff").Order("start_date DESC")
	if staffID != 0 {
		q = q.Where("staff_id = ?", staffID)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var dayoffs []models.DayOff
	if err := q.Find(&dayoffs).Error; err != nil {
		return nil, err
	}
	return dayoffs, nil
}

// --------------------------------------------------
// Ledger inputs
// --------------------------------------------------

func (r *DayOffGormRepository) ListApproved(
	ctx context.Context,
	staffID uint,
) ([]models.DayOff, error) {

	var dayoffs []models.DayOff
	if err := r.db.WithContext(ctx).
		Where("staff_id = ? AND status = ?", staffID, string(domain.StatusApproved)).
		Find(&dayoffs).Error; err != nil {
		return nil, err
	}
	return dayoffs, nil
}

func (r *DayOffGormRepository) ListApprovedForYear(
	ctx context.Context,
	staffID uint,
	year int,
	categories []string,
) ([]models.DayOff, error) {

	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

	var dayoffs []models.DayOff
	if err := r.db.WithContext(ctx).
		Where(
			"staff_id = ? AND status = ? AND start_date >= ? AND start_date <= ? AND category IN ?",
			staffID, string(domain.StatusApproved), yearStart, yearEnd, categories,
		).
		Find(&dayoffs).Error; err != nil {
		return nil, err
	}
	return dayoffs, nil
}

// --------------------------------------------------
// Staff profile
// --------------------------------------------------

func (r *DayOffGormRepository) GetStaffProfile(
	ctx context.Context,
	staffID uint,
) (*models.StaffProfile, error) {

	var profile models.StaffProfile
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", staffID).
		First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// Compile-time check
var _ domain.Repository = (*DayOffGormRepository)(nil)
