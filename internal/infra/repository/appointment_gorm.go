package repository

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/alphaclinic/clinic-manager/internal/domain/appointment"
	"github.com/alphaclinic/clinic-manager/internal/httperr"
	"github.com/alphaclinic/clinic-manager/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Lookup
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Preload("Staff").
		First(&ap, id).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).First(&svc, id).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *AppointmentGormRepository) GetClient(
	ctx context.Context,
	id uint,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).First(&client, id).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

// --------------------------------------------------
// Booking
// --------------------------------------------------

// CreateAppointment runs the conflict check and the insert in one
// transaction. Overlapping rows are fetched with a plain row lock
// rather than a locked aggregate (Postgres rejects FOR UPDATE on
// aggregate selects), and the lock is held until the insert commits.
func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var conflicts []models.Appointment
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"(staff_id = ? OR room_id = ?) AND status <> ? AND start < ? AND \"end\" > ?",
				ap.StaffID,
				ap.RoomID,
				string(domain.StatusCancelled),
				ap.End,
				ap.Start,
			).
			Limit(1).
			Find(&conflicts).Error; err != nil {
			return err
		}

		if len(conflicts) > 0 {
			return httperr.ErrBusiness("time_conflict")
		}

		return tx.Create(ap).Error
	})
}

// --------------------------------------------------
// Status change (+ visit materialization)
// --------------------------------------------------

// UpdateStatus persists the appointment's status. On a transition into
// completed it creates the visit inside the same transaction: the
// appointment row is locked for the duration and the unique index on
// visits.appointment_id absorbs any concurrent duplicate insert.
func (r *AppointmentGormRepository) UpdateStatus(
	ctx context.Context,
	ap *models.Appointment,
	materializeVisit bool,
) (*models.Visit, error) {

	var created *models.Visit

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var locked models.Appointment
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&locked, ap.ID).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Appointment{}).
			Where("id = ?", ap.ID).
			Update("status", ap.Status).Error; err != nil {
			return err
		}

		if !materializeVisit {
			return nil
		}

		var existing models.Visit
		err := tx.Where("appointment_id = ?", ap.ID).First(&existing).Error
		if err == nil {
			return nil // already materialized
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		charge := decimal.Zero
		if ap.PriceOverride != nil {
			charge = *ap.PriceOverride
		}

		v := models.Visit{
			AppointmentID: ap.ID,
			StaffID:       ap.StaffID,
			MachineID:     ap.MachineID,
			ChargeAmount:  charge,
			PaidAmount:    decimal.Zero,
		}

		if err := tx.Create(&v).Error; err != nil {
			if httperr.IsUniqueViolation(err) {
				// lost the race; the other transaction created it
				return nil
			}
			return err
		}

		created = &v
		return nil
	})

	if err != nil {
		return nil, err
	}
	return created, nil
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *AppointmentGormRepository) ListForPeriod(
	ctx context.Context,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Preload("Staff").
		Preload("Room").
		Where("start >= ? AND start < ?", start, end).
		Order("start ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

func (r *AppointmentGormRepository) ListBookedForDay(
	ctx context.Context,
	dayStart time.Time,
	dayEnd time.Time,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Preload("Staff").
		Where(
			"status = ? AND start >= ? AND start < ?",
			string(domain.StatusBooked), dayStart, dayEnd,
		).
		Order("start ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
