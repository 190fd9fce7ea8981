package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/alphaclinic/clinic-manager/internal/config"
	"github.com/alphaclinic/clinic-manager/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.User{},
		&models.StaffProfile{},
		&models.DayOff{},
		&models.Client{},
		&models.ServiceCategory{},
		&models.Service{},
		&models.Package{},
		&models.PackageItem{},
		&models.ClientPackage{},
		&models.ClientPackageItem{},
		&models.Room{},
		&models.Machine{},
		&models.Appointment{},
		&models.Visit{},
		&models.NotificationTemplate{},
		&models.NotificationLog{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	return db
}
