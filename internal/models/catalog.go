package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type ServiceCategory struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:80;not null" json:"name"`
}

type Service struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CategoryID uint            `gorm:"index;not null" json:"category_id"`
	Category   ServiceCategory `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"category"`

	Name         string          `gorm:"size:120;not null" json:"name"`
	Gender       string          `gorm:"size:10;default:'any'" json:"gender"`
	DefaultPrice decimal.Decimal `gorm:"type:decimal(8,2)" json:"default_price"`
	DurationMin  int             `gorm:"default:30" json:"duration_min"`
	Notes        string          `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Package struct {
	ID    uint            `gorm:"primaryKey" json:"id"`
	Name  string          `gorm:"size:120;not null" json:"name"`
	Price decimal.Decimal `gorm:"type:decimal(8,2)" json:"price"`
	Notes string          `gorm:"type:text" json:"notes"`

	Items []PackageItem `json:"items"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PackageItem struct {
	ID uint `gorm:"primaryKey" json:"id"`

	PackageID uint    `gorm:"index;not null" json:"package_id"`
	ServiceID uint    `gorm:"not null" json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"service"`

	Sessions int `gorm:"default:1" json:"sessions"`
}

type ClientPackage struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClientID  uint    `gorm:"index;not null" json:"client_id"`
	Client    Client  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"client"`
	PackageID uint    `gorm:"not null" json:"package_id"`
	Package   Package `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"package"`

	PricePaid   decimal.Decimal `gorm:"type:decimal(8,2)" json:"price_paid"`
	Notes       string          `gorm:"type:text" json:"notes"`
	Active      bool            `gorm:"default:true" json:"active"`
	PurchasedAt time.Time       `gorm:"autoCreateTime" json:"purchased_at"`

	Items []ClientPackageItem `json:"items"`
}

// ClientPackageItem is a purchased service credit. RemainingSessions is
// decremented by one per qualifying visit, never below zero.
type ClientPackageItem struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClientPackageID uint        `gorm:"index;not null" json:"client_package_id"`
	PackageItemID   uint        `gorm:"not null" json:"package_item_id"`
	PackageItem     PackageItem `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"package_item"`

	RemainingSessions int `gorm:"default:0" json:"remaining_sessions"`
}
