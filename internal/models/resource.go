package models

import "time"

type Room struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Name   string `gorm:"size:80;not null" json:"name"`
	Active bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Machine struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Name         string `gorm:"size:80;not null" json:"name"`
	Manufacturer string `gorm:"size:80" json:"manufacturer"`
	SerialNumber string `gorm:"size:80" json:"serial_number"`
	Active       bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
