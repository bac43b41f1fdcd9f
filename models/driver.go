package models

import "time"

type Driver struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	UserID        uint      `json:"-" gorm:"uniqueIndex;not null"`
	User          User      `json:"user" gorm:"constraint:OnDelete:CASCADE"`
	LicenseNumber string    `json:"license_number" gorm:"uniqueIndex;size:30;not null"`
	AgencyID      uint      `json:"agency_id" gorm:"index;not null"`
	Agency        Agency    `json:"-"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
