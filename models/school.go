package models

import "time"

// School belongs to at most one agency. AgencyID is nil for a school that
// signed up on its own or was released by its agency.
type School struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"-" gorm:"uniqueIndex;not null"`
	User      User      `json:"user" gorm:"constraint:OnDelete:CASCADE"`
	Address   string    `json:"address" gorm:"size:255;not null"`
	AgencyID  *uint     `json:"agency_id" gorm:"index"`
	Agency    *Agency   `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
