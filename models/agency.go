package models

import "time"

type Agency struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"-" gorm:"uniqueIndex;not null"`
	User      User      `json:"user" gorm:"constraint:OnDelete:CASCADE"`
	Address   string    `json:"address" gorm:"size:255;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
