package models

import "time"

// BusHelper belongs to one school. AssignedBusID has no uniqueness
// constraint: several helpers may serve the same bus.
type BusHelper struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	UserID        uint      `json:"-" gorm:"uniqueIndex;not null"`
	User          User      `json:"user" gorm:"constraint:OnDelete:CASCADE"`
	SchoolID      uint      `json:"school_id" gorm:"index;not null"`
	School        School    `json:"-"`
	AssignedBusID *uint     `json:"assigned_bus_id" gorm:"index"`
	AssignedBus   *Bus      `json:"-"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
