package models

import "time"

// Pass states. A student signs up INACTIVE and becomes ACTIVE only through
// pass activation (payment callback or an explicit school/agency action).
const (
	PassInactive = "INACTIVE"
	PassActive   = "ACTIVE"
)

type Student struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	UserID        uint      `json:"-" gorm:"uniqueIndex;not null"`
	User          User      `json:"user" gorm:"constraint:OnDelete:CASCADE"`
	ClassName     string    `json:"class_name" gorm:"size:30;not null"`
	RollNo        string    `json:"roll_no" gorm:"size:20;not null"`
	Address       string    `json:"address" gorm:"size:255;not null"`
	PassStatus    string    `json:"pass_status" gorm:"size:20;default:INACTIVE;not null"`
	SchoolID      uint      `json:"school_id" gorm:"index;not null"`
	School        School    `json:"-"`
	AssignedBusID *uint     `json:"assigned_bus_id" gorm:"index"`
	AssignedBus   *Bus      `json:"-"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
