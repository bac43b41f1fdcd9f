package models

import "time"

// Pickup states for one student on one day.
const (
	PickupPending = "PENDING"
	PickupPicked  = "PICKED"
	PickupDropped = "DROPPED"
)

// StudentStatus is the daily ledger row: at most one per (student, date),
// enforced by the composite unique index so racing writers cannot insert
// duplicates. Date is a YYYY-MM-DD string in the server's timezone.
type StudentStatus struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	StudentID       uint      `json:"student_id" gorm:"not null;uniqueIndex:uniq_student_day"`
	Student         Student   `json:"-"`
	Date            string    `json:"date" gorm:"size:10;not null;uniqueIndex:uniq_student_day"`
	PickupStatus    string    `json:"pickup_status" gorm:"size:20;default:PENDING;not null"`
	UpdatedByUserID uint      `json:"updated_by" gorm:"not null"` // helper or driver user id
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
