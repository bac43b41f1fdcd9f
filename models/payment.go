package models

import "time"

// Payment is the local record written by the pass-payment stub. No gateway
// round trip happens here; TransactionID is generated server-side.
type Payment struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	StudentID     uint      `json:"student_id" gorm:"index;not null"`
	Student       Student   `json:"-"`
	Amount        float64   `json:"amount" gorm:"not null"`
	Status        string    `json:"status" gorm:"size:20;not null"` // SUCCESS | FAILED
	TransactionID string    `json:"transaction_id" gorm:"uniqueIndex;size:40;not null"`
	CreatedAt     time.Time `json:"created_at"`
}
