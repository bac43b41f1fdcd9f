package models

import "time"

// Role values carried in the users table and in JWT claims.
const (
	RoleAgency  = "AGENCY"
	RoleSchool  = "SCHOOL"
	RoleDriver  = "DRIVER"
	RoleHelper  = "HELPER"
	RoleStudent = "STUDENT"
)

// User holds the credentials and contact fields shared by every principal.
// Each role table (agencies, schools, drivers, bus_helpers, students)
// references exactly one users row.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:100;not null"`
	Phone     string    `json:"phone" gorm:"size:15;not null"`
	Email     string    `json:"email" gorm:"uniqueIndex;size:120;not null"`
	Password  string    `json:"-" gorm:"not null"` // bcrypt hash
	Role      string    `json:"role" gorm:"size:20;not null"`
	Active    bool      `json:"active" gorm:"default:true;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
