package models

import "time"

// Bus is owned by its agency for life. School assignment is optional and the
// school must belong to the same agency. DriverID carries a nullable unique
// index: a driver can drive at most one bus, a bus may run without a driver.
type Bus struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	BusNumber string    `json:"bus_number" gorm:"uniqueIndex;size:30;not null"`
	Capacity  int       `json:"capacity" gorm:"not null"`
	AgencyID  uint      `json:"agency_id" gorm:"index;not null"`
	Agency    Agency    `json:"-"`
	SchoolID  *uint     `json:"school_id" gorm:"index"`
	School    *School   `json:"-"`
	DriverID  *uint     `json:"driver_id" gorm:"uniqueIndex"`
	Driver    *Driver   `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
