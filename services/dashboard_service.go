package services

import (
	"math"

	"gorm.io/gorm"

	"github.com/harshalgaikwad03/CDAC-Project-Id-26/models"
)

type AgencySummary struct {
	TotalBuses    int64 `json:"total_buses"`
	TotalDrivers  int64 `json:"total_drivers"`
	TotalStudents int64 `json:"total_students"`
	TotalSchools  int64 `json:"total_schools"`
}

type SchoolSummary struct {
	TotalStudents        int64   `json:"total_students"`
	AssignedBuses        int64   `json:"assigned_buses"`
	PresentToday         int64   `json:"present_today"`
	AttendancePercentage float64 `json:"today_attendance_percentage"`
}

type DriverSummary struct {
	BusNumber     string `json:"bus_number"`
	TotalStudents int64  `json:"total_students"`
	PickedCount   int64  `json:"picked_count"`
	DroppedCount  int64  `json:"dropped_count"`
}

type HelperSummary struct {
	BusNumber        string `json:"bus_number"`
	StudentsAssigned int64  `json:"students_assigned"`
	PickedCount      int64  `json:"picked_count"`
	DroppedCount     int64  `json:"dropped_count"`
	PendingCount     int64  `json:"pending_count"`
}

const noBus = "Not Assigned"

// AgencyDashboard counts the caller's buses, drivers, schools and the
// students enrolled at those schools.
func AgencyDashboard(db *gorm.DB, caller Caller) (*AgencySummary, error) {
	agency, err := agencyByEmail(db, caller.Email)
	if err != nil {
		return nil, err
	}
	var s AgencySummary
	if err := db.Model(&models.Bus{}).Where("agency_id = ?", agency.ID).Count(&s.TotalBuses).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Driver{}).Where("agency_id = ?", agency.ID).Count(&s.TotalDrivers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.School{}).Where("agency_id = ?", agency.ID).Count(&s.TotalSchools).Error; err != nil {
		return nil, err
	}
	err = db.Model(&models.Student{}).
		Joins("JOIN schools ON schools.id = students.school_id").
		Where("schools.agency_id = ?", agency.ID).
		Count(&s.TotalStudents).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// SchoolDashboard reports today's attendance. A student counts as present
// once a PICKED or DROPPED row exists for them today; the percentage is 0
// for a school with no students.
func SchoolDashboard(db *gorm.DB, caller Caller) (*SchoolSummary, error) {
	school, err := schoolByEmail(db, caller.Email)
	if err != nil {
		return nil, err
	}
	var s SchoolSummary
	if err := db.Model(&models.Student{}).Where("school_id = ?", school.ID).Count(&s.TotalStudents).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Bus{}).Where("school_id = ?", school.ID).Count(&s.AssignedBuses).Error; err != nil {
		return nil, err
	}
	day := today()
	picked, err := CountBySchoolAndDate(db, school.ID, day, models.PickupPicked)
	if err != nil {
		return nil, err
	}
	dropped, err := CountBySchoolAndDate(db, school.ID, day, models.PickupDropped)
	if err != nil {
		return nil, err
	}
	s.PresentToday = picked + dropped
	if s.TotalStudents > 0 {
		pct := float64(s.PresentToday) * 100.0 / float64(s.TotalStudents)
		s.AttendancePercentage = math.Round(pct*10) / 10
	}
	return &s, nil
}

func DriverDashboard(db *gorm.DB, caller Caller) (*DriverSummary, error) {
	driver, err := driverByEmail(db, caller.Email)
	if err != nil {
		return nil, err
	}
	bus, err := BusByDriver(db, driver.ID)
	if err != nil {
		return nil, err
	}
	s := &DriverSummary{BusNumber: noBus}
	if bus == nil {
		return s, nil
	}
	s.BusNumber = bus.BusNumber
	if err := db.Model(&models.Student{}).Where("assigned_bus_id = ?", bus.ID).Count(&s.TotalStudents).Error; err != nil {
		return nil, err
	}
	day := today()
	if s.PickedCount, err = CountByBusAndDate(db, bus.ID, day, models.PickupPicked); err != nil {
		return nil, err
	}
	if s.DroppedCount, err = CountByBusAndDate(db, bus.ID, day, models.PickupDropped); err != nil {
		return nil, err
	}
	return s, nil
}

func HelperDashboard(db *gorm.DB, caller Caller) (*HelperSummary, error) {
	helper, err := helperByEmail(db, caller.Email)
	if err != nil {
		return nil, err
	}
	s := &HelperSummary{BusNumber: noBus}
	if helper.AssignedBusID == nil {
		return s, nil
	}
	bus, err := findBus(db, *helper.AssignedBusID)
	if err != nil {
		return nil, err
	}
	s.BusNumber = bus.BusNumber
	if err := db.Model(&models.Student{}).Where("assigned_bus_id = ?", bus.ID).Count(&s.StudentsAssigned).Error; err != nil {
		return nil, err
	}
	day := today()
	if s.PickedCount, err = CountByBusAndDate(db, bus.ID, day, models.PickupPicked); err != nil {
		return nil, err
	}
	if s.DroppedCount, err = CountByBusAndDate(db, bus.ID, day, models.PickupDropped); err != nil {
		return nil, err
	}
	s.PendingCount = s.StudentsAssigned - s.PickedCount - s.DroppedCount
	if s.PendingCount < 0 {
		s.PendingCount = 0
	}
	return s, nil
}
