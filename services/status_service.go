package services

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/harshalgaikwad03/CDAC-Project-Id-26/models"
)

const dateLayout = "2006-01-02"

func today() string { return time.Now().Format(dateLayout) }

// TodayDate is today's ledger key, YYYY-MM-DD.
func TodayDate() string { return today() }

// ValidDate reports whether s parses as a ledger date.
func ValidDate(s string) bool {
	_, err := time.Parse(dateLayout, s)
	return err == nil
}

func validPickupStatus(s string) bool {
	switch s {
	case models.PickupPending, models.PickupPicked, models.PickupDropped:
		return true
	}
	return false
}

// UpsertTodayStatus writes the (student, today) ledger row, inserting or
// updating in one statement. The ON CONFLICT target is the composite unique
// index, so two racing writers for the same student and day collapse into a
// single row with the last write's status.
func UpsertTodayStatus(db *gorm.DB, studentID uint, pickupStatus string, writerUserID uint) (*models.StudentStatus, error) {
	if pickupStatus == "" {
		pickupStatus = models.PickupPending
	}
	if !validPickupStatus(pickupStatus) {
		return nil, invalid("pickup_status must be PENDING, PICKED or DROPPED")
	}
	var n int64
	if err := db.Model(&models.Student{}).Where("id = ?", studentID).Count(&n).Error; err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, notFound("Student not found")
	}

	day := today()
	row := models.StudentStatus{
		StudentID:       studentID,
		Date:            day,
		PickupStatus:    pickupStatus,
		UpdatedByUserID: writerUserID,
	}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "student_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"pickup_status", "updated_by_user_id", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return nil, err
	}

	// reload: on conflict the returned struct may carry a stale id
	var saved models.StudentStatus
	if err := db.Where("student_id = ? AND date = ?", studentID, day).First(&saved).Error; err != nil {
		return nil, err
	}
	return &saved, nil
}

// TodayStatus returns (nil, nil) when the student has no row yet today —
// callers render that as PENDING/absent, it is not a failure.
func TodayStatus(db *gorm.DB, studentID uint) (*models.StudentStatus, error) {
	var status models.StudentStatus
	err := db.Where("student_id = ? AND date = ?", studentID, today()).First(&status).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &status, nil
}

func StatusHistory(db *gorm.DB, studentID uint) ([]models.StudentStatus, error) {
	var rows []models.StudentStatus
	err := db.Where("student_id = ?", studentID).Order("date ASC, id ASC").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func GetStatus(db *gorm.DB, id uint) (*models.StudentStatus, error) {
	var status models.StudentStatus
	err := db.First(&status, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("Student status not found")
	}
	if err != nil {
		return nil, err
	}
	return &status, nil
}

func ListStatuses(db *gorm.DB) ([]models.StudentStatus, error) {
	var rows []models.StudentStatus
	if err := db.Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// StatusUpdateInput: administrative partial update of an existing row.
type StatusUpdateInput struct {
	PickupStatus *string `json:"pickup_status"`
}

func UpdateStatus(db *gorm.DB, id uint, in StatusUpdateInput, writerUserID uint) (*models.StudentStatus, error) {
	status, err := GetStatus(db, id)
	if err != nil {
		return nil, err
	}
	if in.PickupStatus != nil {
		if !validPickupStatus(*in.PickupStatus) {
			return nil, invalid("pickup_status must be PENDING, PICKED or DROPPED")
		}
		err := db.Model(status).Updates(map[string]any{
			"pickup_status":      *in.PickupStatus,
			"updated_by_user_id": writerUserID,
		}).Error
		if err != nil {
			return nil, err
		}
	}
	return status, nil
}

func DeleteStatus(db *gorm.DB, id uint) error {
	status, err := GetStatus(db, id)
	if err != nil {
		return err
	}
	return db.Delete(&models.StudentStatus{}, status.ID).Error
}

// CountBySchoolAndDate counts ledger rows for a school on a date, optionally
// filtered by pickup status (empty string = any).
func CountBySchoolAndDate(db *gorm.DB, schoolID uint, date, pickupStatus string) (int64, error) {
	q := db.Model(&models.StudentStatus{}).
		Joins("JOIN students ON students.id = student_statuses.student_id").
		Where("students.school_id = ? AND student_statuses.date = ?", schoolID, date)
	if pickupStatus != "" {
		q = q.Where("student_statuses.pickup_status = ?", pickupStatus)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// CountByBusAndDate is the same projection scoped to one bus's riders.
func CountByBusAndDate(db *gorm.DB, busID uint, date, pickupStatus string) (int64, error) {
	q := db.Model(&models.StudentStatus{}).
		Joins("JOIN students ON students.id = student_statuses.student_id").
		Where("students.assigned_bus_id = ? AND student_statuses.date = ?", busID, date)
	if pickupStatus != "" {
		q = q.Where("student_statuses.pickup_status = ?", pickupStatus)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
