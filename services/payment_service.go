package services

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/harshalgaikwad03/CDAC-Project-Id-26/models"
)

// Pay is the local payment stub: it records a SUCCESS payment for the
// calling student and activates their pass in the same transaction. No
// gateway is contacted.
func Pay(db *gorm.DB, caller Caller, amount float64) (*models.Payment, error) {
	if amount <= 0 {
		return nil, invalid("amount must be positive")
	}
	student, err := studentByEmail(db, caller.Email)
	if err != nil {
		return nil, err
	}
	payment := &models.Payment{
		StudentID:     student.ID,
		Amount:        amount,
		Status:        "SUCCESS",
		TransactionID: uuid.NewString(),
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(payment).Error; err != nil {
			return err
		}
		return tx.Model(&models.Student{}).
			Where("id = ?", student.ID).
			Update("pass_status", models.PassActive).Error
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

func PaymentHistory(db *gorm.DB, caller Caller, studentID uint) ([]models.Payment, error) {
	if err := CheckStudentAccess(db, caller, studentID); err != nil {
		return nil, err
	}
	var rows []models.Payment
	err := db.Where("student_id = ?", studentID).Order("id ASC").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
