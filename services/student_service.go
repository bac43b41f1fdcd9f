package services

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/harshalgaikwad03/CDAC-Project-Id-26/models"
)

// StudentUpdateInput: nil fields are left untouched; assigned_bus_id = 0
// clears the bus assignment. PassStatus is deliberately absent — the pass
// changes only through activation.
type StudentUpdateInput struct {
	Name          *string `json:"name"`
	Phone         *string `json:"phone"`
	ClassName     *string `json:"class_name"`
	RollNo        *string `json:"roll_no"`
	Address       *string `json:"address"`
	Password      *string `json:"password"`
	SchoolID      *uint   `json:"school_id"`
	AssignedBusID *uint   `json:"assigned_bus_id"`
}

func findStudent(db *gorm.DB, id uint) (*models.Student, error) {
	var student models.Student
	err := db.Joins("User").First(&student, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("Student not found")
	}
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func GetStudent(db *gorm.DB, id uint) (*models.Student, error) {
	return findStudent(db, id)
}

func ListStudents(db *gorm.DB) ([]models.Student, error) {
	var students []models.Student
	if err := db.Joins("User").Order("students.id ASC").Find(&students).Error; err != nil {
		return nil, err
	}
	return students, nil
}

func StudentsBySchool(db *gorm.DB, schoolID uint) ([]models.Student, error) {
	var students []models.Student
	err := db.Joins("User").Where("students.school_id = ?", schoolID).Order("students.id ASC").Find(&students).Error
	if err != nil {
		return nil, err
	}
	return students, nil
}

func StudentsByBus(db *gorm.DB, busID uint) ([]models.Student, error) {
	var students []models.Student
	err := db.Joins("User").Where("students.assigned_bus_id = ?", busID).Order("students.id ASC").Find(&students).Error
	if err != nil {
		return nil, err
	}
	return students, nil
}

func UpdateStudent(db *gorm.DB, id uint, in StudentUpdateInput) (*models.Student, error) {
	student, err := findStudent(db, id)
	if err != nil {
		return nil, err
	}
	userUpdates := map[string]any{}
	if in.Name != nil {
		userUpdates["name"] = strings.TrimSpace(*in.Name)
	}
	if in.Phone != nil {
		userUpdates["phone"] = strings.TrimSpace(*in.Phone)
	}
	if in.Password != nil && strings.TrimSpace(*in.Password) != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		userUpdates["password"] = string(hash)
	}
	studentUpdates := map[string]any{}
	if in.ClassName != nil {
		studentUpdates["class_name"] = strings.TrimSpace(*in.ClassName)
	}
	if in.RollNo != nil {
		studentUpdates["roll_no"] = strings.TrimSpace(*in.RollNo)
	}
	if in.Address != nil {
		studentUpdates["address"] = strings.TrimSpace(*in.Address)
	}
	if in.SchoolID != nil {
		var school models.School
		if err := db.First(&school, *in.SchoolID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, notFound("School not found")
			}
			return nil, err
		}
		studentUpdates["school_id"] = school.ID
	}
	if in.AssignedBusID != nil {
		if *in.AssignedBusID == 0 {
			studentUpdates["assigned_bus_id"] = nil
		} else {
			bus, err := findBus(db, *in.AssignedBusID)
			if err != nil {
				return nil, err
			}
			studentUpdates["assigned_bus_id"] = bus.ID
		}
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		if len(userUpdates) > 0 {
			if err := tx.Model(&models.User{}).Where("id = ?", student.UserID).Updates(userUpdates).Error; err != nil {
				return err
			}
		}
		if len(studentUpdates) > 0 {
			if err := tx.Model(&models.Student{}).Where("id = ?", student.ID).Updates(studentUpdates).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return findStudent(db, id)
}

func DeleteStudent(db *gorm.DB, id uint) error {
	student, err := findStudent(db, id)
	if err != nil {
		return err
	}
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("student_id = ?", student.ID).Delete(&models.StudentStatus{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Student{}, student.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, student.UserID).Error
	})
}

// ActivatePass flips the student's pass to ACTIVE. Called by the payment
// stub or by a school/agency after an out-of-band payment. Idempotent.
func ActivatePass(db *gorm.DB, studentID uint) (*models.Student, error) {
	student, err := findStudent(db, studentID)
	if err != nil {
		return nil, err
	}
	if student.PassStatus != models.PassActive {
		if err := db.Model(&models.Student{}).Where("id = ?", student.ID).
			Update("pass_status", models.PassActive).Error; err != nil {
			return nil, err
		}
		student.PassStatus = models.PassActive
	}
	return student, nil
}
