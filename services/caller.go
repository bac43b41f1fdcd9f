package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/harshalgaikwad03/CDAC-Project-Id-26/models"
)

// Caller is the verified identity attached to every request by the auth
// middleware. Services take it explicitly instead of reading ambient state.
type Caller struct {
	UserID uint
	Email  string
	Role   string
}

// agencyByEmail resolves the caller's agency row. Used by every
// agency-scoped mutation: the agency recorded on created resources is always
// the logged-in one, never a client-supplied id.
func agencyByEmail(db *gorm.DB, email string) (*models.Agency, error) {
	var agency models.Agency
	err := db.Joins("User").Where(`"User".email = ?`, email).First(&agency).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, forbidden("Agency not found")
	}
	if err != nil {
		return nil, err
	}
	if !agency.User.Active {
		return nil, forbidden("Agency inactive")
	}
	return &agency, nil
}

func schoolByEmail(db *gorm.DB, email string) (*models.School, error) {
	var school models.School
	err := db.Joins("User").Where(`"User".email = ?`, email).First(&school).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, forbidden("School not found")
	}
	if err != nil {
		return nil, err
	}
	return &school, nil
}

func driverByEmail(db *gorm.DB, email string) (*models.Driver, error) {
	var driver models.Driver
	err := db.Joins("User").Where(`"User".email = ?`, email).First(&driver).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, forbidden("Driver not found")
	}
	if err != nil {
		return nil, err
	}
	return &driver, nil
}

func helperByEmail(db *gorm.DB, email string) (*models.BusHelper, error) {
	var helper models.BusHelper
	err := db.Joins("User").Where(`"User".email = ?`, email).First(&helper).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, forbidden("Bus helper not found")
	}
	if err != nil {
		return nil, err
	}
	return &helper, nil
}

func studentByEmail(db *gorm.DB, email string) (*models.Student, error) {
	var student models.Student
	err := db.Joins("User").Where(`"User".email = ?`, email).First(&student).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, forbidden("Student not found")
	}
	if err != nil {
		return nil, err
	}
	return &student, nil
}
