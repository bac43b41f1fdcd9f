package services

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/harshalgaikwad03/CDAC-Project-Id-26/models"
)

// DriverUpdateInput: nil fields are left untouched. The driver's agency is
// immutable after signup.
type DriverUpdateInput struct {
	Name          *string `json:"name"`
	Phone         *string `json:"phone"`
	LicenseNumber *string `json:"license_number"`
	Password      *string `json:"password"`
}

func findDriver(db *gorm.DB, id uint) (*models.Driver, error) {
	var driver models.Driver
	err := db.Joins("User").First(&driver, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("Driver not found")
	}
	if err != nil {
		return nil, err
	}
	return &driver, nil
}

func GetDriver(db *gorm.DB, id uint) (*models.Driver, error) {
	return findDriver(db, id)
}

func ListDrivers(db *gorm.DB) ([]models.Driver, error) {
	var drivers []models.Driver
	if err := db.Joins("User").Order("drivers.id ASC").Find(&drivers).Error; err != nil {
		return nil, err
	}
	return drivers, nil
}

func DriversByAgency(db *gorm.DB, agencyID uint) ([]models.Driver, error) {
	var drivers []models.Driver
	err := db.Joins("User").Where("drivers.agency_id = ?", agencyID).Order("drivers.id ASC").Find(&drivers).Error
	if err != nil {
		return nil, err
	}
	return drivers, nil
}

// UnassignedDriversByAgency is the set difference: the agency's drivers
// minus every driver currently held by a bus.
func UnassignedDriversByAgency(db *gorm.DB, agencyID uint) ([]models.Driver, error) {
	sub := db.Model(&models.Bus{}).Select("driver_id").Where("driver_id IS NOT NULL")
	var drivers []models.Driver
	err := db.Joins("User").
		Where("drivers.agency_id = ?", agencyID).
		Where("drivers.id NOT IN (?)", sub).
		Order("drivers.id ASC").
		Find(&drivers).Error
	if err != nil {
		return nil, err
	}
	return drivers, nil
}

func UpdateDriver(db *gorm.DB, id uint, in DriverUpdateInput) (*models.Driver, error) {
	driver, err := findDriver(db, id)
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
	return driver, db.Transaction(func(tx *gorm.DB) error {
		if len(userUpdates) > 0 {
			if err := tx.Model(&models.User{}).Where("id = ?", driver.UserID).Updates(userUpdates).Error; err != nil {
				return err
			}
		}
		if in.LicenseNumber != nil {
			err := tx.Model(&models.Driver{}).Where("id = ?", driver.ID).
				Update("license_number", strings.TrimSpace(*in.LicenseNumber)).Error
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return conflict("License number already registered")
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteDriver refuses while a bus still references the driver: the bus must
// be unassigned first.
func DeleteDriver(db *gorm.DB, id uint) error {
	driver, err := findDriver(db, id)
	if err != nil {
		return err
	}
	var n int64
	if err := db.Model(&models.Bus{}).Where("driver_id = ?", driver.ID).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return conflict("Driver is still assigned to a bus")
	}
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Driver{}, driver.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, driver.UserID).Error
	})
}
