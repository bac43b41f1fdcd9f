package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/harshalgaikwad03/CDAC-Project-Id-26/models"
)

// HelperUpdateInput: nil fields are left untouched; assigned_bus_id = 0
// clears the bus assignment.
type HelperUpdateInput struct {
	Name          *string `json:"name"`
	Phone         *string `json:"phone"`
	AssignedBusID *uint   `json:"assigned_bus_id"`
}

func findHelper(db *gorm.DB, id uint) (*models.BusHelper, error) {
	var helper models.BusHelper
	err := db.Joins("User").First(&helper, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("Bus helper not found")
	}
	if err != nil {
		return nil, err
	}
	return &helper, nil
}

func GetHelper(db *gorm.DB, id uint) (*models.BusHelper, error) {
	return findHelper(db, id)
}

func ListHelpers(db *gorm.DB) ([]models.BusHelper, error) {
	var helpers []models.BusHelper
	if err := db.Joins("User").Order("bus_helpers.id ASC").Find(&helpers).Error; err != nil {
		return nil, err
	}
	return helpers, nil
}

func HelpersBySchool(db *gorm.DB, schoolID uint) ([]models.BusHelper, error) {
	var helpers []models.BusHelper
	err := db.Joins("User").Where("bus_helpers.school_id = ?", schoolID).Order("bus_helpers.id ASC").Find(&helpers).Error
	if err != nil {
		return nil, err
	}
	return helpers, nil
}

func HelpersByBus(db *gorm.DB, busID uint) ([]models.BusHelper, error) {
	var helpers []models.BusHelper
	err := db.Joins("User").Where("bus_helpers.assigned_bus_id = ?", busID).Order("bus_helpers.id ASC").Find(&helpers).Error
	if err != nil {
		return nil, err
	}
	return helpers, nil
}

func UpdateHelper(db *gorm.DB, id uint, in HelperUpdateInput) (*models.BusHelper, error) {
	helper, err := findHelper(db, id)
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
	helperUpdates := map[string]any{}
	if in.AssignedBusID != nil {
		if *in.AssignedBusID == 0 {
			helperUpdates["assigned_bus_id"] = nil
		} else {
			// only a managed bus row may be assigned
			bus, err := findBus(db, *in.AssignedBusID)
			if err != nil {
				return nil, err
			}
			helperUpdates["assigned_bus_id"] = bus.ID
		}
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		if len(userUpdates) > 0 {
			if err := tx.Model(&models.User{}).Where("id = ?", helper.UserID).Updates(userUpdates).Error; err != nil {
				return err
			}
		}
		if len(helperUpdates) > 0 {
			if err := tx.Model(&models.BusHelper{}).Where("id = ?", helper.ID).Updates(helperUpdates).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return findHelper(db, id)
}

func DeleteHelper(db *gorm.DB, id uint) error {
	helper, err := findHelper(db, id)
	if err != nil {
		return err
	}
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.BusHelper{}, helper.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, helper.UserID).Error
	})
}

// StudentsByHelperEmail lists the students riding the caller's assigned bus.
// A helper with no bus sees an empty list, not an error.
func StudentsByHelperEmail(db *gorm.DB, email string) ([]models.Student, error) {
	helper, err := helperByEmail(db, email)
	if err != nil {
		return nil, err
	}
	if helper.AssignedBusID == nil {
		return []models.Student{}, nil
	}
	return StudentsByBus(db, *helper.AssignedBusID)
}
