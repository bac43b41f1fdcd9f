package services

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/harshalgaikwad03/CDAC-Project-Id-26/models"
)

type AgencyUpdateInput struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
	Password *string `json:"password"`
}

func findAgency(db *gorm.DB, id uint) (*models.Agency, error) {
	var agency models.Agency
	err := db.Joins("User").First(&agency, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("Agency not found")
	}
	if err != nil {
		return nil, err
	}
	return &agency, nil
}

func GetAgency(db *gorm.DB, id uint) (*models.Agency, error) {
	return findAgency(db, id)
}

// AgencyByEmail is the /me lookup.
func AgencyByEmail(db *gorm.DB, email string) (*models.Agency, error) {
	return agencyByEmail(db, email)
}

func SchoolByEmail(db *gorm.DB, email string) (*models.School, error) {
	return schoolByEmail(db, email)
}

func DriverByEmail(db *gorm.DB, email string) (*models.Driver, error) {
	return driverByEmail(db, email)
}

func HelperByEmail(db *gorm.DB, email string) (*models.BusHelper, error) {
	return helperByEmail(db, email)
}

func StudentByEmail(db *gorm.DB, email string) (*models.Student, error) {
	return studentByEmail(db, email)
}

func ListAgencies(db *gorm.DB) ([]models.Agency, error) {
	var agencies []models.Agency
	if err := db.Joins("User").Order("agencies.id ASC").Find(&agencies).Error; err != nil {
		return nil, err
	}
	return agencies, nil
}

func UpdateAgency(db *gorm.DB, id uint, in AgencyUpdateInput) (*models.Agency, error) {
	agency, err := findAgency(db, id)
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
	err = db.Transaction(func(tx *gorm.DB) error {
		if len(userUpdates) > 0 {
			if err := tx.Model(&models.User{}).Where("id = ?", agency.UserID).Updates(userUpdates).Error; err != nil {
				return err
			}
		}
		if in.Address != nil {
			if err := tx.Model(&models.Agency{}).Where("id = ?", agency.ID).
				Update("address", strings.TrimSpace(*in.Address)).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return findAgency(db, id)
}

// DeleteAgency removes the agency account. Owned schools are released and
// drivers/buses are removed with it — buses run the same unassignment
// cascade as a single bus delete.
func DeleteAgency(db *gorm.DB, id uint) error {
	agency, err := findAgency(db, id)
	if err != nil {
		return err
	}
	return db.Transaction(func(tx *gorm.DB) error {
		var buses []models.Bus
		if err := tx.Where("agency_id = ?", agency.ID).Find(&buses).Error; err != nil {
			return err
		}
		for i := range buses {
			if err := tx.Model(&models.BusHelper{}).
				Where("assigned_bus_id = ?", buses[i].ID).
				Update("assigned_bus_id", nil).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.Student{}).
				Where("assigned_bus_id = ?", buses[i].ID).
				Update("assigned_bus_id", nil).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("agency_id = ?", agency.ID).Delete(&models.Bus{}).Error; err != nil {
			return err
		}
		var drivers []models.Driver
		if err := tx.Where("agency_id = ?", agency.ID).Find(&drivers).Error; err != nil {
			return err
		}
		for i := range drivers {
			if err := tx.Delete(&models.Driver{}, drivers[i].ID).Error; err != nil {
				return err
			}
			if err := tx.Delete(&models.User{}, drivers[i].UserID).Error; err != nil {
				return err
			}
		}
		if err := tx.Model(&models.School{}).
			Where("agency_id = ?", agency.ID).
			Update("agency_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Agency{}, agency.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, agency.UserID).Error
	})
}
