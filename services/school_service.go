package services

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/harshalgaikwad03/CDAC-Project-Id-26/models"
)

type SchoolUpdateInput struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
	Password *string `json:"password"`
	AgencyID *uint   `json:"agency_id"` // 0 releases the school from its agency
}

func findSchool(db *gorm.DB, id uint) (*models.School, error) {
	var school models.School
	err := db.Joins("User").First(&school, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("School not found")
	}
	if err != nil {
		return nil, err
	}
	return &school, nil
}

func GetSchool(db *gorm.DB, id uint) (*models.School, error) {
	return findSchool(db, id)
}

func ListSchools(db *gorm.DB) ([]models.School, error) {
	var schools []models.School
	if err := db.Joins("User").Order("schools.id ASC").Find(&schools).Error; err != nil {
		return nil, err
	}
	return schools, nil
}

func SchoolsByAgency(db *gorm.DB, agencyID uint) ([]models.School, error) {
	var schools []models.School
	err := db.Joins("User").Where("schools.agency_id = ?", agencyID).Order("schools.id ASC").Find(&schools).Error
	if err != nil {
		return nil, err
	}
	return schools, nil
}

func UpdateSchool(db *gorm.DB, id uint, in SchoolUpdateInput) (*models.School, error) {
	school, err := findSchool(db, id)
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
	schoolUpdates := map[string]any{}
	if in.Address != nil {
		schoolUpdates["address"] = strings.TrimSpace(*in.Address)
	}
	if in.AgencyID != nil {
		if *in.AgencyID == 0 {
			schoolUpdates["agency_id"] = nil
		} else {
			var agency models.Agency
			if err := db.First(&agency, *in.AgencyID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, notFound("Agency not found")
				}
				return nil, err
			}
			schoolUpdates["agency_id"] = agency.ID
		}
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		if len(userUpdates) > 0 {
			if err := tx.Model(&models.User{}).Where("id = ?", school.UserID).Updates(userUpdates).Error; err != nil {
				return err
			}
		}
		if len(schoolUpdates) > 0 {
			if err := tx.Model(&models.School{}).Where("id = ?", school.ID).Updates(schoolUpdates).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return findSchool(db, id)
}

// ReleaseSchool detaches a school from the caller's agency. The school keeps
// existing without an agency until some agency claims it again.
func ReleaseSchool(db *gorm.DB, caller Caller, schoolID uint) (*models.School, error) {
	agency, err := agencyByEmail(db, caller.Email)
	if err != nil {
		return nil, err
	}
	school, err := findSchool(db, schoolID)
	if err != nil {
		return nil, err
	}
	if school.AgencyID == nil || *school.AgencyID != agency.ID {
		return nil, forbidden("School does not belong to your agency")
	}
	if err := db.Model(&models.School{}).Where("id = ?", school.ID).Update("agency_id", nil).Error; err != nil {
		return nil, err
	}
	school.AgencyID = nil
	return school, nil
}

func DeleteSchool(db *gorm.DB, id uint) error {
	school, err := findSchool(db, id)
	if err != nil {
		return err
	}
	var n int64
	if err := db.Model(&models.Student{}).Where("school_id = ?", school.ID).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return conflict("School still has students")
	}
	if err := db.Model(&models.BusHelper{}).Where("school_id = ?", school.ID).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return conflict("School still has bus helpers")
	}
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Bus{}).Where("school_id = ?", school.ID).Update("school_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.School{}, school.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, school.UserID).Error
	})
}
