package services

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/harshalgaikwad03/CDAC-Project-Id-26/models"
)

// SignupInput carries the shared account fields plus the parent links each
// role needs. Which links are required depends on the role being created.
type SignupInput struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,max=15"`
	Password string `json:"password" validate:"required,min=6"`
	Address  string `json:"address"`

	LicenseNumber string `json:"license_number"` // driver only
	ClassName     string `json:"class_name"`     // student only
	RollNo        string `json:"roll_no"`        // student only

	AgencyID *uint `json:"agency_id"` // driver (required), school (optional)
	SchoolID *uint `json:"school_id"` // helper, student (required)
	BusID    *uint `json:"bus_id"`    // student (optional)
}

func (in *SignupInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)
	in.Address = strings.TrimSpace(in.Address)
	in.LicenseNumber = strings.TrimSpace(in.LicenseNumber)
	in.ClassName = strings.TrimSpace(in.ClassName)
	in.RollNo = strings.TrimSpace(in.RollNo)
}

func newUser(in *SignupInput, role string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &models.User{
		Name:     in.Name,
		Phone:    in.Phone,
		Email:    in.Email,
		Password: string(hash),
		Role:     role,
		Active:   true,
	}, nil
}

// emailTaken pre-checks the unique email; the index on users.email still
// backs this up under concurrent signups.
func emailTaken(db *gorm.DB, email string) (bool, error) {
	var n int64
	if err := db.Model(&models.User{}).Where("email = ?", email).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func translateCreateErr(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return conflict("Email already registered")
	}
	return err
}

func SignupAgency(db *gorm.DB, in SignupInput) (*models.Agency, error) {
	in.normalize()
	if taken, err := emailTaken(db, in.Email); err != nil {
		return nil, err
	} else if taken {
		return nil, conflict("Email already registered")
	}
	user, err := newUser(&in, models.RoleAgency)
	if err != nil {
		return nil, err
	}
	agency := &models.Agency{User: *user, Address: in.Address}
	if err := db.Create(agency).Error; err != nil {
		return nil, translateCreateErr(err)
	}
	return agency, nil
}

func SignupSchool(db *gorm.DB, in SignupInput) (*models.School, error) {
	in.normalize()
	if taken, err := emailTaken(db, in.Email); err != nil {
		return nil, err
	} else if taken {
		return nil, conflict("Email already registered")
	}
	if in.AgencyID != nil {
		var agency models.Agency
		if err := db.First(&agency, *in.AgencyID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, notFound("Agency not found")
			}
			return nil, err
		}
	}
	user, err := newUser(&in, models.RoleSchool)
	if err != nil {
		return nil, err
	}
	school := &models.School{User: *user, Address: in.Address, AgencyID: in.AgencyID}
	if err := db.Create(school).Error; err != nil {
		return nil, translateCreateErr(err)
	}
	return school, nil
}

func SignupDriver(db *gorm.DB, in SignupInput) (*models.Driver, error) {
	in.normalize()
	if in.AgencyID == nil {
		return nil, invalid("agency_id is required")
	}
	if in.LicenseNumber == "" {
		return nil, invalid("license_number is required")
	}
	if taken, err := emailTaken(db, in.Email); err != nil {
		return nil, err
	} else if taken {
		return nil, conflict("Email already registered")
	}
	var agency models.Agency
	if err := db.First(&agency, *in.AgencyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Agency not found")
		}
		return nil, err
	}
	user, err := newUser(&in, models.RoleDriver)
	if err != nil {
		return nil, err
	}
	driver := &models.Driver{User: *user, LicenseNumber: in.LicenseNumber, AgencyID: agency.ID}
	if err := db.Create(driver).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, conflict("Email or license number already registered")
		}
		return nil, err
	}
	return driver, nil
}

func SignupHelper(db *gorm.DB, in SignupInput) (*models.BusHelper, error) {
	in.normalize()
	if in.SchoolID == nil {
		return nil, invalid("school_id is required")
	}
	if taken, err := emailTaken(db, in.Email); err != nil {
		return nil, err
	} else if taken {
		return nil, conflict("Email already registered")
	}
	var school models.School
	if err := db.First(&school, *in.SchoolID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("School not found")
		}
		return nil, err
	}
	user, err := newUser(&in, models.RoleHelper)
	if err != nil {
		return nil, err
	}
	helper := &models.BusHelper{User: *user, SchoolID: school.ID}
	if err := db.Create(helper).Error; err != nil {
		return nil, translateCreateErr(err)
	}
	return helper, nil
}

// SignupStudent creates the account with an INACTIVE pass. The pass becomes
// ACTIVE only through payment or an explicit activation call.
func SignupStudent(db *gorm.DB, in SignupInput) (*models.Student, error) {
	in.normalize()
	if in.SchoolID == nil {
		return nil, invalid("school_id is required")
	}
	if in.ClassName == "" || in.RollNo == "" {
		return nil, invalid("class_name and roll_no are required")
	}
	if taken, err := emailTaken(db, in.Email); err != nil {
		return nil, err
	} else if taken {
		return nil, conflict("Email already registered")
	}
	var school models.School
	if err := db.First(&school, *in.SchoolID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("School not found")
		}
		return nil, err
	}
	var busID *uint
	if in.BusID != nil {
		var bus models.Bus
		if err := db.First(&bus, *in.BusID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, notFound("Bus not found")
			}
			return nil, err
		}
		busID = &bus.ID
	}
	user, err := newUser(&in, models.RoleStudent)
	if err != nil {
		return nil, err
	}
	student := &models.Student{
		User:          *user,
		ClassName:     in.ClassName,
		RollNo:        in.RollNo,
		Address:       in.Address,
		PassStatus:    models.PassInactive,
		SchoolID:      school.ID,
		AssignedBusID: busID,
	}
	if err := db.Create(student).Error; err != nil {
		return nil, translateCreateErr(err)
	}
	return student, nil
}

// Login verifies the credentials and resolves the role-specific principal id
// the frontend works with (agency/school/driver/helper/student row id).
func Login(db *gorm.DB, email, password string) (*models.User, uint, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var user models.User
	err := db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, 0, unauthorized("Invalid email or password")
	}
	if err != nil {
		return nil, 0, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, 0, unauthorized("Invalid email or password")
	}
	if !user.Active {
		return nil, 0, forbidden("Account is deactivated")
	}

	principalID, err := principalIDFor(db, &user)
	if err != nil {
		return nil, 0, err
	}
	return &user, principalID, nil
}

func principalIDFor(db *gorm.DB, user *models.User) (uint, error) {
	var id uint
	var err error
	switch user.Role {
	case models.RoleAgency:
		var a models.Agency
		err = db.Where("user_id = ?", user.ID).First(&a).Error
		id = a.ID
	case models.RoleSchool:
		var s models.School
		err = db.Where("user_id = ?", user.ID).First(&s).Error
		id = s.ID
	case models.RoleDriver:
		var d models.Driver
		err = db.Where("user_id = ?", user.ID).First(&d).Error
		id = d.ID
	case models.RoleHelper:
		var h models.BusHelper
		err = db.Where("user_id = ?", user.ID).First(&h).Error
		id = h.ID
	case models.RoleStudent:
		var st models.Student
		err = db.Where("user_id = ?", user.ID).First(&st).Error
		id = st.ID
	default:
		return 0, forbidden("Unknown role")
	}
	if err != nil {
		return 0, err
	}
	return id, nil
}

func ChangePassword(db *gorm.DB, caller Caller, current, next string) error {
	if strings.TrimSpace(next) == "" {
		return invalid("New password must not be empty")
	}
	var user models.User
	err := db.Where("email = ?", caller.Email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound("User not found")
	}
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(current)) != nil {
		return unauthorized("Current password is incorrect")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return db.Model(&user).Update("password", string(hash)).Error
}
