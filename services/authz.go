package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/harshalgaikwad03/CDAC-Project-Id-26/models"
)

// CheckStudentAccess lets AGENCY and SCHOOL callers through unconditionally;
// a STUDENT caller may only reach the record whose account email matches
// their own. Cross-student access yields Forbidden, not NotFound.
func CheckStudentAccess(db *gorm.DB, caller Caller, studentID uint) error {
	if caller.Role != models.RoleStudent {
		return nil
	}
	var student models.Student
	err := db.Joins("User").First(&student, studentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound("Student not found")
	}
	if err != nil {
		return err
	}
	if student.User.Email != caller.Email {
		return forbidden("You are not authorized to view this student's data")
	}
	return nil
}

// RequireOwnAgency resolves the caller's agency and rejects the request when
// it targets a different agency's scope.
func RequireOwnAgency(db *gorm.DB, caller Caller, agencyID uint) (*models.Agency, error) {
	agency, err := agencyByEmail(db, caller.Email)
	if err != nil {
		return nil, err
	}
	if agency.ID != agencyID {
		return nil, forbidden("You can only access your own agency's resources")
	}
	return agency, nil
}

// RequireSchoolScope gates school-scoped reads: a SCHOOL caller must be that
// school, an AGENCY caller must own it. Other roles never reach this check
// (route-level role gates run first).
func RequireSchoolScope(db *gorm.DB, caller Caller, schoolID uint) error {
	switch caller.Role {
	case models.RoleSchool:
		school, err := schoolByEmail(db, caller.Email)
		if err != nil {
			return err
		}
		if school.ID != schoolID {
			return forbidden("You can only access your own school's resources")
		}
		return nil
	case models.RoleAgency:
		agency, err := agencyByEmail(db, caller.Email)
		if err != nil {
			return err
		}
		var school models.School
		err = db.First(&school, schoolID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("School not found")
		}
		if err != nil {
			return err
		}
		if school.AgencyID == nil || *school.AgencyID != agency.ID {
			return forbidden("School does not belong to your agency")
		}
		return nil
	}
	return forbidden("FORBIDDEN")
}
