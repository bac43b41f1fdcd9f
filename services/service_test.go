package services_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/harshalgaikwad03/CDAC-Project-Id-26/database"
	"github.com/harshalgaikwad03/CDAC-Project-Id-26/models"
	"github.com/harshalgaikwad03/CDAC-Project-Id-26/services"
)

// newTestDB opens a private in-memory database per test and runs the real
// migration against it.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func asCaller(u models.User) services.Caller {
	return services.Caller{UserID: u.ID, Email: u.Email, Role: u.Role}
}

var seq int

func nextEmail(prefix string) string {
	seq++
	return fmt.Sprintf("%s%d@test.local", prefix, seq)
}

func mkAgency(t *testing.T, db *gorm.DB) (*models.Agency, services.Caller) {
	t.Helper()
	agency, err := services.SignupAgency(db, services.SignupInput{
		Name:     "Agency " + t.Name(),
		Email:    nextEmail("agency"),
		Phone:    "1000000000",
		Password: "secret1",
		Address:  "Depot Rd",
	})
	require.NoError(t, err)
	return agency, asCaller(agency.User)
}

func mkSchool(t *testing.T, db *gorm.DB, agencyID *uint) (*models.School, services.Caller) {
	t.Helper()
	school, err := services.SignupSchool(db, services.SignupInput{
		Name:     "School " + t.Name(),
		Email:    nextEmail("school"),
		Phone:    "2000000000",
		Password: "secret1",
		Address:  "School Rd",
		AgencyID: agencyID,
	})
	require.NoError(t, err)
	return school, asCaller(school.User)
}

func mkDriver(t *testing.T, db *gorm.DB, agencyID uint) (*models.Driver, services.Caller) {
	t.Helper()
	seq++
	driver, err := services.SignupDriver(db, services.SignupInput{
		Name:          "Driver",
		Email:         nextEmail("driver"),
		Phone:         "3000000000",
		Password:      "secret1",
		LicenseNumber: fmt.Sprintf("LIC-%d", seq),
		AgencyID:      &agencyID,
	})
	require.NoError(t, err)
	return driver, asCaller(driver.User)
}

func mkHelper(t *testing.T, db *gorm.DB, schoolID uint) (*models.BusHelper, services.Caller) {
	t.Helper()
	helper, err := services.SignupHelper(db, services.SignupInput{
		Name:     "Helper",
		Email:    nextEmail("helper"),
		Phone:    "4000000000",
		Password: "secret1",
		SchoolID: &schoolID,
	})
	require.NoError(t, err)
	return helper, asCaller(helper.User)
}

func mkStudent(t *testing.T, db *gorm.DB, schoolID uint, busID *uint) (*models.Student, services.Caller) {
	t.Helper()
	seq++
	student, err := services.SignupStudent(db, services.SignupInput{
		Name:      "Student",
		Email:     nextEmail("student"),
		Phone:     "5000000000",
		Password:  "secret1",
		Address:   "Home Rd",
		ClassName: "5A",
		RollNo:    fmt.Sprintf("%d", seq),
		SchoolID:  &schoolID,
		BusID:     busID,
	})
	require.NoError(t, err)
	return student, asCaller(student.User)
}
