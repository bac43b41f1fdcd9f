package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harshalgaikwad03/CDAC-Project-Id-26/services"
)

func TestReleaseSchoolClearsAgencyLink(t *testing.T) {
	db := newTestDB(t)
	agency, caller := mkAgency(t, db)
	school, _ := mkSchool(t, db, &agency.ID)

	released, err := services.ReleaseSchool(db, caller, school.ID)
	require.NoError(t, err)
	assert.Nil(t, released.AgencyID)

	// a school without an agency is a valid, readable state
	got, err := services.GetSchool(db, school.ID)
	require.NoError(t, err)
	assert.Nil(t, got.AgencyID)
}

func TestReleaseSchoolForeignAgencyForbidden(t *testing.T) {
	db := newTestDB(t)
	owner, _ := mkAgency(t, db)
	_, intruder := mkAgency(t, db)
	school, _ := mkSchool(t, db, &owner.ID)

	_, err := services.ReleaseSchool(db, intruder, school.ID)
	require.Error(t, err)
	assert.Equal(t, services.KindForbidden, services.KindOf(err))
}

func TestUpdateSchoolPartialFields(t *testing.T) {
	db := newTestDB(t)
	agency, _ := mkAgency(t, db)
	school, _ := mkSchool(t, db, &agency.ID)

	name := "Renamed School"
	updated, err := services.UpdateSchool(db, school.ID, services.SchoolUpdateInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Renamed School", updated.User.Name)
	// untouched fields survive
	assert.Equal(t, school.User.Phone, updated.User.Phone)
}

func TestDeleteSchoolBlockedByEnrollment(t *testing.T) {
	db := newTestDB(t)
	agency, _ := mkAgency(t, db)
	school, _ := mkSchool(t, db, &agency.ID)
	student, _ := mkStudent(t, db, school.ID, nil)

	err := services.DeleteSchool(db, school.ID)
	require.Error(t, err)
	assert.Equal(t, services.KindConflict, services.KindOf(err))

	require.NoError(t, services.DeleteStudent(db, student.ID))
	require.NoError(t, services.DeleteSchool(db, school.ID))

	_, err = services.GetSchool(db, school.ID)
	assert.Equal(t, services.KindNotFound, services.KindOf(err))
}

func TestStudentsByHelperEmailEmptyWithoutBus(t *testing.T) {
	db := newTestDB(t)
	agency, _ := mkAgency(t, db)
	school, _ := mkSchool(t, db, &agency.ID)
	_, helperCaller := mkHelper(t, db, school.ID)

	students, err := services.StudentsByHelperEmail(db, helperCaller.Email)
	require.NoError(t, err)
	assert.Empty(t, students)
}

func TestStudentsByHelperEmailListsRiders(t *testing.T) {
	db := newTestDB(t)
	agency, agencyCaller := mkAgency(t, db)
	school, _ := mkSchool(t, db, &agency.ID)
	bus, err := services.CreateBus(db, agencyCaller, services.BusInput{BusNumber: "KA-40", Capacity: 40})
	require.NoError(t, err)

	helper, helperCaller := mkHelper(t, db, school.ID)
	_, err = services.AssignHelper(db, bus.ID, helper.ID)
	require.NoError(t, err)

	rider, _ := mkStudent(t, db, school.ID, &bus.ID)
	mkStudent(t, db, school.ID, nil)

	students, err := services.StudentsByHelperEmail(db, helperCaller.Email)
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, rider.ID, students[0].ID)
}
