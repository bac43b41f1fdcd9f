package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harshalgaikwad03/CDAC-Project-Id-26/services"
)

func TestStudentReadsOnlySelf(t *testing.T) {
	db := newTestDB(t)
	agency, _ := mkAgency(t, db)
	school, _ := mkSchool(t, db, &agency.ID)
	me, myCaller := mkStudent(t, db, school.ID, nil)
	other, _ := mkStudent(t, db, school.ID, nil)

	require.NoError(t, services.CheckStudentAccess(db, myCaller, me.ID))

	err := services.CheckStudentAccess(db, myCaller, other.ID)
	require.Error(t, err)
	assert.Equal(t, services.KindForbidden, services.KindOf(err))
}

func TestAdminRolesPassStudentGate(t *testing.T) {
	db := newTestDB(t)
	agency, agencyCaller := mkAgency(t, db)
	school, schoolCaller := mkSchool(t, db, &agency.ID)
	student, _ := mkStudent(t, db, school.ID, nil)

	assert.NoError(t, services.CheckStudentAccess(db, agencyCaller, student.ID))
	assert.NoError(t, services.CheckStudentAccess(db, schoolCaller, student.ID))
}

func TestRequireOwnAgency(t *testing.T) {
	db := newTestDB(t)
	mine, caller := mkAgency(t, db)
	other, _ := mkAgency(t, db)

	got, err := services.RequireOwnAgency(db, caller, mine.ID)
	require.NoError(t, err)
	assert.Equal(t, mine.ID, got.ID)

	_, err = services.RequireOwnAgency(db, caller, other.ID)
	require.Error(t, err)
	assert.Equal(t, services.KindForbidden, services.KindOf(err))
}

func TestRequireSchoolScope(t *testing.T) {
	db := newTestDB(t)
	agency, agencyCaller := mkAgency(t, db)
	foreign, _ := mkAgency(t, db)

	owned, ownedCaller := mkSchool(t, db, &agency.ID)
	foreignSchool, _ := mkSchool(t, db, &foreign.ID)

	// a school acts on itself
	require.NoError(t, services.RequireSchoolScope(db, ownedCaller, owned.ID))
	// but not on another school
	err := services.RequireSchoolScope(db, ownedCaller, foreignSchool.ID)
	assert.Equal(t, services.KindForbidden, services.KindOf(err))

	// the owning agency passes, a foreign one does not
	require.NoError(t, services.RequireSchoolScope(db, agencyCaller, owned.ID))
	err = services.RequireSchoolScope(db, agencyCaller, foreignSchool.ID)
	assert.Equal(t, services.KindForbidden, services.KindOf(err))
}
