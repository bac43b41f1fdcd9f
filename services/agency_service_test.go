package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harshalgaikwad03/CDAC-Project-Id-26/models"
	"github.com/harshalgaikwad03/CDAC-Project-Id-26/services"
)

// End-to-end cascade: removing an agency frees its schools, removes its
// drivers and buses, and unhooks every rider and helper.
func TestDeleteAgencyCascade(t *testing.T) {
	db := newTestDB(t)
	agency, caller := mkAgency(t, db)
	school, _ := mkSchool(t, db, &agency.ID)
	driver, _ := mkDriver(t, db, agency.ID)

	bus, err := services.CreateBus(db, caller, services.BusInput{
		BusNumber: "KA-50", Capacity: 40, SchoolID: &school.ID, DriverID: &driver.ID,
	})
	require.NoError(t, err)

	helper, _ := mkHelper(t, db, school.ID)
	_, err = services.AssignHelper(db, bus.ID, helper.ID)
	require.NoError(t, err)
	student, _ := mkStudent(t, db, school.ID, &bus.ID)

	require.NoError(t, services.DeleteAgency(db, agency.ID))

	_, err = services.GetAgency(db, agency.ID)
	assert.Equal(t, services.KindNotFound, services.KindOf(err))
	_, err = services.GetBus(db, bus.ID)
	assert.Equal(t, services.KindNotFound, services.KindOf(err))
	_, err = services.GetDriver(db, driver.ID)
	assert.Equal(t, services.KindNotFound, services.KindOf(err))

	// the school survives, released
	gotSchool, err := services.GetSchool(db, school.ID)
	require.NoError(t, err)
	assert.Nil(t, gotSchool.AgencyID)

	gotHelper, err := services.GetHelper(db, helper.ID)
	require.NoError(t, err)
	assert.Nil(t, gotHelper.AssignedBusID)

	gotStudent, err := services.GetStudent(db, student.ID)
	require.NoError(t, err)
	assert.Nil(t, gotStudent.AssignedBusID)
}

func TestUpdateAgencyProfile(t *testing.T) {
	db := newTestDB(t)
	agency, _ := mkAgency(t, db)

	name := "Renamed Agency"
	addr := "2 New Depot"
	updated, err := services.UpdateAgency(db, agency.ID, services.AgencyUpdateInput{Name: &name, Address: &addr})
	require.NoError(t, err)
	assert.Equal(t, "Renamed Agency", updated.User.Name)
	assert.Equal(t, "2 New Depot", updated.Address)
	assert.Equal(t, agency.User.Email, updated.User.Email)
}

func TestInactiveAgencyCannotMutate(t *testing.T) {
	db := newTestDB(t)
	_, caller := mkAgency(t, db)

	require.NoError(t, db.Model(&models.User{}).
		Where("email = ?", caller.Email).
		Update("active", false).Error)

	_, err := services.CreateBus(db, caller, services.BusInput{BusNumber: "KA-51", Capacity: 40})
	require.Error(t, err)
	assert.Equal(t, services.KindForbidden, services.KindOf(err))
}
