package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harshalgaikwad03/CDAC-Project-Id-26/models"
	"github.com/harshalgaikwad03/CDAC-Project-Id-26/services"
)

func TestCreateBusRecordsCallerAgency(t *testing.T) {
	db := newTestDB(t)
	agency, caller := mkAgency(t, db)

	bus, err := services.CreateBus(db, caller, services.BusInput{BusNumber: "KA-01", Capacity: 40})
	require.NoError(t, err)
	assert.Equal(t, agency.ID, bus.AgencyID)
	assert.Nil(t, bus.SchoolID)
	assert.Nil(t, bus.DriverID)
}

func TestCreateBusDuplicateNumberConflicts(t *testing.T) {
	db := newTestDB(t)
	_, caller := mkAgency(t, db)

	_, err := services.CreateBus(db, caller, services.BusInput{BusNumber: "KA-01", Capacity: 40})
	require.NoError(t, err)

	_, err = services.CreateBus(db, caller, services.BusInput{BusNumber: "KA-01", Capacity: 30})
	require.Error(t, err)
	assert.Equal(t, services.KindConflict, services.KindOf(err))
}

func TestCreateBusRejectsForeignSchool(t *testing.T) {
	db := newTestDB(t)
	_, caller := mkAgency(t, db)
	other, _ := mkAgency(t, db)
	school, _ := mkSchool(t, db, &other.ID)

	_, err := services.CreateBus(db, caller, services.BusInput{
		BusNumber: "KA-02", Capacity: 40, SchoolID: &school.ID,
	})
	require.Error(t, err)
	assert.Equal(t, services.KindForbidden, services.KindOf(err))
}

func TestCreateBusRejectsForeignDriver(t *testing.T) {
	db := newTestDB(t)
	_, caller := mkAgency(t, db)
	other, _ := mkAgency(t, db)
	driver, _ := mkDriver(t, db, other.ID)

	_, err := services.CreateBus(db, caller, services.BusInput{
		BusNumber: "KA-03", Capacity: 40, DriverID: &driver.ID,
	})
	require.Error(t, err)
	assert.Equal(t, services.KindForbidden, services.KindOf(err))
}

func TestDriverCanOnlyDriveOneBus(t *testing.T) {
	db := newTestDB(t)
	agency, caller := mkAgency(t, db)
	driver, _ := mkDriver(t, db, agency.ID)

	_, err := services.CreateBus(db, caller, services.BusInput{
		BusNumber: "KA-04", Capacity: 40, DriverID: &driver.ID,
	})
	require.NoError(t, err)

	_, err = services.CreateBus(db, caller, services.BusInput{
		BusNumber: "KA-05", Capacity: 40, DriverID: &driver.ID,
	})
	require.Error(t, err)
	assert.Equal(t, services.KindConflict, services.KindOf(err))
}

func TestUpdateBusKeepsOwnDriver(t *testing.T) {
	db := newTestDB(t)
	agency, caller := mkAgency(t, db)
	driver, _ := mkDriver(t, db, agency.ID)

	bus, err := services.CreateBus(db, caller, services.BusInput{
		BusNumber: "KA-06", Capacity: 40, DriverID: &driver.ID,
	})
	require.NoError(t, err)

	// re-submitting the same driver must not trip the uniqueness check
	updated, err := services.UpdateBus(db, caller, bus.ID, services.BusInput{
		BusNumber: "KA-06", Capacity: 45, DriverID: &driver.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, 45, updated.Capacity)
	require.NotNil(t, updated.DriverID)
	assert.Equal(t, driver.ID, *updated.DriverID)
}

func TestUpdateBusOmittedLinksAreCleared(t *testing.T) {
	db := newTestDB(t)
	agency, caller := mkAgency(t, db)
	school, _ := mkSchool(t, db, &agency.ID)
	driver, _ := mkDriver(t, db, agency.ID)

	bus, err := services.CreateBus(db, caller, services.BusInput{
		BusNumber: "KA-07", Capacity: 40, SchoolID: &school.ID, DriverID: &driver.ID,
	})
	require.NoError(t, err)

	_, err = services.UpdateBus(db, caller, bus.ID, services.BusInput{
		BusNumber: "KA-07", Capacity: 40,
	})
	require.NoError(t, err)

	reloaded, err := services.GetBus(db, bus.ID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.SchoolID)
	assert.Nil(t, reloaded.DriverID)

	// the driver is free again
	free, err := services.UnassignedDriversByAgency(db, agency.ID)
	require.NoError(t, err)
	require.Len(t, free, 1)
	assert.Equal(t, driver.ID, free[0].ID)
}

func TestUpdateBusForeignAgencyForbidden(t *testing.T) {
	db := newTestDB(t)
	_, owner := mkAgency(t, db)
	_, intruder := mkAgency(t, db)

	bus, err := services.CreateBus(db, owner, services.BusInput{BusNumber: "KA-08", Capacity: 40})
	require.NoError(t, err)

	_, err = services.UpdateBus(db, intruder, bus.ID, services.BusInput{BusNumber: "KA-08", Capacity: 50})
	require.Error(t, err)
	assert.Equal(t, services.KindForbidden, services.KindOf(err))
}

func TestDeleteBusCascadesUnassignments(t *testing.T) {
	db := newTestDB(t)
	agency, caller := mkAgency(t, db)
	school, _ := mkSchool(t, db, &agency.ID)
	driver, _ := mkDriver(t, db, agency.ID)

	bus, err := services.CreateBus(db, caller, services.BusInput{
		BusNumber: "KA-09", Capacity: 40, SchoolID: &school.ID, DriverID: &driver.ID,
	})
	require.NoError(t, err)

	helper, _ := mkHelper(t, db, school.ID)
	_, err = services.AssignHelper(db, bus.ID, helper.ID)
	require.NoError(t, err)
	student, _ := mkStudent(t, db, school.ID, &bus.ID)

	require.NoError(t, services.DeleteBus(db, caller, bus.ID))

	_, err = services.GetBus(db, bus.ID)
	assert.Equal(t, services.KindNotFound, services.KindOf(err))

	gotHelper, err := services.GetHelper(db, helper.ID)
	require.NoError(t, err)
	assert.Nil(t, gotHelper.AssignedBusID)

	gotStudent, err := services.GetStudent(db, student.ID)
	require.NoError(t, err)
	assert.Nil(t, gotStudent.AssignedBusID)

	// driver reusable immediately
	_, err = services.CreateBus(db, caller, services.BusInput{
		BusNumber: "KA-10", Capacity: 40, DriverID: &driver.ID,
	})
	require.NoError(t, err)
}

func TestUnassignDriverWithoutDriverConflicts(t *testing.T) {
	db := newTestDB(t)
	_, caller := mkAgency(t, db)

	bus, err := services.CreateBus(db, caller, services.BusInput{BusNumber: "KA-11", Capacity: 40})
	require.NoError(t, err)

	err = services.UnassignDriver(db, bus.ID)
	require.Error(t, err)
	assert.Equal(t, services.KindConflict, services.KindOf(err))
}

func TestAssignHelperAllowsSharedBus(t *testing.T) {
	db := newTestDB(t)
	agency, caller := mkAgency(t, db)
	school, _ := mkSchool(t, db, &agency.ID)
	h1, _ := mkHelper(t, db, school.ID)
	h2, _ := mkHelper(t, db, school.ID)

	bus, err := services.CreateBus(db, caller, services.BusInput{BusNumber: "KA-12", Capacity: 40})
	require.NoError(t, err)

	_, err = services.AssignHelper(db, bus.ID, h1.ID)
	require.NoError(t, err)
	_, err = services.AssignHelper(db, bus.ID, h2.ID)
	require.NoError(t, err)

	helpers, err := services.HelpersByBus(db, bus.ID)
	require.NoError(t, err)
	assert.Len(t, helpers, 2)
}

func TestBusDetailProjection(t *testing.T) {
	db := newTestDB(t)
	agency, caller := mkAgency(t, db)
	school, _ := mkSchool(t, db, &agency.ID)
	driver, _ := mkDriver(t, db, agency.ID)

	bus, err := services.CreateBus(db, caller, services.BusInput{
		BusNumber: "KA-13", Capacity: 40, SchoolID: &school.ID, DriverID: &driver.ID,
	})
	require.NoError(t, err)
	helper, _ := mkHelper(t, db, school.ID)
	_, err = services.AssignHelper(db, bus.ID, helper.ID)
	require.NoError(t, err)

	detail, err := services.GetBusDetail(db, bus.ID)
	require.NoError(t, err)
	assert.Equal(t, school.User.Name, detail.SchoolName)
	assert.Equal(t, driver.User.Name, detail.DriverName)
	assert.Equal(t, helper.User.Name, detail.HelperName)
}

func TestBusByDriverAbsentIsNil(t *testing.T) {
	db := newTestDB(t)
	agency, _ := mkAgency(t, db)
	driver, _ := mkDriver(t, db, agency.ID)

	bus, err := services.BusByDriver(db, driver.ID)
	require.NoError(t, err)
	assert.Nil(t, bus)
}

func TestDeleteDriverStillAssignedConflicts(t *testing.T) {
	db := newTestDB(t)
	agency, caller := mkAgency(t, db)
	driver, _ := mkDriver(t, db, agency.ID)

	bus, err := services.CreateBus(db, caller, services.BusInput{
		BusNumber: "KA-14", Capacity: 40, DriverID: &driver.ID,
	})
	require.NoError(t, err)

	err = services.DeleteDriver(db, driver.ID)
	require.Error(t, err)
	assert.Equal(t, services.KindConflict, services.KindOf(err))

	require.NoError(t, services.UnassignDriver(db, bus.ID))
	require.NoError(t, services.DeleteDriver(db, driver.ID))

	var users []models.User
	require.NoError(t, db.Where("role = ?", models.RoleDriver).Find(&users).Error)
	assert.Empty(t, users)
}
