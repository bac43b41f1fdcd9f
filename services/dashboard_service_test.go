package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harshalgaikwad03/CDAC-Project-Id-26/models"
	"github.com/harshalgaikwad03/CDAC-Project-Id-26/services"
)

func TestAgencyDashboardCounts(t *testing.T) {
	db := newTestDB(t)
	agency, caller := mkAgency(t, db)
	school, _ := mkSchool(t, db, &agency.ID)
	mkDriver(t, db, agency.ID)
	mkDriver(t, db, agency.ID)
	_, err := services.CreateBus(db, caller, services.BusInput{BusNumber: "KA-30", Capacity: 40})
	require.NoError(t, err)
	mkStudent(t, db, school.ID, nil)
	mkStudent(t, db, school.ID, nil)
	mkStudent(t, db, school.ID, nil)

	// noise under another agency must not leak in
	other, otherCaller := mkAgency(t, db)
	otherSchool, _ := mkSchool(t, db, &other.ID)
	mkStudent(t, db, otherSchool.ID, nil)
	_, err = services.CreateBus(db, otherCaller, services.BusInput{BusNumber: "KA-31", Capacity: 40})
	require.NoError(t, err)

	s, err := services.AgencyDashboard(db, caller)
	require.NoError(t, err)
	assert.EqualValues(t, 1, s.TotalBuses)
	assert.EqualValues(t, 2, s.TotalDrivers)
	assert.EqualValues(t, 1, s.TotalSchools)
	assert.EqualValues(t, 3, s.TotalStudents)
}

func TestSchoolDashboardAttendancePercentage(t *testing.T) {
	db := newTestDB(t)
	agency, _ := mkAgency(t, db)
	school, schoolCaller := mkSchool(t, db, &agency.ID)

	students := make([]*models.Student, 0, 8)
	for i := 0; i < 8; i++ {
		st, _ := mkStudent(t, db, school.ID, nil)
		students = append(students, st)
	}
	// 3 picked + 2 dropped = 5 of 8 present
	for i := 0; i < 3; i++ {
		_, err := services.UpsertTodayStatus(db, students[i].ID, models.PickupPicked, 1)
		require.NoError(t, err)
	}
	for i := 3; i < 5; i++ {
		_, err := services.UpsertTodayStatus(db, students[i].ID, models.PickupDropped, 1)
		require.NoError(t, err)
	}
	// a pending row is not presence
	_, err := services.UpsertTodayStatus(db, students[5].ID, models.PickupPending, 1)
	require.NoError(t, err)

	s, err := services.SchoolDashboard(db, schoolCaller)
	require.NoError(t, err)
	assert.EqualValues(t, 8, s.TotalStudents)
	assert.EqualValues(t, 5, s.PresentToday)
	assert.InDelta(t, 62.5, s.AttendancePercentage, 0.001)
}

func TestSchoolDashboardNoStudentsIsZero(t *testing.T) {
	db := newTestDB(t)
	agency, _ := mkAgency(t, db)
	_, schoolCaller := mkSchool(t, db, &agency.ID)

	s, err := services.SchoolDashboard(db, schoolCaller)
	require.NoError(t, err)
	assert.EqualValues(t, 0, s.TotalStudents)
	assert.Zero(t, s.AttendancePercentage)
}

func TestDriverDashboardWithoutBus(t *testing.T) {
	db := newTestDB(t)
	agency, _ := mkAgency(t, db)
	_, driverCaller := mkDriver(t, db, agency.ID)

	s, err := services.DriverDashboard(db, driverCaller)
	require.NoError(t, err)
	assert.Equal(t, "Not Assigned", s.BusNumber)
	assert.Zero(t, s.TotalStudents)
}

func TestHelperDashboardBreakdown(t *testing.T) {
	db := newTestDB(t)
	agency, agencyCaller := mkAgency(t, db)
	school, _ := mkSchool(t, db, &agency.ID)
	bus, err := services.CreateBus(db, agencyCaller, services.BusInput{BusNumber: "KA-32", Capacity: 40})
	require.NoError(t, err)

	helper, helperCaller := mkHelper(t, db, school.ID)
	_, err = services.AssignHelper(db, bus.ID, helper.ID)
	require.NoError(t, err)

	a, _ := mkStudent(t, db, school.ID, &bus.ID)
	b, _ := mkStudent(t, db, school.ID, &bus.ID)
	mkStudent(t, db, school.ID, &bus.ID) // untouched today

	_, err = services.UpsertTodayStatus(db, a.ID, models.PickupPicked, helperCaller.UserID)
	require.NoError(t, err)
	_, err = services.UpsertTodayStatus(db, b.ID, models.PickupDropped, helperCaller.UserID)
	require.NoError(t, err)

	s, err := services.HelperDashboard(db, helperCaller)
	require.NoError(t, err)
	assert.Equal(t, "KA-32", s.BusNumber)
	assert.EqualValues(t, 3, s.StudentsAssigned)
	assert.EqualValues(t, 1, s.PickedCount)
	assert.EqualValues(t, 1, s.DroppedCount)
	assert.EqualValues(t, 1, s.PendingCount)
}
