package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/harshalgaikwad03/CDAC-Project-Id-26/database"
	"github.com/harshalgaikwad03/CDAC-Project-Id-26/services"
)

type BusHelperHandler struct{}

func NewBusHelperHandler() *BusHelperHandler { return &BusHelperHandler{} }

// GET /api/helpers/:id
func (h *BusHelperHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	helper, err := services.GetHelper(database.DB, id)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, helper)
}

// GET /api/helpers/me
func (h *BusHelperHandler) Me(c echo.Context) error {
	helper, err := services.HelperByEmail(database.DB, caller(c).Email)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, helper)
}

// GET /api/helpers/school/:schoolId
func (h *BusHelperHandler) BySchool(c echo.Context) error {
	schoolID, err := parseID(c, "schoolId")
	if err != nil {
		return err
	}
	if err := services.RequireSchoolScope(database.DB, caller(c), schoolID); err != nil {
		return respondErr(c, err)
	}
	helpers, err := services.HelpersBySchool(database.DB, schoolID)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, helpers)
}

// PUT /api/helpers/:id — the helper's school (or its agency).
func (h *BusHelperHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	helper, err := services.GetHelper(database.DB, id)
	if err != nil {
		return respondErr(c, err)
	}
	if err := services.RequireSchoolScope(database.DB, caller(c), helper.SchoolID); err != nil {
		return respondErr(c, err)
	}
	var in services.HelperUpdateInput
	if err := bindAndValidate(c, &in); err != nil {
		return err
	}
	helper, err = services.UpdateHelper(database.DB, id, in)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, helper)
}

// DELETE /api/helpers/:id
func (h *BusHelperHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	helper, err := services.GetHelper(database.DB, id)
	if err != nil {
		return respondErr(c, err)
	}
	if err := services.RequireSchoolScope(database.DB, caller(c), helper.SchoolID); err != nil {
		return respondErr(c, err)
	}
	if err := services.DeleteHelper(database.DB, id); err != nil {
		return respondErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GET /api/helpers/students — the riders of the caller's bus, empty while no
// bus is assigned.
func (h *BusHelperHandler) Students(c echo.Context) error {
	students, err := services.StudentsByHelperEmail(database.DB, caller(c).Email)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, students)
}

// GET /api/helpers/dashboard/summary
func (h *BusHelperHandler) Dashboard(c echo.Context) error {
	summary, err := services.HelperDashboard(database.DB, caller(c))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, summary)
}

// POST /api/helpers/student-status — the helper marks a rider of their own
// bus picked or dropped for today.
func (h *BusHelperHandler) UpsertStudentStatus(c echo.Context) error {
	var req StatusUpsertReq
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	call := caller(c)
	helper, err := services.HelperByEmail(database.DB, call.Email)
	if err != nil {
		return respondErr(c, err)
	}
	student, err := services.GetStudent(database.DB, req.StudentID)
	if err != nil {
		return respondErr(c, err)
	}
	if helper.AssignedBusID == nil || student.AssignedBusID == nil || *student.AssignedBusID != *helper.AssignedBusID {
		return echo.NewHTTPError(http.StatusForbidden, map[string]any{"error": "Student is not on your bus"})
	}
	status, err := services.UpsertTodayStatus(database.DB, req.StudentID, req.PickupStatus, call.UserID)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, status)
}
