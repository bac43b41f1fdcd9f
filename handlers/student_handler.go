package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/harshalgaikwad03/CDAC-Project-Id-26/database"
	"github.com/harshalgaikwad03/CDAC-Project-Id-26/services"
)

type StudentHandler struct{}

func NewStudentHandler() *StudentHandler { return &StudentHandler{} }

// GET /api/students/:id — students may only read themselves.
func (h *StudentHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := services.CheckStudentAccess(database.DB, caller(c), id); err != nil {
		return respondErr(c, err)
	}
	student, err := services.GetStudent(database.DB, id)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, student)
}

// GET /api/students/me
func (h *StudentHandler) Me(c echo.Context) error {
	student, err := services.StudentByEmail(database.DB, caller(c).Email)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, student)
}

// GET /api/students/school/:schoolId
func (h *StudentHandler) BySchool(c echo.Context) error {
	schoolID, err := parseID(c, "schoolId")
	if err != nil {
		return err
	}
	if err := services.RequireSchoolScope(database.DB, caller(c), schoolID); err != nil {
		return respondErr(c, err)
	}
	students, err := services.StudentsBySchool(database.DB, schoolID)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, students)
}

// GET /api/students/bus/:busId
func (h *StudentHandler) ByBus(c echo.Context) error {
	busID, err := parseID(c, "busId")
	if err != nil {
		return err
	}
	bus, err := services.GetBus(database.DB, busID)
	if err != nil {
		return respondErr(c, err)
	}
	if err := requireBusScope(c, bus); err != nil {
		return err
	}
	students, err := services.StudentsByBus(database.DB, busID)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, students)
}

// PUT /api/students/:id — the student's school (or its agency).
func (h *StudentHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	student, err := services.GetStudent(database.DB, id)
	if err != nil {
		return respondErr(c, err)
	}
	if err := services.RequireSchoolScope(database.DB, caller(c), student.SchoolID); err != nil {
		return respondErr(c, err)
	}
	var in services.StudentUpdateInput
	if err := bindAndValidate(c, &in); err != nil {
		return err
	}
	student, err = services.UpdateStudent(database.DB, id, in)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, student)
}

// DELETE /api/students/:id — removes the ledger history with the student.
func (h *StudentHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	student, err := services.GetStudent(database.DB, id)
	if err != nil {
		return respondErr(c, err)
	}
	if err := services.RequireSchoolScope(database.DB, caller(c), student.SchoolID); err != nil {
		return respondErr(c, err)
	}
	if err := services.DeleteStudent(database.DB, id); err != nil {
		return respondErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// PUT /api/students/:id/activate-pass — the only write path for pass_status
// besides payment.
func (h *StudentHandler) ActivatePass(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	student, err := services.GetStudent(database.DB, id)
	if err != nil {
		return respondErr(c, err)
	}
	if err := services.RequireSchoolScope(database.DB, caller(c), student.SchoolID); err != nil {
		return respondErr(c, err)
	}
	student, err = services.ActivatePass(database.DB, id)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, student)
}
