package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/harshalgaikwad03/CDAC-Project-Id-26/database"
	"github.com/harshalgaikwad03/CDAC-Project-Id-26/services"
)

type StudentStatusHandler struct{}

func NewStudentStatusHandler() *StudentStatusHandler { return &StudentStatusHandler{} }

// GET /api/student-status/today/:studentId — 204 while no row exists yet;
// the frontend renders that as pending.
func (h *StudentStatusHandler) Today(c echo.Context) error {
	studentID, err := parseID(c, "studentId")
	if err != nil {
		return err
	}
	if err := services.CheckStudentAccess(database.DB, caller(c), studentID); err != nil {
		return respondErr(c, err)
	}
	status, err := services.TodayStatus(database.DB, studentID)
	if err != nil {
		return respondErr(c, err)
	}
	if status == nil {
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(http.StatusOK, status)
}

// GET /api/student-status/student/:studentId
func (h *StudentStatusHandler) History(c echo.Context) error {
	studentID, err := parseID(c, "studentId")
	if err != nil {
		return err
	}
	if err := services.CheckStudentAccess(database.DB, caller(c), studentID); err != nil {
		return respondErr(c, err)
	}
	rows, err := services.StatusHistory(database.DB, studentID)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

// POST /api/student-status — administrative upsert of today's row.
func (h *StudentStatusHandler) Create(c echo.Context) error {
	var req StatusUpsertReq
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	status, err := services.UpsertTodayStatus(database.DB, req.StudentID, req.PickupStatus, caller(c).UserID)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusCreated, status)
}

// GET /api/student-status
func (h *StudentStatusHandler) List(c echo.Context) error {
	rows, err := services.ListStatuses(database.DB)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

// GET /api/student-status/:id
func (h *StudentStatusHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	status, err := services.GetStatus(database.DB, id)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, status)
}

// PUT /api/student-status/:id
func (h *StudentStatusHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var in services.StatusUpdateInput
	if err := bindAndValidate(c, &in); err != nil {
		return err
	}
	status, err := services.UpdateStatus(database.DB, id, in, caller(c).UserID)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, status)
}

// DELETE /api/student-status/:id
func (h *StudentStatusHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := services.DeleteStatus(database.DB, id); err != nil {
		return respondErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GET /api/student-status/count/school/:schoolId?date=YYYY-MM-DD&pickup_status=PICKED
func (h *StudentStatusHandler) CountBySchool(c echo.Context) error {
	schoolID, err := parseID(c, "schoolId")
	if err != nil {
		return err
	}
	if err := services.RequireSchoolScope(database.DB, caller(c), schoolID); err != nil {
		return respondErr(c, err)
	}
	date := c.QueryParam("date")
	if date == "" {
		date = services.TodayDate()
	} else if !services.ValidDate(date) {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_DATE"})
	}
	n, err := services.CountBySchoolAndDate(database.DB, schoolID, date, c.QueryParam("pickup_status"))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"school_id": schoolID, "date": date, "count": n})
}

// GET /api/student-status/count/bus/:busId?pickup_status=DROPPED — today only.
func (h *StudentStatusHandler) CountByBus(c echo.Context) error {
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
	date := services.TodayDate()
	n, err := services.CountByBusAndDate(database.DB, busID, date, c.QueryParam("pickup_status"))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"bus_id": busID, "date": date, "count": n})
}
