package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/harshalgaikwad03/CDAC-Project-Id-26/database"
	"github.com/harshalgaikwad03/CDAC-Project-Id-26/services"
)

type DriverHandler struct{}

func NewDriverHandler() *DriverHandler { return &DriverHandler{} }

// GET /api/drivers/:id
func (h *DriverHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	driver, err := services.GetDriver(database.DB, id)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, driver)
}

// GET /api/drivers/me
func (h *DriverHandler) Me(c echo.Context) error {
	driver, err := services.DriverByEmail(database.DB, caller(c).Email)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, driver)
}

// GET /api/drivers/agency/:agencyId
func (h *DriverHandler) ByAgency(c echo.Context) error {
	agencyID, err := parseID(c, "agencyId")
	if err != nil {
		return err
	}
	if _, err := services.RequireOwnAgency(database.DB, caller(c), agencyID); err != nil {
		return respondErr(c, err)
	}
	drivers, err := services.DriversByAgency(database.DB, agencyID)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, drivers)
}

// GET /api/drivers/agency/:agencyId/unassigned — drivers not on any bus,
// the candidate list for bus assignment.
func (h *DriverHandler) UnassignedByAgency(c echo.Context) error {
	agencyID, err := parseID(c, "agencyId")
	if err != nil {
		return err
	}
	if _, err := services.RequireOwnAgency(database.DB, caller(c), agencyID); err != nil {
		return respondErr(c, err)
	}
	drivers, err := services.UnassignedDriversByAgency(database.DB, agencyID)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, drivers)
}

// PUT /api/drivers/:id — owning agency only.
func (h *DriverHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	driver, err := services.GetDriver(database.DB, id)
	if err != nil {
		return respondErr(c, err)
	}
	if _, err := services.RequireOwnAgency(database.DB, caller(c), driver.AgencyID); err != nil {
		return respondErr(c, err)
	}
	var in services.DriverUpdateInput
	if err := bindAndValidate(c, &in); err != nil {
		return err
	}
	driver, err = services.UpdateDriver(database.DB, id, in)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, driver)
}

// DELETE /api/drivers/:id — Conflict while a bus still references the driver.
func (h *DriverHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	driver, err := services.GetDriver(database.DB, id)
	if err != nil {
		return respondErr(c, err)
	}
	if _, err := services.RequireOwnAgency(database.DB, caller(c), driver.AgencyID); err != nil {
		return respondErr(c, err)
	}
	if err := services.DeleteDriver(database.DB, id); err != nil {
		return respondErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GET /api/drivers/dashboard/summary
func (h *DriverHandler) Dashboard(c echo.Context) error {
	summary, err := services.DriverDashboard(database.DB, caller(c))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, summary)
}

type StatusUpsertReq struct {
	StudentID    uint   `json:"student_id" validate:"required"`
	PickupStatus string `json:"pickup_status"`
}

// POST /api/drivers/student-status — the driver marks a rider of their own
// bus picked or dropped for today.
func (h *DriverHandler) UpsertStudentStatus(c echo.Context) error {
	var req StatusUpsertReq
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	call := caller(c)
	driver, err := services.DriverByEmail(database.DB, call.Email)
	if err != nil {
		return respondErr(c, err)
	}
	bus, err := services.BusByDriver(database.DB, driver.ID)
	if err != nil {
		return respondErr(c, err)
	}
	student, err := services.GetStudent(database.DB, req.StudentID)
	if err != nil {
		return respondErr(c, err)
	}
	if bus == nil || student.AssignedBusID == nil || *student.AssignedBusID != bus.ID {
		return echo.NewHTTPError(http.StatusForbidden, map[string]any{"error": "Student is not on your bus"})
	}
	status, err := services.UpsertTodayStatus(database.DB, req.StudentID, req.PickupStatus, call.UserID)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, status)
}
