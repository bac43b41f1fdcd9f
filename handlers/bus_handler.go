package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/harshalgaikwad03/CDAC-Project-Id-26/database"
	"github.com/harshalgaikwad03/CDAC-Project-Id-26/models"
	"github.com/harshalgaikwad03/CDAC-Project-Id-26/services"
)

type BusHandler struct{}

func NewBusHandler() *BusHandler { return &BusHandler{} }

// requireBusScope lets the owning agency, or the school the bus serves, act
// on the bus.
func requireBusScope(c echo.Context, bus *models.Bus) error {
	call := caller(c)
	switch call.Role {
	case models.RoleAgency:
		if _, err := services.RequireOwnAgency(database.DB, call, bus.AgencyID); err != nil {
			return respondErr(c, err)
		}
		return nil
	case models.RoleSchool:
		if bus.SchoolID == nil {
			return echo.NewHTTPError(http.StatusForbidden, map[string]any{"error": "Bus is not assigned to your school"})
		}
		if err := services.RequireSchoolScope(database.DB, call, *bus.SchoolID); err != nil {
			return respondErr(c, err)
		}
		return nil
	}
	return echo.NewHTTPError(http.StatusForbidden, map[string]any{"error": "FORBIDDEN"})
}

// POST /api/buses
func (h *BusHandler) Create(c echo.Context) error {
	var in services.BusInput
	if err := bindAndValidate(c, &in); err != nil {
		return err
	}
	bus, err := services.CreateBus(database.DB, caller(c), in)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusCreated, bus)
}

// GET /api/buses/:id
func (h *BusHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	detail, err := services.GetBusDetail(database.DB, id)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, detail)
}

// PUT /api/buses/:id
func (h *BusHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var in services.BusInput
	if err := bindAndValidate(c, &in); err != nil {
		return err
	}
	bus, err := services.UpdateBus(database.DB, caller(c), id, in)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, bus)
}

// DELETE /api/buses/:id
func (h *BusHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := services.DeleteBus(database.DB, caller(c), id); err != nil {
		return respondErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// PUT /api/buses/:busId/assign-helper/:helperId
func (h *BusHandler) AssignHelper(c echo.Context) error {
	busID, err := parseID(c, "busId")
	if err != nil {
		return err
	}
	helperID, err := parseID(c, "helperId")
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
	bus, err = services.AssignHelper(database.DB, busID, helperID)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, bus)
}

// PUT /api/buses/:busId/unassign-driver
func (h *BusHandler) UnassignDriver(c echo.Context) error {
	busID, err := parseID(c, "busId")
	if err != nil {
		return err
	}
	bus, err := services.GetBus(database.DB, busID)
	if err != nil {
		return respondErr(c, err)
	}
	if _, err := services.RequireOwnAgency(database.DB, caller(c), bus.AgencyID); err != nil {
		return respondErr(c, err)
	}
	if err := services.UnassignDriver(database.DB, busID); err != nil {
		return respondErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GET /api/buses/agency/:agencyId
func (h *BusHandler) ByAgency(c echo.Context) error {
	agencyID, err := parseID(c, "agencyId")
	if err != nil {
		return err
	}
	if _, err := services.RequireOwnAgency(database.DB, caller(c), agencyID); err != nil {
		return respondErr(c, err)
	}
	buses, err := services.BusesByAgency(database.DB, agencyID)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, buses)
}

// GET /api/buses/school/:schoolId
func (h *BusHandler) BySchool(c echo.Context) error {
	schoolID, err := parseID(c, "schoolId")
	if err != nil {
		return err
	}
	if err := services.RequireSchoolScope(database.DB, caller(c), schoolID); err != nil {
		return respondErr(c, err)
	}
	buses, err := services.BusesBySchool(database.DB, schoolID)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, buses)
}

// GET /api/buses/school/me
func (h *BusHandler) BySchoolMe(c echo.Context) error {
	school, err := services.SchoolByEmail(database.DB, caller(c).Email)
	if err != nil {
		return respondErr(c, err)
	}
	buses, err := services.BusesBySchool(database.DB, school.ID)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, buses)
}

// GET /api/buses/driver/:driverId — 204 while the driver has no bus.
func (h *BusHandler) ByDriver(c echo.Context) error {
	driverID, err := parseID(c, "driverId")
	if err != nil {
		return err
	}
	call := caller(c)
	driver, err := services.GetDriver(database.DB, driverID)
	if err != nil {
		return respondErr(c, err)
	}
	switch call.Role {
	case models.RoleDriver:
		if driver.User.Email != call.Email {
			return echo.NewHTTPError(http.StatusForbidden, map[string]any{"error": "Not your record"})
		}
	case models.RoleAgency:
		if _, err := services.RequireOwnAgency(database.DB, call, driver.AgencyID); err != nil {
			return respondErr(c, err)
		}
	}
	bus, err := services.BusByDriver(database.DB, driverID)
	if err != nil {
		return respondErr(c, err)
	}
	if bus == nil {
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(http.StatusOK, bus)
}
