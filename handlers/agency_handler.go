package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/harshalgaikwad03/CDAC-Project-Id-26/database"
	"github.com/harshalgaikwad03/CDAC-Project-Id-26/services"
)

type AgencyHandler struct{}

func NewAgencyHandler() *AgencyHandler { return &AgencyHandler{} }

// GET /api/agencies — public, feeds the signup dropdowns.
func (h *AgencyHandler) List(c echo.Context) error {
	agencies, err := services.ListAgencies(database.DB)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, agencies)
}

// GET /api/agencies/:id
func (h *AgencyHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	agency, err := services.GetAgency(database.DB, id)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, agency)
}

// GET /api/agencies/me
func (h *AgencyHandler) Me(c echo.Context) error {
	agency, err := services.AgencyByEmail(database.DB, caller(c).Email)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, agency)
}

// PUT /api/agencies/:id — own profile only.
func (h *AgencyHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if _, err := services.RequireOwnAgency(database.DB, caller(c), id); err != nil {
		return respondErr(c, err)
	}
	var in services.AgencyUpdateInput
	if err := bindAndValidate(c, &in); err != nil {
		return err
	}
	agency, err := services.UpdateAgency(database.DB, id, in)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, agency)
}

// DELETE /api/agencies/:id — cascades over the whole fleet.
func (h *AgencyHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if _, err := services.RequireOwnAgency(database.DB, caller(c), id); err != nil {
		return respondErr(c, err)
	}
	if err := services.DeleteAgency(database.DB, id); err != nil {
		return respondErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GET /api/agencies/dashboard/summary
func (h *AgencyHandler) Dashboard(c echo.Context) error {
	summary, err := services.AgencyDashboard(database.DB, caller(c))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, summary)
}
