package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/harshalgaikwad03/CDAC-Project-Id-26/database"
	"github.com/harshalgaikwad03/CDAC-Project-Id-26/services"
)

type SchoolHandler struct{}

func NewSchoolHandler() *SchoolHandler { return &SchoolHandler{} }

// GET /api/schools — public, feeds the signup dropdowns.
func (h *SchoolHandler) List(c echo.Context) error {
	schools, err := services.ListSchools(database.DB)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, schools)
}

// GET /api/schools/:id
func (h *SchoolHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	school, err := services.GetSchool(database.DB, id)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, school)
}

// GET /api/schools/me
func (h *SchoolHandler) Me(c echo.Context) error {
	school, err := services.SchoolByEmail(database.DB, caller(c).Email)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, school)
}

// GET /api/schools/agency/:agencyId — own agency only.
func (h *SchoolHandler) ByAgency(c echo.Context) error {
	agencyID, err := parseID(c, "agencyId")
	if err != nil {
		return err
	}
	if _, err := services.RequireOwnAgency(database.DB, caller(c), agencyID); err != nil {
		return respondErr(c, err)
	}
	schools, err := services.SchoolsByAgency(database.DB, agencyID)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, schools)
}

// PUT /api/schools/:id — the school itself, or the owning agency.
func (h *SchoolHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := services.RequireSchoolScope(database.DB, caller(c), id); err != nil {
		return respondErr(c, err)
	}
	var in services.SchoolUpdateInput
	if err := bindAndValidate(c, &in); err != nil {
		return err
	}
	school, err := services.UpdateSchool(database.DB, id, in)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, school)
}

// PUT /api/schools/:id/release — owning agency clears the link; the school
// keeps existing without an agency.
func (h *SchoolHandler) Release(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	school, err := services.ReleaseSchool(database.DB, caller(c), id)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, school)
}

// DELETE /api/schools/:id
func (h *SchoolHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := services.RequireSchoolScope(database.DB, caller(c), id); err != nil {
		return respondErr(c, err)
	}
	if err := services.DeleteSchool(database.DB, id); err != nil {
		return respondErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GET /api/schools/dashboard/summary
func (h *SchoolHandler) Dashboard(c echo.Context) error {
	summary, err := services.SchoolDashboard(database.DB, caller(c))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, summary)
}
