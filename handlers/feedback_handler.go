package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/harshalgaikwad03/CDAC-Project-Id-26/database"
	"github.com/harshalgaikwad03/CDAC-Project-Id-26/services"
)

type FeedbackHandler struct{}

func NewFeedbackHandler() *FeedbackHandler { return &FeedbackHandler{} }

// POST /api/feedback — any authenticated role; the author is always the
// caller, never the body.
func (h *FeedbackHandler) Create(c echo.Context) error {
	var in services.FeedbackInput
	if err := bindAndValidate(c, &in); err != nil {
		return err
	}
	fb, err := services.CreateFeedback(database.DB, caller(c), in)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusCreated, fb)
}

// GET /api/feedback
func (h *FeedbackHandler) List(c echo.Context) error {
	rows, err := services.ListFeedback(database.DB)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

// GET /api/feedback/:id
func (h *FeedbackHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	fb, err := services.GetFeedback(database.DB, id)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, fb)
}

// GET /api/feedback/author/:role/:id
func (h *FeedbackHandler) ByAuthor(c echo.Context) error {
	role := strings.TrimSpace(c.Param("role"))
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	rows, err := services.FeedbackByAuthor(database.DB, role, id)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}
