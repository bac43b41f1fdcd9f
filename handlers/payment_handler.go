package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/harshalgaikwad03/CDAC-Project-Id-26/database"
	"github.com/harshalgaikwad03/CDAC-Project-Id-26/services"
)

type PaymentHandler struct{}

func NewPaymentHandler() *PaymentHandler { return &PaymentHandler{} }

type PayReq struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

// POST /api/payment/pay — local stub: records a SUCCESS payment for the
// calling student and activates their pass.
func (h *PaymentHandler) Pay(c echo.Context) error {
	var req PayReq
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	payment, err := services.Pay(database.DB, caller(c), req.Amount)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusCreated, payment)
}

// GET /api/payment/history/:studentId
func (h *PaymentHandler) History(c echo.Context) error {
	studentID, err := parseID(c, "studentId")
	if err != nil {
		return err
	}
	rows, err := services.PaymentHistory(database.DB, caller(c), studentID)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}
