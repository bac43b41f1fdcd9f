package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/harshalgaikwad03/CDAC-Project-Id-26/services"
)

var validate = validator.New()

// caller rebuilds the verified identity that RequireAuth stored on the context.
func caller(c echo.Context) services.Caller {
	userID, _ := c.Get("user_id").(uint)
	email, _ := c.Get("email").(string)
	role, _ := c.Get("role").(string)
	return services.Caller{UserID: userID, Email: email, Role: role}
}

func parseID(c echo.Context, name string) (uint, error) {
	n, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || n == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_ID"})
	}
	return uint(n), nil
}

func bindAndValidate(c echo.Context, v any) error {
	if err := c.Bind(v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if err := validate.Struct(v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return nil
}

// respondErr maps a service failure kind to its HTTP status. Unknown errors
// never leak their text.
func respondErr(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch services.KindOf(err) {
	case services.KindNotFound:
		status = http.StatusNotFound
	case services.KindForbidden:
		status = http.StatusForbidden
	case services.KindConflict:
		status = http.StatusConflict
	case services.KindValidation:
		status = http.StatusBadRequest
	case services.KindUnauthorized:
		status = http.StatusUnauthorized
	default:
		return echo.NewHTTPError(status, map[string]any{"error": "INTERNAL_ERROR"})
	}
	return echo.NewHTTPError(status, map[string]any{"error": err.Error()})
}
