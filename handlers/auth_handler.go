package handlers

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/harshalgaikwad03/CDAC-Project-Id-26/database"
	"github.com/harshalgaikwad03/CDAC-Project-Id-26/middlewares"
	"github.com/harshalgaikwad03/CDAC-Project-Id-26/models"
	"github.com/harshalgaikwad03/CDAC-Project-Id-26/services"
)

const tokenTTL = 24 * time.Hour

type AuthHandler struct {
	JWTSecret string
}

func NewAuthHandler(secret string) *AuthHandler {
	return &AuthHandler{JWTSecret: secret}
}

func (h *AuthHandler) signJWT(u *models.User) (string, error) {
	now := time.Now()
	claims := middlewares.Claims{
		Sub:   u.ID,
		Email: u.Email,
		Role:  u.Role,
		Name:  u.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}
	tk := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tk.SignedString([]byte(h.JWTSecret))
}

type LoginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// POST /api/auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginReq
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	user, principalID, err := services.Login(database.DB, req.Email, req.Password)
	if err != nil {
		return respondErr(c, err)
	}
	token, err := h.signJWT(user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "TOKEN_GEN_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"token": token,
		"id":    principalID,
		"role":  user.Role,
		"email": user.Email,
		"name":  user.Name,
	})
}

// POST /api/agencies/signup
func (h *AuthHandler) SignupAgency(c echo.Context) error {
	var in services.SignupInput
	if err := bindAndValidate(c, &in); err != nil {
		return err
	}
	agency, err := services.SignupAgency(database.DB, in)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusCreated, agency)
}

// POST /api/schools/signup
func (h *AuthHandler) SignupSchool(c echo.Context) error {
	var in services.SignupInput
	if err := bindAndValidate(c, &in); err != nil {
		return err
	}
	school, err := services.SignupSchool(database.DB, in)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusCreated, school)
}

// POST /api/drivers/signup
func (h *AuthHandler) SignupDriver(c echo.Context) error {
	var in services.SignupInput
	if err := bindAndValidate(c, &in); err != nil {
		return err
	}
	driver, err := services.SignupDriver(database.DB, in)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusCreated, driver)
}

// POST /api/helpers/signup
func (h *AuthHandler) SignupHelper(c echo.Context) error {
	var in services.SignupInput
	if err := bindAndValidate(c, &in); err != nil {
		return err
	}
	helper, err := services.SignupHelper(database.DB, in)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusCreated, helper)
}

// POST /api/students/signup
func (h *AuthHandler) SignupStudent(c echo.Context) error {
	var in services.SignupInput
	if err := bindAndValidate(c, &in); err != nil {
		return err
	}
	student, err := services.SignupStudent(database.DB, in)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusCreated, student)
}

type ChangePasswordReq struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
}

// POST /api/user/change-password
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	var req ChangePasswordReq
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := services.ChangePassword(database.DB, caller(c), req.CurrentPassword, req.NewPassword); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"message": "Password updated"})
}
