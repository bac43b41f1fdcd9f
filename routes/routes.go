package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/harshalgaikwad03/CDAC-Project-Id-26/handlers"
	"github.com/harshalgaikwad03/CDAC-Project-Id-26/middlewares"
	"github.com/harshalgaikwad03/CDAC-Project-Id-26/models"
)

// Register wires all HTTP routes. Role gates here are coarse; ownership
// checks live in the handlers and services.
func Register(e *echo.Echo, jwtSecret string) {
	auth := handlers.NewAuthHandler(jwtSecret)
	agency := handlers.NewAgencyHandler()
	school := handlers.NewSchoolHandler()
	bus := handlers.NewBusHandler()
	driver := handlers.NewDriverHandler()
	helper := handlers.NewBusHelperHandler()
	student := handlers.NewStudentHandler()
	status := handlers.NewStudentStatusHandler()
	feedback := handlers.NewFeedbackHandler()
	payment := handlers.NewPaymentHandler()

	e.GET("/healthz", handlers.Health)

	api := e.Group("/api")

	// ===== Public =====
	api.POST("/auth/login", auth.Login)
	api.POST("/agencies/signup", auth.SignupAgency)
	api.POST("/schools/signup", auth.SignupSchool)
	api.POST("/drivers/signup", auth.SignupDriver)
	api.POST("/helpers/signup", auth.SignupHelper)
	api.POST("/students/signup", auth.SignupStudent)
	// signup dropdowns
	api.GET("/agencies", agency.List)
	api.GET("/schools", school.List)

	authMW := middlewares.RequireAuth(jwtSecret)
	authed := api.Group("", authMW)
	agencyOnly := middlewares.RequireRole(models.RoleAgency)
	schoolOnly := middlewares.RequireRole(models.RoleSchool)
	driverOnly := middlewares.RequireRole(models.RoleDriver)
	helperOnly := middlewares.RequireRole(models.RoleHelper)
	studentOnly := middlewares.RequireRole(models.RoleStudent)
	admins := middlewares.RequireRole(models.RoleAgency, models.RoleSchool)

	// ===== Account =====
	authed.POST("/user/change-password", auth.ChangePassword)

	// ===== Agencies =====
	authed.GET("/agencies/me", agency.Me, agencyOnly)
	authed.GET("/agencies/dashboard/summary", agency.Dashboard, agencyOnly)
	authed.GET("/agencies/:id", agency.Get)
	authed.PUT("/agencies/:id", agency.Update, agencyOnly)
	authed.DELETE("/agencies/:id", agency.Delete, agencyOnly)

	// ===== Schools =====
	authed.GET("/schools/me", school.Me, schoolOnly)
	authed.GET("/schools/dashboard/summary", school.Dashboard, schoolOnly)
	authed.GET("/schools/agency/:agencyId", school.ByAgency, agencyOnly)
	authed.GET("/schools/:id", school.Get)
	authed.PUT("/schools/:id/release", school.Release, agencyOnly)
	authed.PUT("/schools/:id", school.Update, admins)
	authed.DELETE("/schools/:id", school.Delete, admins)

	// ===== Buses =====
	authed.POST("/buses", bus.Create, agencyOnly)
	authed.GET("/buses/agency/:agencyId", bus.ByAgency, agencyOnly)
	authed.GET("/buses/school/me", bus.BySchoolMe, schoolOnly)
	authed.GET("/buses/school/:schoolId", bus.BySchool, admins)
	authed.GET("/buses/driver/:driverId", bus.ByDriver, middlewares.RequireRole(models.RoleDriver, models.RoleAgency))
	authed.PUT("/buses/:busId/assign-helper/:helperId", bus.AssignHelper, admins)
	authed.PUT("/buses/:busId/unassign-driver", bus.UnassignDriver, agencyOnly)
	authed.GET("/buses/:id", bus.Get)
	authed.PUT("/buses/:id", bus.Update, agencyOnly)
	authed.DELETE("/buses/:id", bus.Delete, agencyOnly)

	// ===== Drivers =====
	authed.GET("/drivers/me", driver.Me, driverOnly)
	authed.GET("/drivers/dashboard/summary", driver.Dashboard, driverOnly)
	authed.POST("/drivers/student-status", driver.UpsertStudentStatus, driverOnly)
	authed.GET("/drivers/agency/:agencyId/unassigned", driver.UnassignedByAgency, agencyOnly)
	authed.GET("/drivers/agency/:agencyId", driver.ByAgency, agencyOnly)
	authed.GET("/drivers/:id", driver.Get)
	authed.PUT("/drivers/:id", driver.Update, agencyOnly)
	authed.DELETE("/drivers/:id", driver.Delete, agencyOnly)

	// ===== Bus helpers =====
	authed.GET("/helpers/me", helper.Me, helperOnly)
	authed.GET("/helpers/students", helper.Students, helperOnly)
	authed.GET("/helpers/dashboard/summary", helper.Dashboard, helperOnly)
	authed.POST("/helpers/student-status", helper.UpsertStudentStatus, helperOnly)
	authed.GET("/helpers/school/:schoolId", helper.BySchool, admins)
	authed.GET("/helpers/:id", helper.Get, admins)
	authed.PUT("/helpers/:id", helper.Update, admins)
	authed.DELETE("/helpers/:id", helper.Delete, admins)

	// ===== Students =====
	authed.GET("/students/me", student.Me, studentOnly)
	authed.GET("/students/school/:schoolId", student.BySchool, admins)
	authed.GET("/students/bus/:busId", student.ByBus, admins)
	authed.PUT("/students/:id/activate-pass", student.ActivatePass, admins)
	authed.GET("/students/:id", student.Get, middlewares.RequireRole(models.RoleAgency, models.RoleSchool, models.RoleStudent))
	authed.PUT("/students/:id", student.Update, admins)
	authed.DELETE("/students/:id", student.Delete, admins)

	// ===== Daily status ledger =====
	statusReaders := middlewares.RequireRole(models.RoleAgency, models.RoleSchool, models.RoleStudent)
	authed.GET("/student-status/today/:studentId", status.Today, statusReaders)
	authed.GET("/student-status/student/:studentId", status.History, statusReaders)
	authed.GET("/student-status/count/school/:schoolId", status.CountBySchool, admins)
	authed.GET("/student-status/count/bus/:busId", status.CountByBus, admins)
	authed.POST("/student-status", status.Create, admins)
	authed.GET("/student-status", status.List, admins)
	authed.GET("/student-status/:id", status.Get, admins)
	authed.PUT("/student-status/:id", status.Update, admins)
	authed.DELETE("/student-status/:id", status.Delete, admins)

	// ===== Feedback =====
	authed.POST("/feedback", feedback.Create)
	authed.GET("/feedback", feedback.List, agencyOnly)
	authed.GET("/feedback/author/:role/:id", feedback.ByAuthor, agencyOnly)
	authed.GET("/feedback/:id", feedback.Get, agencyOnly)

	// ===== Payment stub =====
	authed.POST("/payment/pay", payment.Pay, studentOnly)
	authed.GET("/payment/history/:studentId", payment.History, middlewares.RequireRole(models.RoleAgency, models.RoleSchool, models.RoleStudent))
}
