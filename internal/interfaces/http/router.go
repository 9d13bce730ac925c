package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ems-api/internal/application/attendance"
	"github.com/jhoicas/ems-api/internal/application/auth"
	"github.com/jhoicas/ems-api/internal/application/directory"
	"github.com/jhoicas/ems-api/internal/application/leave"
	"github.com/jhoicas/ems-api/internal/application/usecase"
	"github.com/jhoicas/ems-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	DirectoryUC  *directory.DirectoryUseCase
	AttendanceUC *attendance.AttendanceUseCase
	LeaveUC      *leave.LeaveUseCase
	SettingsUC   *usecase.SettingsUseCase
	ReportUC     *usecase.ReportUseCase
	JWTSecret    string
	Now          func() time.Time // nil = time.Now
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	adminOnly := RequireRole(entity.RoleAdmin)
	anyRole := RequireRole(entity.RoleAdmin, entity.RoleEmployee)

	api := app.Group("/api")

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC, now)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/demo", authHandler.Demo)
	authGroup.Post("/logout", AuthMiddleware(deps.JWTSecret, deps.AuthUC), authHandler.Logout)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret, deps.AuthUC), authHandler.Me)

	// Rutas protegidas (requieren Bearer Token con rol)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.AuthUC), anyRole)

	// Employees (solo admin)
	employeeHandler := NewEmployeeHandler(deps.DirectoryUC)
	employees := protected.Group("/employees", adminOnly)
	employees.Get("/", employeeHandler.List)
	employees.Post("/", employeeHandler.Create)
	employees.Get("/:username", employeeHandler.Get)
	employees.Put("/:username", employeeHandler.Update)
	employees.Delete("/:username", employeeHandler.Delete)

	// Attendance
	attendanceHandler := NewAttendanceHandler(deps.AttendanceUC, deps.ReportUC, now)
	att := protected.Group("/attendance")
	att.Post("/check-in", attendanceHandler.CheckIn)
	att.Post("/check-out", attendanceHandler.CheckOut)
	att.Get("/today", attendanceHandler.Today)
	att.Get("/", attendanceHandler.List)

	// Leaves
	leaveHandler := NewLeaveHandler(deps.LeaveUC, now)
	leaves := protected.Group("/leaves")
	leaves.Post("/", leaveHandler.Apply)
	leaves.Get("/", leaveHandler.List)
	leaves.Post("/:index/approve", adminOnly, leaveHandler.Approve)
	leaves.Post("/:index/reject", adminOnly, leaveHandler.Reject)

	// Reports
	reportHandler := NewReportHandler(deps.ReportUC, now)
	protected.Get("/dashboard/stats", reportHandler.Stats)
	protected.Get("/salaries", reportHandler.Salaries)
	protected.Get("/reports/summary", reportHandler.Summary)
	protected.Get("/reports/export.pdf", adminOnly, reportHandler.ExportPDF)
	protected.Get("/reports/export.xlsx", adminOnly, reportHandler.ExportXLSX)

	// Settings
	settingsHandler := NewSettingsHandler(deps.SettingsUC)
	protected.Get("/settings", settingsHandler.Get)
	protected.Put("/settings", adminOnly, settingsHandler.Update)
}
