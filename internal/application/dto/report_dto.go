package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardStatsDTO indicadores del dashboard.
type DashboardStatsDTO struct {
	TotalEmployees int    `json:"total_employees"`
	PresentToday   int    `json:"present_today"`
	PendingLeaves  int    `json:"pending_leaves"`
	Today          string `json:"today"`
}

// SalaryLineDTO fila de la tabla de salarios estimados.
type SalaryLineDTO struct {
	Username   string          `json:"username"`
	Name       string          `json:"name"`
	Salary     decimal.Decimal `json:"salary"`
	WorkedDays int             `json:"worked_days"`
	Estimate   decimal.Decimal `json:"estimate"`
}

// SalaryReportDTO tabla de salarios con la configuración usada.
type SalaryReportDTO struct {
	WorkingDaysPerMonth int             `json:"working_days_per_month"`
	Items               []SalaryLineDTO `json:"items"`
}

// AttendanceSummaryDTO días registrados por empleado.
type AttendanceSummaryDTO struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Days     int    `json:"days"`
}

// LeaveTallyDTO conteo de solicitudes por estado.
type LeaveTallyDTO struct {
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

// SummaryReportDTO resumen de asistencia y permisos.
type SummaryReportDTO struct {
	Attendance []AttendanceSummaryDTO `json:"attendance"`
	Leaves     LeaveTallyDTO          `json:"leaves"`
}

// AttendanceLogRowDTO fila del registro de asistencia.
type AttendanceLogRowDTO struct {
	Username string     `json:"username"`
	Name     string     `json:"name"`
	Date     string     `json:"date"`
	CheckIn  *time.Time `json:"check_in,omitempty"`
	CheckOut *time.Time `json:"check_out,omitempty"`
	Hours    *string    `json:"hours,omitempty"`
}

// ReportDocument contenido de un reporte exportable (PDF u hoja de cálculo).
type ReportDocument struct {
	Title       string
	CompanyName string
	GeneratedAt time.Time
	Settings    SettingsDTO
	Salaries    []SalaryLineDTO
	Summary     SummaryReportDTO
	Attendance  []AttendanceLogRowDTO
}
