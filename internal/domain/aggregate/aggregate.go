// Package aggregate contiene los cálculos derivados (servicio de dominio sin
// estado) sobre instantáneas del directorio, la asistencia, los permisos y
// la configuración.
package aggregate

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ems-api/internal/domain/calendar"
	"github.com/jhoicas/ems-api/internal/domain/entity"
)

// SalaryEstimate prorratea el salario mensual por días trabajados:
// salario * díasTrabajados / díasLaboralesDelMes, redondeado a 2 decimales.
func SalaryEstimate(e entity.Employee, workedDays, workingDaysPerMonth int) decimal.Decimal {
	if workingDaysPerMonth <= 0 {
		return decimal.Zero
	}
	return e.Salary.
		Mul(decimal.NewFromInt(int64(workedDays))).
		Div(decimal.NewFromInt(int64(workingDaysPerMonth))).
		Round(2)
}

// WorkedDays cuenta registros de asistencia por username. Cualquier registro
// cuenta como día trabajado, tenga o no salida.
func WorkedDays(records []entity.EmployeeRecord) map[string]int {
	out := make(map[string]int)
	for _, r := range records {
		out[r.Username]++
	}
	return out
}

// PresentToday cuenta empleados distintos con entrada registrada en today.
func PresentToday(records []entity.EmployeeRecord, today calendar.Date) int {
	seen := make(map[string]struct{})
	for _, r := range records {
		if r.Record.Date == today && r.Record.CheckedIn() {
			seen[r.Username] = struct{}{}
		}
	}
	return len(seen)
}

// LeaveStatusTally cuenta solicitudes por estado.
func LeaveStatusTally(requests []entity.LeaveRequest) map[entity.LeaveStatus]int {
	out := make(map[entity.LeaveStatus]int)
	for _, r := range requests {
		out[r.Status]++
	}
	return out
}

// AttendanceCount días registrados de un empleado (histórico completo).
type AttendanceCount struct {
	Username string
	Name     string
	Days     int
}

// AttendanceSummaryPerEmployee cuenta todos los registros de cada empleado,
// en el orden del directorio.
func AttendanceSummaryPerEmployee(employees []entity.Employee, records []entity.EmployeeRecord) []AttendanceCount {
	days := WorkedDays(records)
	out := make([]AttendanceCount, 0, len(employees))
	for _, e := range employees {
		out = append(out, AttendanceCount{Username: e.Username, Name: e.Name, Days: days[e.Username]})
	}
	return out
}

// SalaryLine fila de la tabla de salarios estimados.
type SalaryLine struct {
	Username   string
	Name       string
	Salary     decimal.Decimal
	WorkedDays int
	Estimate   decimal.Decimal
}

// SalaryTable estima el salario de cada empleado con la configuración dada.
func SalaryTable(employees []entity.Employee, records []entity.EmployeeRecord, settings entity.Settings) []SalaryLine {
	days := WorkedDays(records)
	wdpm := settings.Normalized().WorkingDaysPerMonth
	out := make([]SalaryLine, 0, len(employees))
	for _, e := range employees {
		worked := days[e.Username]
		out = append(out, SalaryLine{
			Username:   e.Username,
			Name:       e.Name,
			Salary:     e.Salary,
			WorkedDays: worked,
			Estimate:   SalaryEstimate(e, worked, wdpm),
		})
	}
	return out
}

// LogRow fila del registro de asistencia con horas calculadas.
type LogRow struct {
	Username string
	Name     string
	Date     calendar.Date
	CheckIn  *time.Time
	CheckOut *time.Time
	Hours    decimal.Decimal
	HasHours bool
}

// AttendanceLog une cada registro con el nombre del empleado. Si el empleado
// ya no existe en el directorio se muestra su username.
func AttendanceLog(employees []entity.Employee, records []entity.EmployeeRecord) []LogRow {
	names := make(map[string]string, len(employees))
	for _, e := range employees {
		names[e.Username] = e.Name
	}
	out := make([]LogRow, 0, len(records))
	for _, r := range records {
		name, ok := names[r.Username]
		if !ok || name == "" {
			name = r.Username
		}
		hours, has := r.Record.HoursWorked()
		out = append(out, LogRow{
			Username: r.Username,
			Name:     name,
			Date:     r.Record.Date,
			CheckIn:  r.Record.CheckIn,
			CheckOut: r.Record.CheckOut,
			Hours:    hours,
			HasHours: has,
		})
	}
	return out
}
