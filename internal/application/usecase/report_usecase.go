package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/ems-api/internal/application/dto"
	"github.com/jhoicas/ems-api/internal/application/ports"
	"github.com/jhoicas/ems-api/internal/domain"
	"github.com/jhoicas/ems-api/internal/domain/aggregate"
	"github.com/jhoicas/ems-api/internal/domain/calendar"
	"github.com/jhoicas/ems-api/internal/domain/entity"
)

// ErrExporterNotConfigured el formato de exportación no tiene generador.
var ErrExporterNotConfigured = errors.New("exportador no configurado")

// EmployeeSource lectura del directorio.
type EmployeeSource interface {
	List(ctx context.Context, filter string) ([]entity.Employee, error)
}

// AttendanceSource lectura del libro de asistencia.
type AttendanceSource interface {
	AllRecords(ctx context.Context) ([]entity.EmployeeRecord, error)
	Today(now time.Time) calendar.Date
}

// LeaveSource lectura del registro de permisos.
type LeaveSource interface {
	List(ctx context.Context) ([]entity.LeaveRequest, error)
}

// SettingsSource lectura de la configuración de nómina.
type SettingsSource interface {
	Get(ctx context.Context) (entity.Settings, error)
}

// ReportUseCase arma los reportes a partir de instantáneas de cada componente.
// Los cálculos los hace el paquete aggregate; aquí solo se leen y se proyectan.
type ReportUseCase struct {
	employees   EmployeeSource
	attendance  AttendanceSource
	leaves      LeaveSource
	settings    SettingsSource
	pdf         ports.ReportPDFGenerator
	xlsx        ports.ReportSpreadsheetExporter
	companyName string
}

// NewReportUseCase construye el caso de uso. pdf y xlsx pueden ser nil.
func NewReportUseCase(
	employees EmployeeSource,
	attendance AttendanceSource,
	leaves LeaveSource,
	settings SettingsSource,
	pdf ports.ReportPDFGenerator,
	xlsx ports.ReportSpreadsheetExporter,
	companyName string,
) *ReportUseCase {
	return &ReportUseCase{
		employees:   employees,
		attendance:  attendance,
		leaves:      leaves,
		settings:    settings,
		pdf:         pdf,
		xlsx:        xlsx,
		companyName: companyName,
	}
}

type snapshot struct {
	employees []entity.Employee
	records   []entity.EmployeeRecord
	leaves    []entity.LeaveRequest
	settings  entity.Settings
}

// load lee los cuatro componentes en paralelo; son lecturas independientes.
func (uc *ReportUseCase) load(ctx context.Context) (*snapshot, error) {
	type employeesResult struct {
		rows []entity.Employee
		err  error
	}
	type recordsResult struct {
		rows []entity.EmployeeRecord
		err  error
	}
	type leavesResult struct {
		rows []entity.LeaveRequest
		err  error
	}
	type settingsResult struct {
		s   entity.Settings
		err error
	}

	empChan := make(chan employeesResult, 1)
	recChan := make(chan recordsResult, 1)
	leaveChan := make(chan leavesResult, 1)
	setChan := make(chan settingsResult, 1)

	go func() {
		rows, err := uc.employees.List(ctx, "")
		empChan <- employeesResult{rows, err}
	}()
	go func() {
		rows, err := uc.attendance.AllRecords(ctx)
		recChan <- recordsResult{rows, err}
	}()
	go func() {
		rows, err := uc.leaves.List(ctx)
		leaveChan <- leavesResult{rows, err}
	}()
	go func() {
		s, err := uc.settings.Get(ctx)
		setChan <- settingsResult{s, err}
	}()

	empRes := <-empChan
	recRes := <-recChan
	leaveRes := <-leaveChan
	setRes := <-setChan

	if empRes.err != nil {
		return nil, fmt.Errorf("reporte: empleados: %w", empRes.err)
	}
	if recRes.err != nil {
		return nil, fmt.Errorf("reporte: asistencia: %w", recRes.err)
	}
	if leaveRes.err != nil {
		return nil, fmt.Errorf("reporte: permisos: %w", leaveRes.err)
	}
	if setRes.err != nil {
		return nil, fmt.Errorf("reporte: configuración: %w", setRes.err)
	}
	return &snapshot{
		employees: empRes.rows,
		records:   recRes.rows,
		leaves:    leaveRes.rows,
		settings:  setRes.s,
	}, nil
}

// Dashboard total de empleados, presentes hoy y permisos pendientes.
func (uc *ReportUseCase) Dashboard(ctx context.Context, now time.Time) (*dto.DashboardStatsDTO, error) {
	snap, err := uc.load(ctx)
	if err != nil {
		return nil, err
	}
	today := uc.attendance.Today(now)
	tally := aggregate.LeaveStatusTally(snap.leaves)
	return &dto.DashboardStatsDTO{
		TotalEmployees: len(snap.employees),
		PresentToday:   aggregate.PresentToday(snap.records, today),
		PendingLeaves:  tally[entity.LeaveStatusPending],
		Today:          today.String(),
	}, nil
}

// Salaries tabla de salarios estimados según los días trabajados.
func (uc *ReportUseCase) Salaries(ctx context.Context) (*dto.SalaryReportDTO, error) {
	snap, err := uc.load(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.SalaryReportDTO{
		WorkingDaysPerMonth: snap.settings.Normalized().WorkingDaysPerMonth,
		Items:               toSalaryLines(aggregate.SalaryTable(snap.employees, snap.records, snap.settings)),
	}, nil
}

// Summary asistencia por empleado y conteo de permisos por estado.
func (uc *ReportUseCase) Summary(ctx context.Context) (*dto.SummaryReportDTO, error) {
	snap, err := uc.load(ctx)
	if err != nil {
		return nil, err
	}
	return summaryOf(snap), nil
}

// AttendanceLog registro completo de asistencia con nombre y horas.
func (uc *ReportUseCase) AttendanceLog(ctx context.Context) ([]dto.AttendanceLogRowDTO, error) {
	snap, err := uc.load(ctx)
	if err != nil {
		return nil, err
	}
	return toLogRows(aggregate.AttendanceLog(snap.employees, snap.records)), nil
}

// ExportPDF genera el reporte completo en PDF. Solo admin.
func (uc *ReportUseCase) ExportPDF(ctx context.Context, actor entity.Session, now time.Time) ([]byte, error) {
	if uc.pdf == nil {
		return nil, ErrExporterNotConfigured
	}
	doc, err := uc.document(ctx, actor, now)
	if err != nil {
		return nil, err
	}
	return uc.pdf.GenerateReportPDF(ctx, doc)
}

// ExportXLSX genera el reporte completo como hoja de cálculo. Solo admin.
func (uc *ReportUseCase) ExportXLSX(ctx context.Context, actor entity.Session, now time.Time) ([]byte, error) {
	if uc.xlsx == nil {
		return nil, ErrExporterNotConfigured
	}
	doc, err := uc.document(ctx, actor, now)
	if err != nil {
		return nil, err
	}
	return uc.xlsx.ExportReportXLSX(ctx, doc)
}

func (uc *ReportUseCase) document(ctx context.Context, actor entity.Session, now time.Time) (*dto.ReportDocument, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	snap, err := uc.load(ctx)
	if err != nil {
		return nil, err
	}
	s := snap.settings.Normalized()
	return &dto.ReportDocument{
		Title:       "Reporte de nómina y asistencia",
		CompanyName: uc.companyName,
		GeneratedAt: now,
		Settings: dto.SettingsDTO{
			WorkingDaysPerMonth: s.WorkingDaysPerMonth,
			WorkingHoursPerDay:  s.WorkingHoursPerDay,
		},
		Salaries:   toSalaryLines(aggregate.SalaryTable(snap.employees, snap.records, s)),
		Summary:    *summaryOf(snap),
		Attendance: toLogRows(aggregate.AttendanceLog(snap.employees, snap.records)),
	}, nil
}

func summaryOf(snap *snapshot) *dto.SummaryReportDTO {
	counts := aggregate.AttendanceSummaryPerEmployee(snap.employees, snap.records)
	out := &dto.SummaryReportDTO{Attendance: make([]dto.AttendanceSummaryDTO, 0, len(counts))}
	for _, c := range counts {
		out.Attendance = append(out.Attendance, dto.AttendanceSummaryDTO{Username: c.Username, Name: c.Name, Days: c.Days})
	}
	tally := aggregate.LeaveStatusTally(snap.leaves)
	out.Leaves = dto.LeaveTallyDTO{
		Pending:  tally[entity.LeaveStatusPending],
		Approved: tally[entity.LeaveStatusApproved],
		Rejected: tally[entity.LeaveStatusRejected],
	}
	return out
}

func toSalaryLines(lines []aggregate.SalaryLine) []dto.SalaryLineDTO {
	out := make([]dto.SalaryLineDTO, 0, len(lines))
	for _, l := range lines {
		out = append(out, dto.SalaryLineDTO{
			Username:   l.Username,
			Name:       l.Name,
			Salary:     l.Salary,
			WorkedDays: l.WorkedDays,
			Estimate:   l.Estimate,
		})
	}
	return out
}

func toLogRows(rows []aggregate.LogRow) []dto.AttendanceLogRowDTO {
	out := make([]dto.AttendanceLogRowDTO, 0, len(rows))
	for _, r := range rows {
		row := dto.AttendanceLogRowDTO{
			Username: r.Username,
			Name:     r.Name,
			Date:     r.Date.String(),
			CheckIn:  r.CheckIn,
			CheckOut: r.CheckOut,
		}
		if r.HasHours {
			h := r.Hours.StringFixed(2)
			row.Hours = &h
		}
		out = append(out, row)
	}
	return out
}
