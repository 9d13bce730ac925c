package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ems-api/internal/application/attendance"
	"github.com/jhoicas/ems-api/internal/application/dto"
	"github.com/jhoicas/ems-api/internal/application/usecase"
)

// AttendanceHandler marca entrada/salida y consulta el historial.
type AttendanceHandler struct {
	uc      *attendance.AttendanceUseCase
	reports *usecase.ReportUseCase
	now     func() time.Time
}

// NewAttendanceHandler construye el handler.
func NewAttendanceHandler(uc *attendance.AttendanceUseCase, reports *usecase.ReportUseCase, now func() time.Time) *AttendanceHandler {
	return &AttendanceHandler{uc: uc, reports: reports, now: now}
}

// CheckIn godoc
// @Summary      Marcar entrada
// @Tags         attendance
// @Security     BearerAuth
// @Produce      json
// @Success      201  {object}  dto.AttendanceRecordResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/attendance/check-in [post]
func (h *AttendanceHandler) CheckIn(c *fiber.Ctx) error {
	rec, err := h.uc.CheckIn(c.Context(), GetUsername(c), h.now())
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewAttendanceRecordResponse(*rec))
}

// CheckOut godoc
// @Summary      Marcar salida
// @Tags         attendance
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  dto.AttendanceRecordResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/attendance/check-out [post]
func (h *AttendanceHandler) CheckOut(c *fiber.Ctx) error {
	rec, err := h.uc.CheckOut(c.Context(), GetUsername(c), h.now())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewAttendanceRecordResponse(*rec))
}

// Today godoc
// @Summary      Estado de asistencia de hoy
// @Tags         attendance
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  dto.TodayAttendanceResponse
// @Router       /api/attendance/today [get]
func (h *AttendanceHandler) Today(c *fiber.Ctx) error {
	now := h.now()
	rec, err := h.uc.TodayRecord(c.Context(), GetUsername(c), now)
	if err != nil {
		return writeError(c, err)
	}
	out := dto.TodayAttendanceResponse{Date: h.uc.Today(now).String()}
	if rec != nil {
		r := dto.NewAttendanceRecordResponse(*rec)
		out.Record = &r
		out.CheckedIn = rec.CheckedIn()
		out.CheckedOut = rec.CheckedOut()
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Historial de asistencia
// @Description  admin: registro completo con nombre y horas; employee: solo el propio.
// @Tags         attendance
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  dto.AttendanceLogRowDTO
// @Router       /api/attendance [get]
func (h *AttendanceHandler) List(c *fiber.Ctx) error {
	s := GetSession(c)
	if s.IsAdmin() {
		rows, err := h.reports.AttendanceLog(c.Context())
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(rows)
	}
	records, err := h.uc.Records(c.Context(), s.Username)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.AttendanceRecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, dto.NewAttendanceRecordResponse(r))
	}
	return c.JSON(out)
}
