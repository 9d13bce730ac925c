package dto

import (
	"time"

	"github.com/jhoicas/ems-api/internal/domain/entity"
)

// AttendanceRecordResponse registro diario de asistencia.
type AttendanceRecordResponse struct {
	Date     string     `json:"date"`
	CheckIn  *time.Time `json:"check_in,omitempty"`
	CheckOut *time.Time `json:"check_out,omitempty"`
	Hours    *string    `json:"hours,omitempty"` // solo si hay entrada y salida
}

// NewAttendanceRecordResponse proyecta un registro con sus horas trabajadas.
func NewAttendanceRecordResponse(r entity.AttendanceRecord) AttendanceRecordResponse {
	out := AttendanceRecordResponse{Date: r.Date.String(), CheckIn: r.CheckIn, CheckOut: r.CheckOut}
	if h, ok := r.HoursWorked(); ok {
		s := h.StringFixed(2)
		out.Hours = &s
	}
	return out
}

// TodayAttendanceResponse estado de asistencia del día para el usuario.
type TodayAttendanceResponse struct {
	Date       string                    `json:"date"`
	CheckedIn  bool                      `json:"checked_in"`
	CheckedOut bool                      `json:"checked_out"`
	Record     *AttendanceRecordResponse `json:"record,omitempty"`
}
