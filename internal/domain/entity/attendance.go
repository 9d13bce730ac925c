package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ems-api/internal/domain/calendar"
)

var msPerHour = decimal.NewFromInt(int64(time.Hour / time.Millisecond))

// AttendanceRecord registro diario de entrada/salida de un empleado.
// Hay a lo sumo un registro por (empleado, día).
type AttendanceRecord struct {
	Date     calendar.Date `json:"date"`
	CheckIn  *time.Time    `json:"check_in"`
	CheckOut *time.Time    `json:"check_out"`
}

// CheckedIn indica si ya tiene hora de entrada.
func (r AttendanceRecord) CheckedIn() bool { return r.CheckIn != nil }

// CheckedOut indica si ya tiene hora de salida.
func (r AttendanceRecord) CheckedOut() bool { return r.CheckOut != nil }

// HoursWorked devuelve (salida - entrada) en horas redondeadas a 2 decimales.
// ok es false mientras falte alguno de los dos timestamps.
func (r AttendanceRecord) HoursWorked() (hours decimal.Decimal, ok bool) {
	if r.CheckIn == nil || r.CheckOut == nil {
		return decimal.Zero, false
	}
	ms := decimal.NewFromInt(r.CheckOut.Sub(*r.CheckIn).Milliseconds())
	return ms.Div(msPerHour).Round(2), true
}

// EmployeeRecord un registro de asistencia junto con el username de su dueño.
type EmployeeRecord struct {
	Username string
	Record   AttendanceRecord
}
