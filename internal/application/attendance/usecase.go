// Package attendance contiene el libro de asistencia: una entrada y una
// salida por empleado y día de calendario.
package attendance

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ems-api/internal/application/store"
	"github.com/jhoicas/ems-api/internal/domain"
	"github.com/jhoicas/ems-api/internal/domain/calendar"
	"github.com/jhoicas/ems-api/internal/domain/entity"
	"github.com/jhoicas/ems-api/internal/domain/repository"
)

const ledgerVersion = 1

// Ledger forma persistida: username -> registros en orden de creación.
type Ledger map[string][]entity.AttendanceRecord

// AttendanceUseCase registra entradas y salidas. "Hoy" es el día de
// calendario de now en la zona horaria configurada.
type AttendanceUseCase struct {
	mu     sync.Mutex
	ledger *store.Record[Ledger]
	loc    *time.Location
}

// NewAttendanceUseCase construye el libro de asistencia. loc nil equivale a time.Local.
func NewAttendanceUseCase(kv repository.KVStore, log zerolog.Logger, loc *time.Location) *AttendanceUseCase {
	if loc == nil {
		loc = time.Local
	}
	return &AttendanceUseCase{
		ledger: store.NewRecord(kv, store.KeyAttendance, ledgerVersion, func() Ledger { return Ledger{} }, log),
		loc:    loc,
	}
}

// Today devuelve el día de calendario de now en la zona del libro.
func (uc *AttendanceUseCase) Today(now time.Time) calendar.Date {
	return calendar.DateOf(now.In(uc.loc))
}

// CheckIn marca la entrada de hoy. Falla con ErrAlreadyCheckedIn si ya existe.
func (uc *AttendanceUseCase) CheckIn(ctx context.Context, username string, now time.Time) (*entity.AttendanceRecord, error) {
	if strings.TrimSpace(username) == "" {
		return nil, fmt.Errorf("%w: username requerido", domain.ErrValidation)
	}
	uc.mu.Lock()
	defer uc.mu.Unlock()
	ledger, err := uc.ledger.Load(ctx)
	if err != nil {
		return nil, err
	}
	today := uc.Today(now)
	records := ledger[username]
	i := indexOfDate(records, today)
	if i >= 0 && records[i].CheckedIn() {
		return nil, domain.ErrAlreadyCheckedIn
	}
	if i < 0 {
		records = append(records, entity.AttendanceRecord{Date: today})
		i = len(records) - 1
	}
	in := now
	records[i].CheckIn = &in
	ledger[username] = records
	if err := uc.ledger.Save(ctx, ledger); err != nil {
		return nil, err
	}
	rec := records[i]
	return &rec, nil
}

// CheckOut marca la salida de hoy. Requiere entrada previa y solo una salida por día.
func (uc *AttendanceUseCase) CheckOut(ctx context.Context, username string, now time.Time) (*entity.AttendanceRecord, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	ledger, err := uc.ledger.Load(ctx)
	if err != nil {
		return nil, err
	}
	records := ledger[username]
	i := indexOfDate(records, uc.Today(now))
	if i < 0 || !records[i].CheckedIn() {
		return nil, domain.ErrNotCheckedIn
	}
	if records[i].CheckedOut() {
		return nil, domain.ErrAlreadyCheckedOut
	}
	if now.Before(*records[i].CheckIn) {
		return nil, fmt.Errorf("%w: la salida no puede ser anterior a la entrada", domain.ErrValidation)
	}
	out := now
	records[i].CheckOut = &out
	if err := uc.ledger.Save(ctx, ledger); err != nil {
		return nil, err
	}
	rec := records[i]
	return &rec, nil
}

// TodayRecord devuelve el registro de hoy del empleado o nil.
func (uc *AttendanceUseCase) TodayRecord(ctx context.Context, username string, now time.Time) (*entity.AttendanceRecord, error) {
	ledger, err := uc.ledger.Load(ctx)
	if err != nil {
		return nil, err
	}
	records := ledger[username]
	if i := indexOfDate(records, uc.Today(now)); i >= 0 {
		rec := records[i]
		return &rec, nil
	}
	return nil, nil
}

// Records historial de un empleado en orden de creación.
func (uc *AttendanceUseCase) Records(ctx context.Context, username string) ([]entity.AttendanceRecord, error) {
	ledger, err := uc.ledger.Load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]entity.AttendanceRecord, len(ledger[username]))
	copy(out, ledger[username])
	return out, nil
}

// AllRecords aplana el libro completo para reportes: usernames en orden
// ascendente y, dentro de cada uno, registros en orden de creación.
func (uc *AttendanceUseCase) AllRecords(ctx context.Context) ([]entity.EmployeeRecord, error) {
	ledger, err := uc.ledger.Load(ctx)
	if err != nil {
		return nil, err
	}
	usernames := make([]string, 0, len(ledger))
	total := 0
	for u, recs := range ledger {
		usernames = append(usernames, u)
		total += len(recs)
	}
	sort.Strings(usernames)
	out := make([]entity.EmployeeRecord, 0, total)
	for _, u := range usernames {
		for _, r := range ledger[u] {
			out = append(out, entity.EmployeeRecord{Username: u, Record: r})
		}
	}
	return out, nil
}

// HoursWorked horas trabajadas del registro; ok=false si falta entrada o salida.
func HoursWorked(rec entity.AttendanceRecord) (decimal.Decimal, bool) {
	return rec.HoursWorked()
}

func indexOfDate(records []entity.AttendanceRecord, d calendar.Date) int {
	for i, r := range records {
		if r.Date == d {
			return i
		}
	}
	return -1
}
