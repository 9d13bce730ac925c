// Package leave contiene el registro de solicitudes de permiso y su flujo
// de aprobación (Pending -> Approved | Rejected).
package leave

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/ems-api/internal/application/store"
	"github.com/jhoicas/ems-api/internal/domain"
	"github.com/jhoicas/ems-api/internal/domain/calendar"
	"github.com/jhoicas/ems-api/internal/domain/entity"
	"github.com/jhoicas/ems-api/internal/domain/repository"
)

const leavesVersion = 1

// LeaveUseCase registra solicitudes en orden de envío; nunca se eliminan.
type LeaveUseCase struct {
	mu     sync.Mutex
	leaves *store.Record[[]entity.LeaveRequest]
}

// NewLeaveUseCase construye el registro de permisos.
func NewLeaveUseCase(kv repository.KVStore, log zerolog.Logger) *LeaveUseCase {
	return &LeaveUseCase{
		leaves: store.NewRecord(kv, store.KeyLeaves, leavesVersion, func() []entity.LeaveRequest { return []entity.LeaveRequest{} }, log),
	}
}

// Apply crea una solicitud Pending para username.
func (uc *LeaveUseCase) Apply(ctx context.Context, username string, date calendar.Date, reason string, now time.Time) (*entity.LeaveRequest, error) {
	reason = strings.TrimSpace(reason)
	if date.IsZero() || reason == "" {
		return nil, fmt.Errorf("%w: fecha y motivo son requeridos", domain.ErrValidation)
	}
	if strings.TrimSpace(username) == "" {
		return nil, fmt.Errorf("%w: username requerido", domain.ErrValidation)
	}
	req := entity.LeaveRequest{
		ID:        uuid.New().String(),
		Username:  username,
		Date:      date,
		Reason:    reason,
		Status:    entity.LeaveStatusPending,
		AppliedAt: now,
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()
	leaves, err := uc.leaves.Load(ctx)
	if err != nil {
		return nil, err
	}
	leaves = append(leaves, req)
	if err := uc.leaves.Save(ctx, leaves); err != nil {
		return nil, err
	}
	return &req, nil
}

// Decide aprueba o rechaza la solicitud en la posición index.
// Solo un admin decide; una solicitud ya decidida devuelve ErrInvalidTransition.
func (uc *LeaveUseCase) Decide(ctx context.Context, actor entity.Session, index int, outcome entity.LeaveStatus, now time.Time) (*entity.LeaveRequest, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if !outcome.IsDecision() {
		return nil, fmt.Errorf("%w: resultado %q no soportado", domain.ErrValidation, outcome)
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()
	leaves, err := uc.leaves.Load(ctx)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(leaves) {
		return nil, domain.ErrNotFound
	}
	req := leaves[index]
	if req.Status != entity.LeaveStatusPending {
		return nil, fmt.Errorf("%w: estado actual %s", domain.ErrInvalidTransition, req.Status)
	}
	decidedAt := now
	req.Status = outcome
	req.DecidedBy = actor.Username
	req.DecidedAt = &decidedAt
	leaves[index] = req
	if err := uc.leaves.Save(ctx, leaves); err != nil {
		return nil, err
	}
	return &req, nil
}

// List devuelve todas las solicitudes en orden de envío.
func (uc *LeaveUseCase) List(ctx context.Context) ([]entity.LeaveRequest, error) {
	return uc.leaves.Load(ctx)
}

// IndexedRequest solicitud junto con su posición en el registro.
type IndexedRequest struct {
	Index   int
	Request entity.LeaveRequest
}

// ListFor devuelve las solicitudes de un empleado con su posición global.
func (uc *LeaveUseCase) ListFor(ctx context.Context, username string) ([]IndexedRequest, error) {
	leaves, err := uc.leaves.Load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]IndexedRequest, 0)
	for i, l := range leaves {
		if l.Username == username {
			out = append(out, IndexedRequest{Index: i, Request: l})
		}
	}
	return out, nil
}
