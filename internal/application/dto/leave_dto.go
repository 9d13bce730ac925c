package dto

import (
	"time"

	"github.com/jhoicas/ems-api/internal/domain/entity"
)

// ApplyLeaveRequest entrada para solicitar un permiso.
type ApplyLeaveRequest struct {
	Date   string `json:"date" validate:"required,datetime=2006-01-02"`
	Reason string `json:"reason" validate:"required,max=500"`
}

// LeaveResponse solicitud con su índice en el registro (usado para decidirla).
type LeaveResponse struct {
	Index     int                `json:"index"`
	ID        string             `json:"id"`
	User      string             `json:"user"`
	Date      string             `json:"date"`
	Reason    string             `json:"reason"`
	Status    entity.LeaveStatus `json:"status"`
	AppliedAt time.Time          `json:"applied_at"`
	DecidedBy string             `json:"decided_by,omitempty"`
	DecidedAt *time.Time         `json:"decided_at,omitempty"`
}

// NewLeaveResponse proyecta la solicitud en la posición index.
func NewLeaveResponse(index int, l entity.LeaveRequest) LeaveResponse {
	return LeaveResponse{
		Index:     index,
		ID:        l.ID,
		User:      l.Username,
		Date:      l.Date.String(),
		Reason:    l.Reason,
		Status:    l.Status,
		AppliedAt: l.AppliedAt,
		DecidedBy: l.DecidedBy,
		DecidedAt: l.DecidedAt,
	}
}
