package entity

import (
	"time"

	"github.com/jhoicas/ems-api/internal/domain/calendar"
)

// LeaveStatus estado de una solicitud de permiso.
type LeaveStatus string

const (
	LeaveStatusPending  LeaveStatus = "Pending"
	LeaveStatusApproved LeaveStatus = "Approved"
	LeaveStatusRejected LeaveStatus = "Rejected"
)

// IsDecision indica si s es un resultado válido para decidir una solicitud.
func (s LeaveStatus) IsDecision() bool {
	return s == LeaveStatusApproved || s == LeaveStatusRejected
}

// LeaveRequest solicitud de permiso. Nace Pending; solo un admin la decide
// y una vez decidida no vuelve a Pending.
type LeaveRequest struct {
	ID        string        `json:"id"`
	Username  string        `json:"user"`
	Date      calendar.Date `json:"date"`
	Reason    string        `json:"reason"`
	Status    LeaveStatus   `json:"status"`
	AppliedAt time.Time     `json:"applied_at"`
	DecidedBy string        `json:"decided_by,omitempty"`
	DecidedAt *time.Time    `json:"decided_at,omitempty"`
}
