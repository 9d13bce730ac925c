package entity

import "time"

// systemUsername identifica al actor interno (semillas, importaciones).
const systemUsername = "system"

// Session usuario autenticado que actúa sobre los componentes.
// Se pasa explícitamente a cada operación que requiere autorización.
type Session struct {
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	StartedAt time.Time `json:"started_at"`
}

// SessionFor construye la sesión de un empleado autenticado.
func SessionFor(e Employee, now time.Time) Session {
	return Session{Username: e.Username, Name: e.Name, Role: e.Role, StartedAt: now}
}

// SystemSession sesión con privilegios de admin para procesos internos.
func SystemSession() Session {
	return Session{Username: systemUsername, Name: "Sistema", Role: RoleAdmin}
}

// IsAdmin indica si la sesión tiene rol admin.
func (s Session) IsAdmin() bool { return s.Role == RoleAdmin }
