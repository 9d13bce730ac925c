package dto

import "time"

// LoginRequest entrada para login: username o email, password y rol.
type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
	Role       string `json:"role" validate:"required,oneof=admin employee"`
}

// LoginResponse salida con token JWT y el empleado autenticado.
type LoginResponse struct {
	Token    string           `json:"token"`
	Employee EmployeeResponse `json:"employee"`
}

// SessionResponse sesión actual.
type SessionResponse struct {
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	StartedAt time.Time `json:"started_at,omitempty"`
}

// DemoResponse credenciales de los usuarios semilla.
type DemoResponse struct {
	Message string            `json:"message"`
	Users   map[string]string `json:"users"`
}
