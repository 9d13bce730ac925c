package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Roles válidos para Employee.
const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// ValidRole indica si role es uno de los roles soportados.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleEmployee
}

// Employee representa un empleado (y usuario del sistema).
// Username es la identidad y no cambia después de crearse.
type Employee struct {
	Username     string          `json:"username"`
	Name         string          `json:"name"`
	Email        string          `json:"email"` // identificador alterno para login
	Role         string          `json:"role"`  // admin, employee
	Department   string          `json:"department"`
	JoinDate     time.Time       `json:"join_date"`
	Salary       decimal.Decimal `json:"salary"` // salario mensual
	PasswordHash string          `json:"password_hash"`
}

// IsAdmin indica si el empleado tiene rol admin.
func (e Employee) IsAdmin() bool { return e.Role == RoleAdmin }
