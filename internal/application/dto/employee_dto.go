package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ems-api/internal/domain/entity"
)

// CreateEmployeeRequest entrada para crear un empleado (password en texto, se hashea en el use case).
type CreateEmployeeRequest struct {
	Username   string          `json:"username" validate:"required,min=1,max=100"`
	Name       string          `json:"name" validate:"required,min=1,max=200"`
	Email      string          `json:"email" validate:"required,email"`
	Role       string          `json:"role" validate:"omitempty,oneof=admin employee"`
	Department string          `json:"department" validate:"max=200"`
	Salary     decimal.Decimal `json:"salary"`
	Password   string          `json:"password"`
}

// UpdateEmployeeRequest entrada para actualizar un empleado. Username no se modifica.
type UpdateEmployeeRequest struct {
	Name       *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Email      *string          `json:"email" validate:"omitempty,email"`
	Role       *string          `json:"role" validate:"omitempty,oneof=admin employee"`
	Department *string          `json:"department" validate:"omitempty,max=200"`
	Salary     *decimal.Decimal `json:"salary"`
	Password   *string          `json:"password"`
}

// EmployeeResponse salida de un empleado (sin password).
type EmployeeResponse struct {
	Username   string          `json:"username"`
	Name       string          `json:"name"`
	Email      string          `json:"email"`
	Role       string          `json:"role"`
	Department string          `json:"department"`
	JoinDate   time.Time       `json:"join_date"`
	Salary     decimal.Decimal `json:"salary"`
}

// EmployeeListResponse lista de empleados.
type EmployeeListResponse struct {
	Items []EmployeeResponse `json:"items"`
	Total int                `json:"total"`
}

// NewEmployeeResponse proyecta el empleado sin el hash de password.
func NewEmployeeResponse(e entity.Employee) EmployeeResponse {
	return EmployeeResponse{
		Username:   e.Username,
		Name:       e.Name,
		Email:      e.Email,
		Role:       e.Role,
		Department: e.Department,
		JoinDate:   e.JoinDate,
		Salary:     e.Salary,
	}
}

// NewEmployeeListResponse proyecta una lista de empleados.
func NewEmployeeListResponse(list []entity.Employee) EmployeeListResponse {
	items := make([]EmployeeResponse, 0, len(list))
	for _, e := range list {
		items = append(items, NewEmployeeResponse(e))
	}
	return EmployeeListResponse{Items: items, Total: len(items)}
}
