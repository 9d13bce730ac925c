package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ems-api/internal/application/directory"
	"github.com/jhoicas/ems-api/internal/application/dto"
	"github.com/jhoicas/ems-api/internal/domain"
)

// EmployeeHandler maneja el directorio de empleados (solo admin).
type EmployeeHandler struct {
	uc *directory.DirectoryUseCase
}

// NewEmployeeHandler construye el handler.
func NewEmployeeHandler(uc *directory.DirectoryUseCase) *EmployeeHandler {
	return &EmployeeHandler{uc: uc}
}

// List godoc
// @Summary      Listar empleados
// @Tags         employees
// @Security     BearerAuth
// @Produce      json
// @Param        q  query  string  false  "filtro por nombre, email o username"
// @Success      200  {object}  dto.EmployeeListResponse
// @Router       /api/employees [get]
func (h *EmployeeHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.Context(), c.Query("q"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewEmployeeListResponse(list))
}

// Create godoc
// @Summary      Crear empleado
// @Tags         employees
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateEmployeeRequest  true  "datos del empleado"
// @Success      201   {object}  dto.EmployeeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/employees [post]
func (h *EmployeeHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateEmployeeRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	emp, err := h.uc.Create(c.Context(), GetSession(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewEmployeeResponse(*emp))
}

// Get godoc
// @Summary      Obtener empleado
// @Tags         employees
// @Security     BearerAuth
// @Produce      json
// @Param        username  path  string  true  "username"
// @Success      200  {object}  dto.EmployeeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/employees/{username} [get]
func (h *EmployeeHandler) Get(c *fiber.Ctx) error {
	emp, err := h.uc.Get(c.Context(), c.Params("username"))
	if err != nil {
		return writeError(c, err)
	}
	if emp == nil {
		return writeError(c, domain.ErrNotFound)
	}
	return c.JSON(dto.NewEmployeeResponse(*emp))
}

// Update godoc
// @Summary      Actualizar empleado
// @Tags         employees
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        username  path  string  true  "username"
// @Param        body  body  dto.UpdateEmployeeRequest  true  "campos a modificar"
// @Success      200  {object}  dto.EmployeeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/employees/{username} [put]
func (h *EmployeeHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateEmployeeRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	emp, err := h.uc.Update(c.Context(), GetSession(c), c.Params("username"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewEmployeeResponse(*emp))
}

// Delete godoc
// @Summary      Eliminar empleado
// @Tags         employees
// @Security     BearerAuth
// @Param        username  path  string  true  "username"
// @Success      204
// @Router       /api/employees/{username} [delete]
func (h *EmployeeHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetSession(c), c.Params("username")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
