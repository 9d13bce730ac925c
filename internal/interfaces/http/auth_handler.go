package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ems-api/internal/application/auth"
	"github.com/jhoicas/ems-api/internal/application/dto"
)

// AuthHandler maneja login, logout y sesión actual.
type AuthHandler struct {
	uc  *auth.AuthUseCase
	now func() time.Time
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, now func() time.Time) *AuthHandler {
	return &AuthHandler{uc: uc, now: now}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "username o email, password, rol"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	token, emp, err := h.uc.Login(c.Context(), in.Identifier, in.Password, in.Role, h.now())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.LoginResponse{Token: token, Employee: dto.NewEmployeeResponse(*emp)})
}

// Demo godoc
// @Summary      Cargar usuarios de demostración
// @Tags         auth
// @Produce      json
// @Success      200   {object}  dto.DemoResponse
// @Router       /api/auth/demo [post]
func (h *AuthHandler) Demo(c *fiber.Ctx) error {
	if err := h.uc.Demo(c.Context()); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.DemoResponse{
		Message: "usuarios de demostración listos",
		Users:   map[string]string{"admin": "admin", "jdoe": "1234"},
	})
}

// Logout godoc
// @Summary      Cerrar sesión
// @Tags         auth
// @Security     BearerAuth
// @Success      204
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.uc.Logout(c.Context()); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Me godoc
// @Summary      Sesión actual
// @Tags         auth
// @Security     BearerAuth
// @Produce      json
// @Success      200   {object}  dto.SessionResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	s := GetSession(c)
	return c.JSON(dto.SessionResponse{Username: s.Username, Name: s.Name, Role: s.Role, StartedAt: s.StartedAt})
}
