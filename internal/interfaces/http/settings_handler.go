package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ems-api/internal/application/dto"
	"github.com/jhoicas/ems-api/internal/application/usecase"
	"github.com/jhoicas/ems-api/internal/domain/entity"
)

// SettingsHandler configuración de nómina.
type SettingsHandler struct {
	uc *usecase.SettingsUseCase
}

// NewSettingsHandler construye el handler.
func NewSettingsHandler(uc *usecase.SettingsUseCase) *SettingsHandler {
	return &SettingsHandler{uc: uc}
}

// Get godoc
// @Summary      Obtener configuración
// @Tags         settings
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  dto.SettingsDTO
// @Router       /api/settings [get]
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	s, err := h.uc.Get(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toSettingsDTO(s))
}

// Update godoc
// @Summary      Guardar configuración
// @Tags         settings
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateSettingsRequest  true  "días por mes y horas por día"
// @Success      200  {object}  dto.SettingsDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/settings [put]
func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSettingsRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	s, err := h.uc.Save(c.Context(), GetSession(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toSettingsDTO(s))
}

func toSettingsDTO(s entity.Settings) dto.SettingsDTO {
	return dto.SettingsDTO{WorkingDaysPerMonth: s.WorkingDaysPerMonth, WorkingHoursPerDay: s.WorkingHoursPerDay}
}
