package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ems-api/internal/application/dto"
	"github.com/jhoicas/ems-api/internal/application/leave"
	"github.com/jhoicas/ems-api/internal/domain"
	"github.com/jhoicas/ems-api/internal/domain/calendar"
	"github.com/jhoicas/ems-api/internal/domain/entity"
)

// LeaveHandler solicitudes de permiso y su aprobación.
type LeaveHandler struct {
	uc  *leave.LeaveUseCase
	now func() time.Time
}

// NewLeaveHandler construye el handler.
func NewLeaveHandler(uc *leave.LeaveUseCase, now func() time.Time) *LeaveHandler {
	return &LeaveHandler{uc: uc, now: now}
}

// Apply godoc
// @Summary      Solicitar permiso
// @Tags         leaves
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ApplyLeaveRequest  true  "fecha (YYYY-MM-DD) y motivo"
// @Success      201  {object}  dto.LeaveResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/leaves [post]
func (h *LeaveHandler) Apply(c *fiber.Ctx) error {
	var in dto.ApplyLeaveRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	date, err := calendar.Parse(in.Date)
	if err != nil {
		return writeError(c, domain.ErrValidation)
	}
	username := GetUsername(c)
	req, err := h.uc.Apply(c.Context(), username, date, in.Reason, h.now())
	if err != nil {
		return writeError(c, err)
	}
	mine, err := h.uc.ListFor(c.Context(), username)
	if err != nil {
		return writeError(c, err)
	}
	index := -1
	for _, m := range mine {
		if m.Request.ID == req.ID {
			index = m.Index
		}
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewLeaveResponse(index, *req))
}

// List godoc
// @Summary      Listar permisos
// @Description  admin: todas las solicitudes; employee: solo las propias.
// @Tags         leaves
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  dto.LeaveResponse
// @Router       /api/leaves [get]
func (h *LeaveHandler) List(c *fiber.Ctx) error {
	s := GetSession(c)
	if s.IsAdmin() {
		all, err := h.uc.List(c.Context())
		if err != nil {
			return writeError(c, err)
		}
		out := make([]dto.LeaveResponse, 0, len(all))
		for i, l := range all {
			out = append(out, dto.NewLeaveResponse(i, l))
		}
		return c.JSON(out)
	}
	mine, err := h.uc.ListFor(c.Context(), s.Username)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.LeaveResponse, 0, len(mine))
	for _, m := range mine {
		out = append(out, dto.NewLeaveResponse(m.Index, m.Request))
	}
	return c.JSON(out)
}

// Approve godoc
// @Summary      Aprobar permiso
// @Tags         leaves
// @Security     BearerAuth
// @Produce      json
// @Param        index  path  int  true  "posición de la solicitud"
// @Success      200  {object}  dto.LeaveResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/leaves/{index}/approve [post]
func (h *LeaveHandler) Approve(c *fiber.Ctx) error {
	return h.decide(c, entity.LeaveStatusApproved)
}

// Reject godoc
// @Summary      Rechazar permiso
// @Tags         leaves
// @Security     BearerAuth
// @Produce      json
// @Param        index  path  int  true  "posición de la solicitud"
// @Success      200  {object}  dto.LeaveResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/leaves/{index}/reject [post]
func (h *LeaveHandler) Reject(c *fiber.Ctx) error {
	return h.decide(c, entity.LeaveStatusRejected)
}

func (h *LeaveHandler) decide(c *fiber.Ctx, outcome entity.LeaveStatus) error {
	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_INDEX", Message: "index debe ser un entero"})
	}
	req, err := h.uc.Decide(c.Context(), GetSession(c), index, outcome, h.now())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewLeaveResponse(index, *req))
}
