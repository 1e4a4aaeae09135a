package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ProfitManager-api/internal/application/dto"
	"github.com/jhoicas/ProfitManager-api/internal/application/usecase"
)

// VencimientoHandler maneja lotes con fecha de vencimiento (protegido).
type VencimientoHandler struct {
	uc *usecase.VencimientoUseCase
}

// NewVencimientoHandler construye el handler.
func NewVencimientoHandler(uc *usecase.VencimientoUseCase) *VencimientoHandler {
	return &VencimientoHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar lote con vencimiento
// @Tags         vencimientos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateVencimientoRequest  true  "fecha_vencimiento en formato YYYY-MM-DD"
// @Success      201   {object}  dto.VencimientoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/vencimientos [post]
func (h *VencimientoHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateVencimientoRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Create(c.UserContext(), in, GetActorID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar lotes
// @Tags         vencimientos
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.VencimientoResponse
// @Router       /api/vencimientos [get]
func (h *VencimientoHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Proximos godoc
// @Summary      Lotes próximos a vencer
// @Tags         vencimientos
// @Security     Bearer
// @Produce      json
// @Param        dias  query  int  false  "Ventana en días (por defecto la configurada, máximo 3650)"
// @Success      200   {array}  dto.VencimientoResponse
// @Failure      400   {object} dto.ErrorResponse
// @Router       /api/vencimientos/proximos [get]
func (h *VencimientoHandler) Proximos(c *fiber.Ctx) error {
	out, err := h.uc.Proximos(c.UserContext(), c.QueryInt("dias", 0))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Vencidos godoc
// @Summary      Lotes vencidos aún activos
// @Tags         vencimientos
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.VencimientoResponse
// @Router       /api/vencimientos/vencidos [get]
func (h *VencimientoHandler) Vencidos(c *fiber.Ctx) error {
	out, err := h.uc.Vencidos(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener lote por ID
// @Tags         vencimientos
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del lote"
// @Success      200  {object}  dto.VencimientoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/vencimientos/{id} [get]
func (h *VencimientoHandler) GetByID(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "INVALID_ID", "id inválido")
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "lote no encontrado")
	}
	return c.JSON(out)
}

// SetActive godoc
// @Summary      Activar o desactivar lote
// @Tags         vencimientos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                   true  "ID del lote"
// @Param        body  body  dto.SetActiveRequest  true  "is_active"
// @Success      200   {object}  dto.VencimientoResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/vencimientos/{id}/estado [patch]
func (h *VencimientoHandler) SetActive(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "INVALID_ID", "id inválido")
	}
	isActive, err := parseSetActive(c)
	if err != nil {
		return badRequest(c, "VALIDATION", err.Error())
	}
	out, err := h.uc.SetActive(c.UserContext(), id, isActive, GetActorID(c))
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "lote no encontrado")
	}
	return c.JSON(out)
}
