package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ProfitManager-api/internal/application/dto"
	"github.com/jhoicas/ProfitManager-api/internal/application/inventory"
)

// InventarioHandler maneja consultas y ajustes de existencias (protegido).
type InventarioHandler struct {
	uc *inventory.InventarioUseCase
}

// NewInventarioHandler construye el handler.
func NewInventarioHandler(uc *inventory.InventarioUseCase) *InventarioHandler {
	return &InventarioHandler{uc: uc}
}

// ListByBodega godoc
// @Summary      Existencias de una bodega
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Param        bodegaId  path  int  true  "ID de la bodega"
// @Success      200  {array}   dto.InventarioResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventario/bodegas/{bodegaId} [get]
func (h *InventarioHandler) ListByBodega(c *fiber.Ctx) error {
	bodegaID, ok := paramID(c, "bodegaId")
	if !ok {
		return badRequest(c, "INVALID_ID", "bodegaId inválido")
	}
	out, err := h.uc.ListByBodega(c.UserContext(), bodegaID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// BajoMinimo godoc
// @Summary      Productos por debajo del stock mínimo
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.BajoMinimoResponse
// @Router       /api/inventario/bajo-minimo [get]
func (h *InventarioHandler) BajoMinimo(c *fiber.Ctx) error {
	out, err := h.uc.BajoStockMinimo(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Ajustar godoc
// @Summary      Ajustar existencia
// @Description  Fija la cantidad de un producto en una bodega (conteo físico).
// @Tags         inventario
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AjusteInventarioRequest  true  "producto_id, bodega_id, cantidad"
// @Success      200   {object}  dto.InventarioResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventario/ajustes [post]
func (h *InventarioHandler) Ajustar(c *fiber.Ctx) error {
	var in dto.AjusteInventarioRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Ajustar(c.UserContext(), in, GetActorID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
