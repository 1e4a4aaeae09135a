package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ProfitManager-api/internal/application/compras"
	"github.com/jhoicas/ProfitManager-api/internal/application/dto"
)

// OrdenCompraHandler maneja órdenes de compra a proveedores (protegido).
type OrdenCompraHandler struct {
	uc *compras.OrdenCompraUseCase
}

// NewOrdenCompraHandler construye el handler.
func NewOrdenCompraHandler(uc *compras.OrdenCompraUseCase) *OrdenCompraHandler {
	return &OrdenCompraHandler{uc: uc}
}

// Create godoc
// @Summary      Crear orden de compra
// @Tags         ordenes-compra
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrdenCompraRequest  true  "proveedor, bodega_id, items"
// @Success      201   {object}  dto.OrdenCompraResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/ordenes-compra [post]
func (h *OrdenCompraHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrdenCompraRequest
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
// @Summary      Listar órdenes de compra
// @Tags         ordenes-compra
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.OrdenCompraListResponse
// @Router       /api/ordenes-compra [get]
func (h *OrdenCompraHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.List(c.UserContext(), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener orden de compra por ID
// @Tags         ordenes-compra
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la orden"
// @Success      200  {object}  dto.OrdenCompraResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ordenes-compra/{id} [get]
func (h *OrdenCompraHandler) GetByID(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "INVALID_ID", "id inválido")
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "orden de compra no encontrada")
	}
	return c.JSON(out)
}

// Recibir godoc
// @Summary      Recibir orden de compra
// @Description  Ingresa la mercancía a la bodega y recalcula el costo promedio ponderado.
// @Tags         ordenes-compra
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la orden"
// @Success      200  {object}  dto.OrdenCompraResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/ordenes-compra/{id}/recibir [post]
func (h *OrdenCompraHandler) Recibir(c *fiber.Ctx) error {
	return h.transicion(c, h.uc.Recibir)
}

// Cancelar godoc
// @Summary      Cancelar orden de compra
// @Tags         ordenes-compra
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la orden"
// @Success      200  {object}  dto.OrdenCompraResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/ordenes-compra/{id}/cancelar [post]
func (h *OrdenCompraHandler) Cancelar(c *fiber.Ctx) error {
	return h.transicion(c, h.uc.Cancelar)
}

type transicionFn func(ctx context.Context, id int64, actorID *int64) (*dto.OrdenCompraResponse, error)

func (h *OrdenCompraHandler) transicion(c *fiber.Ctx, fn transicionFn) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "INVALID_ID", "id inválido")
	}
	out, err := fn(c.UserContext(), id, GetActorID(c))
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "orden de compra no encontrada")
	}
	return c.JSON(out)
}
