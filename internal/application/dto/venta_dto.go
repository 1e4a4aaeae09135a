package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateVentaRequest body para POST /api/ventas.
type CreateVentaRequest struct {
	ClienteID *int64                  `json:"cliente_id"`
	Items     []CreateVentaItemRequest `json:"items"`
}

// CreateVentaItemRequest línea de venta. PrecioUnitario nil toma el precio de venta del producto.
type CreateVentaItemRequest struct {
	ProductoID     int64            `json:"producto_id"`
	BodegaID       int64            `json:"bodega_id"`
	Cantidad       decimal.Decimal  `json:"cantidad"`
	PrecioUnitario *decimal.Decimal `json:"precio_unitario,omitempty"`
}

// VentaResponse salida de una venta con sus líneas.
type VentaResponse struct {
	ID        int64                  `json:"id"`
	Folio     string                 `json:"folio"`
	ClienteID *int64                 `json:"cliente_id"`
	Fecha     time.Time              `json:"fecha"`
	Subtotal  decimal.Decimal        `json:"subtotal"`
	Descuento decimal.Decimal        `json:"descuento"`
	Total     decimal.Decimal        `json:"total"`
	Estado    string                 `json:"estado"`
	CreatedBy *int64                 `json:"created_by"`
	UpdatedAt *time.Time             `json:"updated_at"`
	UpdatedBy *int64                 `json:"updated_by"`
	Items     []VentaDetalleResponse `json:"items,omitempty"`
}

// VentaDetalleResponse línea de venta.
type VentaDetalleResponse struct {
	ProductoID     int64           `json:"producto_id"`
	BodegaID       int64           `json:"bodega_id"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

// VentaListResponse lista paginada de ventas.
type VentaListResponse struct {
	Items []VentaResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
