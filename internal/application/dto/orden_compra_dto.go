package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrdenCompraRequest body para POST /api/ordenes-compra. FechaEsperada opcional (YYYY-MM-DD).
type CreateOrdenCompraRequest struct {
	Proveedor     string                         `json:"proveedor"`
	BodegaID      int64                          `json:"bodega_id"`
	FechaEsperada *string                        `json:"fecha_esperada"`
	Items         []CreateOrdenCompraItemRequest `json:"items"`
}

// CreateOrdenCompraItemRequest línea de orden de compra.
type CreateOrdenCompraItemRequest struct {
	ProductoID    int64           `json:"producto_id"`
	Cantidad      decimal.Decimal `json:"cantidad"`
	CostoUnitario decimal.Decimal `json:"costo_unitario"`
}

// OrdenCompraResponse salida de una orden de compra.
type OrdenCompraResponse struct {
	ID            int64                        `json:"id"`
	Numero        string                       `json:"numero"`
	Proveedor     string                       `json:"proveedor"`
	BodegaID      int64                        `json:"bodega_id"`
	Fecha         time.Time                    `json:"fecha"`
	FechaEsperada *string                      `json:"fecha_esperada"`
	Total         decimal.Decimal              `json:"total"`
	Estado        string                       `json:"estado"`
	CreatedBy     *int64                       `json:"created_by"`
	UpdatedAt     *time.Time                   `json:"updated_at"`
	UpdatedBy     *int64                       `json:"updated_by"`
	Items         []OrdenCompraDetalleResponse `json:"items,omitempty"`
}

// OrdenCompraDetalleResponse línea de orden de compra.
type OrdenCompraDetalleResponse struct {
	ProductoID    int64           `json:"producto_id"`
	Cantidad      decimal.Decimal `json:"cantidad"`
	CostoUnitario decimal.Decimal `json:"costo_unitario"`
	Subtotal      decimal.Decimal `json:"subtotal"`
}

// OrdenCompraListResponse lista paginada de órdenes.
type OrdenCompraListResponse struct {
	Items []OrdenCompraResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}
