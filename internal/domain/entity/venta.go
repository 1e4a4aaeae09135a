package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una venta.
const (
	VentaCompletada = "Completada"
	VentaAnulada    = "Anulada"
)

// Venta cabecera de una venta.
type Venta struct {
	ID        int64
	Folio     string
	ClienteID *int64
	Fecha     time.Time
	Subtotal  decimal.Decimal
	Descuento decimal.Decimal
	Total     decimal.Decimal
	Estado    string
	CreatedAt time.Time
	CreatedBy *int64
	UpdatedAt *time.Time
	UpdatedBy *int64
	Detalles  []VentaDetalle
}

// VentaDetalle línea de una venta.
type VentaDetalle struct {
	ID             int64
	VentaID        int64
	ProductoID     int64
	BodegaID       int64
	Cantidad       decimal.Decimal
	PrecioUnitario decimal.Decimal
	Subtotal       decimal.Decimal
}
