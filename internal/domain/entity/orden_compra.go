package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de compra.
const (
	OrdenPendiente = "Pendiente"
	OrdenRecibida  = "Recibida"
	OrdenCancelada = "Cancelada"
)

// OrdenCompra cabecera de una orden de compra a proveedor.
type OrdenCompra struct {
	ID            int64
	Numero        string
	Proveedor     string
	BodegaID      int64
	Fecha         time.Time
	FechaEsperada *time.Time
	Total         decimal.Decimal
	Estado        string
	CreatedAt     time.Time
	CreatedBy     *int64
	UpdatedAt     *time.Time
	UpdatedBy     *int64
	Detalles      []OrdenCompraDetalle
}

// OrdenCompraDetalle línea de una orden de compra.
type OrdenCompraDetalle struct {
	ID            int64
	OrdenID       int64
	ProductoID    int64
	Cantidad      decimal.Decimal
	CostoUnitario decimal.Decimal
	Subtotal      decimal.Decimal
}
