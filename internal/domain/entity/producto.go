package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// UnidadMedidaDefault se usa cuando el producto no indica unidad.
const UnidadMedidaDefault = "UND"

// Producto representa un artículo del catálogo.
// Costo es promedio ponderado y se recalcula al recibir órdenes de compra.
type Producto struct {
	ID                int64
	Codigo            string // único
	Nombre            string
	Descripcion       *string
	UnidadMedida      string
	PrecioVenta       decimal.Decimal
	Costo             decimal.Decimal
	StockMinimo       decimal.Decimal
	ManejaVencimiento bool
	IsActive          bool
	CreatedAt         time.Time
	CreatedBy         *int64
	UpdatedAt         *time.Time
	UpdatedBy         *int64
}
