package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Inventario es la existencia de un producto en una bodega (PK producto_id + bodega_id).
type Inventario struct {
	ProductoID int64
	BodegaID   int64
	Cantidad   decimal.Decimal
	UpdatedAt  *time.Time
	UpdatedBy  *int64
}

// ProductoBajoMinimo resume un producto cuya existencia total está por debajo del mínimo.
type ProductoBajoMinimo struct {
	ProductoID  int64
	Codigo      string
	Nombre      string
	StockMinimo decimal.Decimal
	StockTotal  decimal.Decimal
}
