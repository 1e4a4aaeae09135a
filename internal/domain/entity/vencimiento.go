package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Vencimiento es un lote de producto con fecha de vencimiento en una bodega.
type Vencimiento struct {
	ID               int64
	ProductoID       int64
	BodegaID         int64
	Lote             string
	FechaVencimiento time.Time // solo fecha (UTC, 00:00)
	Cantidad         decimal.Decimal
	IsActive         bool
	CreatedAt        time.Time
	CreatedBy        *int64
	UpdatedAt        *time.Time
	UpdatedBy        *int64
}
