package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateVencimientoRequest entrada para registrar un lote. FechaVencimiento en formato YYYY-MM-DD.
type CreateVencimientoRequest struct {
	ProductoID       int64           `json:"producto_id"`
	BodegaID         int64           `json:"bodega_id"`
	Lote             string          `json:"lote"`
	FechaVencimiento string          `json:"fecha_vencimiento"`
	Cantidad         decimal.Decimal `json:"cantidad"`
}

// VencimientoResponse salida de un lote.
type VencimientoResponse struct {
	ID               int64           `json:"id"`
	ProductoID       int64           `json:"producto_id"`
	BodegaID         int64           `json:"bodega_id"`
	Lote             string          `json:"lote"`
	FechaVencimiento string          `json:"fecha_vencimiento"`
	DiasRestantes    int             `json:"dias_restantes"`
	Cantidad         decimal.Decimal `json:"cantidad"`
	IsActive         bool            `json:"is_active"`
	CreatedAt        time.Time       `json:"created_at"`
	CreatedBy        *int64          `json:"created_by"`
	UpdatedAt        *time.Time      `json:"updated_at"`
	UpdatedBy        *int64          `json:"updated_by"`
}
