package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AjusteInventarioRequest body para POST /api/inventario/ajustes: fija la cantidad existente.
type AjusteInventarioRequest struct {
	ProductoID int64           `json:"producto_id"`
	BodegaID   int64           `json:"bodega_id"`
	Cantidad   decimal.Decimal `json:"cantidad"`
}

// InventarioResponse existencia de un producto en una bodega.
type InventarioResponse struct {
	ProductoID int64           `json:"producto_id"`
	BodegaID   int64           `json:"bodega_id"`
	Cantidad   decimal.Decimal `json:"cantidad"`
	UpdatedAt  *time.Time      `json:"updated_at"`
	UpdatedBy  *int64          `json:"updated_by"`
}

// BajoMinimoResponse producto con existencia total menor a su stock mínimo.
type BajoMinimoResponse struct {
	ProductoID  int64           `json:"producto_id"`
	Codigo      string          `json:"codigo"`
	Nombre      string          `json:"nombre"`
	StockMinimo decimal.Decimal `json:"stock_minimo"`
	StockTotal  decimal.Decimal `json:"stock_total"`
	Faltante    decimal.Decimal `json:"faltante"`
}
