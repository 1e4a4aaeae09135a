package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductoRequest entrada para crear un producto. Costo inicia en 0.
type CreateProductoRequest struct {
	Codigo            string          `json:"codigo" validate:"required,min=1,max=100"`
	Nombre            string          `json:"nombre" validate:"required,min=1,max=200"`
	Descripcion       *string         `json:"descripcion"`
	UnidadMedida      string          `json:"unidad_medida"`
	PrecioVenta       decimal.Decimal `json:"precio_venta"`
	StockMinimo       decimal.Decimal `json:"stock_minimo"`
	ManejaVencimiento bool            `json:"maneja_vencimiento"`
}

// UpdateProductoRequest entrada para actualizar un producto (sin Costo).
type UpdateProductoRequest struct {
	Codigo            string          `json:"codigo" validate:"required,min=1,max=100"`
	Nombre            string          `json:"nombre" validate:"required,min=1,max=200"`
	Descripcion       *string         `json:"descripcion"`
	UnidadMedida      string          `json:"unidad_medida"`
	PrecioVenta       decimal.Decimal `json:"precio_venta"`
	StockMinimo       decimal.Decimal `json:"stock_minimo"`
	ManejaVencimiento bool            `json:"maneja_vencimiento"`
	IsActive          bool            `json:"is_active"`
}

// ProductoResponse salida de un producto.
type ProductoResponse struct {
	ID                int64           `json:"id"`
	Codigo            string          `json:"codigo"`
	Nombre            string          `json:"nombre"`
	Descripcion       *string         `json:"descripcion"`
	UnidadMedida      string          `json:"unidad_medida"`
	PrecioVenta       decimal.Decimal `json:"precio_venta"`
	Costo             decimal.Decimal `json:"costo"`
	StockMinimo       decimal.Decimal `json:"stock_minimo"`
	ManejaVencimiento bool            `json:"maneja_vencimiento"`
	IsActive          bool            `json:"is_active"`
	CreatedAt         time.Time       `json:"created_at"`
	CreatedBy         *int64          `json:"created_by"`
	UpdatedAt         *time.Time      `json:"updated_at"`
	UpdatedBy         *int64          `json:"updated_by"`
}
