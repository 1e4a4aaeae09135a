package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ProfitManager-api/internal/domain/entity"
)

// InventarioRepository define el puerto para consultar/actualizar existencias por producto+bodega.
// Get y GetForUpdate devuelven una fila con cantidad cero si no existe.
type InventarioRepository interface {
	Get(ctx context.Context, productoID, bodegaID int64) (*entity.Inventario, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE); solo tiene efecto dentro de una tx.
	GetForUpdate(ctx context.Context, productoID, bodegaID int64) (*entity.Inventario, error)
	Upsert(ctx context.Context, inv *entity.Inventario) error
	ListByBodega(ctx context.Context, bodegaID int64) ([]*entity.Inventario, error)
	StockTotal(ctx context.Context, productoID int64) (decimal.Decimal, error)
	BajoStockMinimo(ctx context.Context) ([]*entity.ProductoBajoMinimo, error)
}
