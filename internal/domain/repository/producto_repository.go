package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ProfitManager-api/internal/domain/entity"
)

// ProductoRepository define el puerto de persistencia para Producto (usable con pool o tx).
type ProductoRepository interface {
	// ExistsCodeForOther con id 0 equivale a "algún producto".
	ExistsCodeForOther(ctx context.Context, id int64, code string) (bool, error)
	Add(ctx context.Context, producto *entity.Producto) (*entity.Producto, error)
	GetByID(ctx context.Context, id int64) (*entity.Producto, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE); solo tiene efecto dentro de una tx.
	GetForUpdate(ctx context.Context, id int64) (*entity.Producto, error)
	GetAll(ctx context.Context, soloActivos bool) ([]*entity.Producto, error)
	SetActive(ctx context.Context, id int64, isActive bool, updatedBy *int64, when time.Time) (bool, error)
	// Update no modifica Costo: se recalcula al recibir compras (UpdateCosto).
	Update(ctx context.Context, producto *entity.Producto) (bool, error)
	UpdateCosto(ctx context.Context, id int64, costo decimal.Decimal, updatedBy *int64, when time.Time) error
}
