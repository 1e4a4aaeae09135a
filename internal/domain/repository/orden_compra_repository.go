package repository

import (
	"context"
	"time"

	"github.com/jhoicas/ProfitManager-api/internal/domain/entity"
)

// OrdenCompraRepository define el puerto de persistencia para órdenes de compra.
type OrdenCompraRepository interface {
	Create(ctx context.Context, orden *entity.OrdenCompra) error
	GetByID(ctx context.Context, id int64) (*entity.OrdenCompra, error)
	List(ctx context.Context, limit, offset int) ([]*entity.OrdenCompra, error)
	// CambiarEstado pasa de desde a hacia solo si el registro sigue en desde; false si no existe
	// o ya cambió. Bloquea la fila hasta el fin de la tx, por eso va primero dentro de ella.
	CambiarEstado(ctx context.Context, id int64, desde, hacia string, updatedBy *int64, when time.Time) (bool, error)
}
