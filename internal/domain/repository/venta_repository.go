package repository

import (
	"context"
	"time"

	"github.com/jhoicas/ProfitManager-api/internal/domain/entity"
)

// VentaRepository define el puerto de persistencia para ventas y sus detalles.
type VentaRepository interface {
	// Create inserta cabecera y detalles; completa IDs y CreatedAt.
	Create(ctx context.Context, venta *entity.Venta) error
	GetByID(ctx context.Context, id int64) (*entity.Venta, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Venta, error)
	// CambiarEstado pasa de desde a hacia solo si el registro sigue en desde; false si no existe
	// o ya cambió. Bloquea la fila hasta el fin de la tx, por eso va primero dentro de ella.
	CambiarEstado(ctx context.Context, id int64, desde, hacia string, updatedBy *int64, when time.Time) (bool, error)
}
