package repository

import (
	"context"
	"time"

	"github.com/jhoicas/ProfitManager-api/internal/domain/entity"
)

// VencimientoRepository define el puerto de persistencia para lotes con vencimiento.
type VencimientoRepository interface {
	Add(ctx context.Context, v *entity.Vencimiento) (*entity.Vencimiento, error)
	GetByID(ctx context.Context, id int64) (*entity.Vencimiento, error)
	GetAll(ctx context.Context) ([]*entity.Vencimiento, error)
	// ListActivosEntre devuelve lotes activos con fecha en [desde, hasta], ordenados por fecha.
	ListActivosEntre(ctx context.Context, desde, hasta time.Time) ([]*entity.Vencimiento, error)
	// ListActivosAntesDe devuelve lotes activos con fecha estrictamente anterior a fecha.
	ListActivosAntesDe(ctx context.Context, fecha time.Time) ([]*entity.Vencimiento, error)
	SetActive(ctx context.Context, id int64, isActive bool, updatedBy *int64, when time.Time) (bool, error)
}
