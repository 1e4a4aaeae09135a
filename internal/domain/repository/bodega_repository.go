package repository

import (
	"context"
	"time"

	"github.com/jhoicas/ProfitManager-api/internal/domain/entity"
)

// BodegaRepository define el puerto de persistencia para Bodega.
type BodegaRepository interface {
	ExistsCode(ctx context.Context, code string) (bool, error)
	Add(ctx context.Context, bodega *entity.Bodega) (*entity.Bodega, error)
	GetByID(ctx context.Context, id int64) (*entity.Bodega, error)
	GetAll(ctx context.Context) ([]*entity.Bodega, error)
	SetActive(ctx context.Context, id int64, isActive bool, updatedBy *int64, when time.Time) (bool, error)
	Update(ctx context.Context, bodega *entity.Bodega) (bool, error)
}
