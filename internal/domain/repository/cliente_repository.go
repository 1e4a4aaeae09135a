package repository

import (
	"context"
	"time"

	"github.com/jhoicas/ProfitManager-api/internal/domain/entity"
)

// ClienteRepository define el puerto de persistencia para Cliente.
// GetByID devuelve (nil, nil) cuando el registro no existe; SetActive y Update
// devuelven false en ese mismo caso.
type ClienteRepository interface {
	ExistsCode(ctx context.Context, code string) (bool, error)
	// ExistsCodeForOther permite que un cliente conserve su propio código al actualizarse.
	ExistsCodeForOther(ctx context.Context, id int64, code string) (bool, error)
	Add(ctx context.Context, cliente *entity.Cliente) (*entity.Cliente, error)
	GetByID(ctx context.Context, id int64) (*entity.Cliente, error)
	GetAll(ctx context.Context) ([]*entity.Cliente, error)
	SetActive(ctx context.Context, id int64, isActive bool, updatedBy *int64, when time.Time) (bool, error)
	Update(ctx context.Context, id int64, cambios entity.ClienteCambios, updatedBy *int64, when time.Time) (bool, error)
}
