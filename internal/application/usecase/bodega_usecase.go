package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/ProfitManager-api/internal/application/dto"
	"github.com/jhoicas/ProfitManager-api/internal/domain"
	"github.com/jhoicas/ProfitManager-api/internal/domain/entity"
	"github.com/jhoicas/ProfitManager-api/internal/domain/repository"
	"github.com/jhoicas/ProfitManager-api/pkg/textutil"
)

// BodegaUseCase casos de uso CRUD para bodegas.
type BodegaUseCase struct {
	repo repository.BodegaRepository
	now  func() time.Time
}

// NewBodegaUseCase construye el caso de uso.
func NewBodegaUseCase(repo repository.BodegaRepository) *BodegaUseCase {
	return &BodegaUseCase{repo: repo, now: utcNow}
}

// Create crea una bodega activa. El código es obligatorio y único.
func (uc *BodegaUseCase) Create(ctx context.Context, in dto.CreateBodegaRequest, actorID *int64) (*dto.BodegaResponse, error) {
	codigo := textutil.Clean(in.Codigo)
	nombre := textutil.Clean(in.Nombre)
	if codigo == "" || nombre == "" {
		return nil, domain.ErrInvalidInput
	}
	exists, err := uc.repo.ExistsCode(ctx, codigo)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicate
	}
	saved, err := uc.repo.Add(ctx, &entity.Bodega{
		Codigo:    codigo,
		Nombre:    nombre,
		Ubicacion: textutil.BlankToNil(in.Ubicacion),
		IsActive:  true,
		CreatedAt: uc.now(),
		CreatedBy: actorID,
	})
	if err != nil {
		return nil, err
	}
	return toBodegaResponse(saved), nil
}

// List devuelve todas las bodegas.
func (uc *BodegaUseCase) List(ctx context.Context) ([]*dto.BodegaResponse, error) {
	list, err := uc.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.BodegaResponse, 0, len(list))
	for _, b := range list {
		out = append(out, toBodegaResponse(b))
	}
	return out, nil
}

// GetByID obtiene una bodega; (nil, nil) si no existe.
func (uc *BodegaUseCase) GetByID(ctx context.Context, id int64) (*dto.BodegaResponse, error) {
	b, err := uc.repo.GetByID(ctx, id)
	if err != nil || b == nil {
		return nil, err
	}
	return toBodegaResponse(b), nil
}

// Update reemplaza los datos de la bodega; (nil, nil) si no existe.
func (uc *BodegaUseCase) Update(ctx context.Context, id int64, in dto.UpdateBodegaRequest, actorID *int64) (*dto.BodegaResponse, error) {
	codigo := textutil.Clean(in.Codigo)
	nombre := textutil.Clean(in.Nombre)
	if codigo == "" || nombre == "" {
		return nil, domain.ErrInvalidInput
	}
	now := uc.now()
	ok, err := uc.repo.Update(ctx, &entity.Bodega{
		ID:        id,
		Codigo:    codigo,
		Nombre:    nombre,
		Ubicacion: textutil.BlankToNil(in.Ubicacion),
		IsActive:  in.IsActive,
		UpdatedAt: &now,
		UpdatedBy: actorID,
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return uc.GetByID(ctx, id)
}

// SetActive activa o desactiva una bodega; (nil, nil) si no existe.
func (uc *BodegaUseCase) SetActive(ctx context.Context, id int64, isActive bool, actorID *int64) (*dto.BodegaResponse, error) {
	ok, err := uc.repo.SetActive(ctx, id, isActive, actorID, uc.now())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return uc.GetByID(ctx, id)
}

func toBodegaResponse(b *entity.Bodega) *dto.BodegaResponse {
	if b == nil {
		return nil
	}
	return &dto.BodegaResponse{
		ID:        b.ID,
		Codigo:    b.Codigo,
		Nombre:    b.Nombre,
		Ubicacion: b.Ubicacion,
		IsActive:  b.IsActive,
		CreatedAt: b.CreatedAt,
		CreatedBy: b.CreatedBy,
		UpdatedAt: b.UpdatedAt,
		UpdatedBy: b.UpdatedBy,
	}
}
