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

// FechaLayout formato de fechas sin hora en la API.
const FechaLayout = "2006-01-02"

// VencimientoUseCase registra lotes con fecha de vencimiento y consulta los próximos a vencer.
type VencimientoUseCase struct {
	repo         repository.VencimientoRepository
	productoRepo repository.ProductoRepository
	bodegaRepo   repository.BodegaRepository
	diasAlerta   int
	now          func() time.Time
}

// NewVencimientoUseCase construye el caso de uso. diasAlerta es la ventana por defecto de Proximos.
func NewVencimientoUseCase(
	repo repository.VencimientoRepository,
	productoRepo repository.ProductoRepository,
	bodegaRepo repository.BodegaRepository,
	diasAlerta int,
) *VencimientoUseCase {
	if diasAlerta <= 0 {
		diasAlerta = 30
	}
	return &VencimientoUseCase{
		repo:         repo,
		productoRepo: productoRepo,
		bodegaRepo:   bodegaRepo,
		diasAlerta:   diasAlerta,
		now:          utcNow,
	}
}

// Create registra un lote. El producto debe existir y manejar vencimiento; la bodega debe existir.
func (uc *VencimientoUseCase) Create(ctx context.Context, in dto.CreateVencimientoRequest, actorID *int64) (*dto.VencimientoResponse, error) {
	lote := textutil.Clean(in.Lote)
	if lote == "" || !in.Cantidad.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	fecha, err := time.Parse(FechaLayout, in.FechaVencimiento)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	producto, err := uc.productoRepo.GetByID(ctx, in.ProductoID)
	if err != nil {
		return nil, err
	}
	if producto == nil {
		return nil, domain.ErrNotFound
	}
	if !producto.ManejaVencimiento {
		return nil, domain.ErrInvalidInput
	}
	bodega, err := uc.bodegaRepo.GetByID(ctx, in.BodegaID)
	if err != nil {
		return nil, err
	}
	if bodega == nil {
		return nil, domain.ErrNotFound
	}
	saved, err := uc.repo.Add(ctx, &entity.Vencimiento{
		ProductoID:       in.ProductoID,
		BodegaID:         in.BodegaID,
		Lote:             lote,
		FechaVencimiento: fecha,
		Cantidad:         in.Cantidad,
		IsActive:         true,
		CreatedAt:        uc.now(),
		CreatedBy:        actorID,
	})
	if err != nil {
		return nil, err
	}
	return uc.toResponse(saved), nil
}

// List devuelve todos los lotes.
func (uc *VencimientoUseCase) List(ctx context.Context) ([]*dto.VencimientoResponse, error) {
	list, err := uc.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return uc.toResponses(list), nil
}

// GetByID obtiene un lote; (nil, nil) si no existe.
func (uc *VencimientoUseCase) GetByID(ctx context.Context, id int64) (*dto.VencimientoResponse, error) {
	v, err := uc.repo.GetByID(ctx, id)
	if err != nil || v == nil {
		return nil, err
	}
	return uc.toResponse(v), nil
}

// SetActive activa o desactiva un lote (p. ej. al darlo de baja); (nil, nil) si no existe.
func (uc *VencimientoUseCase) SetActive(ctx context.Context, id int64, isActive bool, actorID *int64) (*dto.VencimientoResponse, error) {
	ok, err := uc.repo.SetActive(ctx, id, isActive, actorID, uc.now())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return uc.GetByID(ctx, id)
}

// MaxDiasProximos es la ventana más larga que acepta Proximos.
const MaxDiasProximos = 3650

// Proximos devuelve los lotes activos que vencen entre hoy y hoy+dias (inclusive).
// dias <= 0 usa la ventana configurada; más de MaxDiasProximos es domain.ErrInvalidInput.
func (uc *VencimientoUseCase) Proximos(ctx context.Context, dias int) ([]*dto.VencimientoResponse, error) {
	if dias > MaxDiasProximos {
		return nil, domain.ErrInvalidInput
	}
	if dias <= 0 {
		dias = uc.diasAlerta
	}
	hoy := uc.hoy()
	list, err := uc.repo.ListActivosEntre(ctx, hoy, hoy.AddDate(0, 0, dias))
	if err != nil {
		return nil, err
	}
	return uc.toResponses(list), nil
}

// Vencidos devuelve los lotes activos cuya fecha ya pasó.
func (uc *VencimientoUseCase) Vencidos(ctx context.Context) ([]*dto.VencimientoResponse, error) {
	list, err := uc.repo.ListActivosAntesDe(ctx, uc.hoy())
	if err != nil {
		return nil, err
	}
	return uc.toResponses(list), nil
}

func (uc *VencimientoUseCase) hoy() time.Time {
	return uc.now().Truncate(24 * time.Hour)
}

func (uc *VencimientoUseCase) toResponses(list []*entity.Vencimiento) []*dto.VencimientoResponse {
	out := make([]*dto.VencimientoResponse, 0, len(list))
	for _, v := range list {
		out = append(out, uc.toResponse(v))
	}
	return out
}

func (uc *VencimientoUseCase) toResponse(v *entity.Vencimiento) *dto.VencimientoResponse {
	fecha := v.FechaVencimiento.UTC().Truncate(24 * time.Hour)
	return &dto.VencimientoResponse{
		ID:               v.ID,
		ProductoID:       v.ProductoID,
		BodegaID:         v.BodegaID,
		Lote:             v.Lote,
		FechaVencimiento: fecha.Format(FechaLayout),
		DiasRestantes:    int(fecha.Sub(uc.hoy()).Hours() / 24),
		Cantidad:         v.Cantidad,
		IsActive:         v.IsActive,
		CreatedAt:        v.CreatedAt,
		CreatedBy:        v.CreatedBy,
		UpdatedAt:        v.UpdatedAt,
		UpdatedBy:        v.UpdatedBy,
	}
}
