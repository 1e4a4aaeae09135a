package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ProfitManager-api/internal/application/dto"
	"github.com/jhoicas/ProfitManager-api/internal/domain"
	"github.com/jhoicas/ProfitManager-api/internal/domain/entity"
	"github.com/jhoicas/ProfitManager-api/internal/domain/repository"
)

// InventarioUseCase consulta y ajusta existencias por producto y bodega.
// Los ajustes corren en transacción con bloqueo de fila (SELECT FOR UPDATE).
type InventarioUseCase struct {
	txRunner     TxRunner
	repo         repository.InventarioRepository
	productoRepo repository.ProductoRepository
	bodegaRepo   repository.BodegaRepository
	now          func() time.Time
}

// NewInventarioUseCase construye el caso de uso.
func NewInventarioUseCase(
	txRunner TxRunner,
	repo repository.InventarioRepository,
	productoRepo repository.ProductoRepository,
	bodegaRepo repository.BodegaRepository,
) *InventarioUseCase {
	return &InventarioUseCase{
		txRunner:     txRunner,
		repo:         repo,
		productoRepo: productoRepo,
		bodegaRepo:   bodegaRepo,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// ListByBodega devuelve las existencias de una bodega. ErrNotFound si la bodega no existe.
func (uc *InventarioUseCase) ListByBodega(ctx context.Context, bodegaID int64) ([]*dto.InventarioResponse, error) {
	bodega, err := uc.bodegaRepo.GetByID(ctx, bodegaID)
	if err != nil {
		return nil, err
	}
	if bodega == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.repo.ListByBodega(ctx, bodegaID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.InventarioResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, toInventarioResponse(inv))
	}
	return out, nil
}

// Get devuelve la existencia de un producto en una bodega (cero si nunca tuvo movimiento).
func (uc *InventarioUseCase) Get(ctx context.Context, productoID, bodegaID int64) (*dto.InventarioResponse, error) {
	inv, err := uc.repo.Get(ctx, productoID, bodegaID)
	if err != nil {
		return nil, err
	}
	return toInventarioResponse(inv), nil
}

// Ajustar fija la cantidad existente de un producto en una bodega (conteo físico).
// Producto y bodega deben existir y estar activos; la cantidad no puede ser negativa.
func (uc *InventarioUseCase) Ajustar(ctx context.Context, in dto.AjusteInventarioRequest, actorID *int64) (*dto.InventarioResponse, error) {
	if in.ProductoID <= 0 || in.BodegaID <= 0 || in.Cantidad.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.checkActivos(ctx, in.ProductoID, in.BodegaID); err != nil {
		return nil, err
	}
	now := uc.now()
	var result *entity.Inventario
	err := uc.txRunner.Run(ctx, func(repos repository.TxRepos) error {
		inv, err := repos.Inventario.GetForUpdate(ctx, in.ProductoID, in.BodegaID)
		if err != nil {
			return err
		}
		inv.Cantidad = in.Cantidad
		inv.UpdatedAt = &now
		inv.UpdatedBy = actorID
		if err := repos.Inventario.Upsert(ctx, inv); err != nil {
			return err
		}
		result = inv
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toInventarioResponse(result), nil
}

// BajoStockMinimo lista productos activos cuya existencia total es menor a su stock mínimo.
func (uc *InventarioUseCase) BajoStockMinimo(ctx context.Context) ([]*dto.BajoMinimoResponse, error) {
	list, err := uc.repo.BajoStockMinimo(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.BajoMinimoResponse, 0, len(list))
	for _, p := range list {
		out = append(out, &dto.BajoMinimoResponse{
			ProductoID:  p.ProductoID,
			Codigo:      p.Codigo,
			Nombre:      p.Nombre,
			StockMinimo: p.StockMinimo,
			StockTotal:  p.StockTotal,
			Faltante:    decimal.Max(p.StockMinimo.Sub(p.StockTotal), decimal.Zero),
		})
	}
	return out, nil
}

func (uc *InventarioUseCase) checkActivos(ctx context.Context, productoID, bodegaID int64) error {
	producto, err := uc.productoRepo.GetByID(ctx, productoID)
	if err != nil {
		return err
	}
	if producto == nil {
		return domain.ErrNotFound
	}
	bodega, err := uc.bodegaRepo.GetByID(ctx, bodegaID)
	if err != nil {
		return err
	}
	if bodega == nil {
		return domain.ErrNotFound
	}
	if !producto.IsActive || !bodega.IsActive {
		return domain.ErrEstadoInvalido
	}
	return nil
}

func toInventarioResponse(inv *entity.Inventario) *dto.InventarioResponse {
	return &dto.InventarioResponse{
		ProductoID: inv.ProductoID,
		BodegaID:   inv.BodegaID,
		Cantidad:   inv.Cantidad,
		UpdatedAt:  inv.UpdatedAt,
		UpdatedBy:  inv.UpdatedBy,
	}
}
