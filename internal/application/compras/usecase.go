package compras

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ProfitManager-api/internal/application/dto"
	"github.com/jhoicas/ProfitManager-api/internal/domain"
	"github.com/jhoicas/ProfitManager-api/internal/domain/entity"
	"github.com/jhoicas/ProfitManager-api/internal/domain/inventory"
	"github.com/jhoicas/ProfitManager-api/internal/domain/repository"
	"github.com/jhoicas/ProfitManager-api/pkg/textutil"
)

const fechaLayout = "2006-01-02"

// OrdenCompraUseCase gestiona órdenes de compra: Pendiente -> Recibida | Cancelada.
type OrdenCompraUseCase struct {
	txRunner     repository.TxRunner
	repo         repository.OrdenCompraRepository
	productoRepo repository.ProductoRepository
	bodegaRepo   repository.BodegaRepository
	now          func() time.Time
	newNumero    func() string
}

// NewOrdenCompraUseCase construye el caso de uso.
func NewOrdenCompraUseCase(
	txRunner repository.TxRunner,
	repo repository.OrdenCompraRepository,
	productoRepo repository.ProductoRepository,
	bodegaRepo repository.BodegaRepository,
) *OrdenCompraUseCase {
	return &OrdenCompraUseCase{
		txRunner:     txRunner,
		repo:         repo,
		productoRepo: productoRepo,
		bodegaRepo:   bodegaRepo,
		now:          func() time.Time { return time.Now().UTC() },
		newNumero:    func() string { return "OC-" + strings.ToUpper(uuid.New().String()[:8]) },
	}
}

// Create registra una orden pendiente. No toca el inventario hasta Recibir.
func (uc *OrdenCompraUseCase) Create(ctx context.Context, in dto.CreateOrdenCompraRequest, actorID *int64) (*dto.OrdenCompraResponse, error) {
	proveedor := textutil.Clean(in.Proveedor)
	if proveedor == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	var fechaEsperada *time.Time
	if s := textutil.BlankToNil(in.FechaEsperada); s != nil {
		f, err := time.Parse(fechaLayout, *s)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		fechaEsperada = &f
	}
	bodega, err := uc.bodegaRepo.GetByID(ctx, in.BodegaID)
	if err != nil {
		return nil, err
	}
	if bodega == nil {
		return nil, domain.ErrNotFound
	}
	if !bodega.IsActive {
		return nil, domain.ErrEstadoInvalido
	}

	total := decimal.Zero
	detalles := make([]entity.OrdenCompraDetalle, 0, len(in.Items))
	for _, item := range in.Items {
		if !item.Cantidad.IsPositive() || item.CostoUnitario.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		producto, err := uc.productoRepo.GetByID(ctx, item.ProductoID)
		if err != nil {
			return nil, err
		}
		if producto == nil {
			return nil, domain.ErrNotFound
		}
		linea := item.Cantidad.Mul(item.CostoUnitario).Round(2)
		total = total.Add(linea)
		detalles = append(detalles, entity.OrdenCompraDetalle{
			ProductoID:    item.ProductoID,
			Cantidad:      item.Cantidad,
			CostoUnitario: item.CostoUnitario,
			Subtotal:      linea,
		})
	}

	now := uc.now()
	orden := &entity.OrdenCompra{
		Numero:        uc.newNumero(),
		Proveedor:     proveedor,
		BodegaID:      in.BodegaID,
		Fecha:         now,
		FechaEsperada: fechaEsperada,
		Total:         total,
		Estado:        entity.OrdenPendiente,
		CreatedAt:     now,
		CreatedBy:     actorID,
		Detalles:      detalles,
	}
	if err := uc.repo.Create(ctx, orden); err != nil {
		return nil, err
	}
	return toOrdenResponse(orden), nil
}

// GetByID obtiene una orden con sus líneas; (nil, nil) si no existe.
func (uc *OrdenCompraUseCase) GetByID(ctx context.Context, id int64) (*dto.OrdenCompraResponse, error) {
	o, err := uc.repo.GetByID(ctx, id)
	if err != nil || o == nil {
		return nil, err
	}
	return toOrdenResponse(o), nil
}

// List lista órdenes (sin líneas) de la más reciente a la más antigua.
func (uc *OrdenCompraUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.OrdenCompraListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrdenCompraResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *toOrdenResponse(o))
	}
	return &dto.OrdenCompraListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Recibir da entrada a la mercancía en la bodega de la orden y recalcula el costo
// promedio ponderado de cada producto. Solo para órdenes pendientes; (nil, nil) si no existe.
func (uc *OrdenCompraUseCase) Recibir(ctx context.Context, id int64, actorID *int64) (*dto.OrdenCompraResponse, error) {
	now := uc.now()
	found := true
	err := uc.txRunner.Run(ctx, func(repos repository.TxRepos) error {
		orden, err := uc.cambiarEstado(ctx, repos, id, entity.OrdenRecibida, actorID, now)
		if err != nil || orden == nil {
			found = orden != nil
			return err
		}
		for _, d := range ordenBloqueo(orden.Detalles) {
			// el producto bloqueado serializa recepciones que recalculan su costo
			producto, err := repos.Productos.GetForUpdate(ctx, d.ProductoID)
			if err != nil {
				return err
			}
			if producto == nil {
				return domain.ErrNotFound
			}
			stockTotal, err := repos.Inventario.StockTotal(ctx, d.ProductoID)
			if err != nil {
				return err
			}
			costo := inventory.CostoPromedioPonderado(stockTotal, producto.Costo, d.Cantidad, d.CostoUnitario)
			if err := repos.Productos.UpdateCosto(ctx, d.ProductoID, costo, actorID, now); err != nil {
				return err
			}
			inv, err := repos.Inventario.GetForUpdate(ctx, d.ProductoID, orden.BodegaID)
			if err != nil {
				return err
			}
			inv.Cantidad = inv.Cantidad.Add(d.Cantidad)
			inv.UpdatedAt = &now
			inv.UpdatedBy = actorID
			if err := repos.Inventario.Upsert(ctx, inv); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return uc.GetByID(ctx, id)
}

// Cancelar pasa una orden pendiente a cancelada; (nil, nil) si no existe.
func (uc *OrdenCompraUseCase) Cancelar(ctx context.Context, id int64, actorID *int64) (*dto.OrdenCompraResponse, error) {
	now := uc.now()
	found := true
	err := uc.txRunner.Run(ctx, func(repos repository.TxRepos) error {
		orden, err := uc.cambiarEstado(ctx, repos, id, entity.OrdenCancelada, actorID, now)
		found = orden != nil
		return err
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return uc.GetByID(ctx, id)
}

// cambiarEstado saca la orden de Pendiente como primera sentencia de la tx y la devuelve.
// (nil, nil) si no existe; domain.ErrEstadoInvalido si ya no estaba pendiente.
func (uc *OrdenCompraUseCase) cambiarEstado(ctx context.Context, repos repository.TxRepos, id int64, hacia string, actorID *int64, now time.Time) (*entity.OrdenCompra, error) {
	ok, err := repos.OrdenesCompra.CambiarEstado(ctx, id, entity.OrdenPendiente, hacia, actorID, now)
	if err != nil {
		return nil, err
	}
	orden, err := repos.OrdenesCompra.GetByID(ctx, id)
	if err != nil || orden == nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrEstadoInvalido
	}
	return orden, nil
}

// ordenBloqueo ordena las líneas por producto para bloquear filas siempre en el mismo orden.
func ordenBloqueo(detalles []entity.OrdenCompraDetalle) []entity.OrdenCompraDetalle {
	out := make([]entity.OrdenCompraDetalle, len(detalles))
	copy(out, detalles)
	sort.SliceStable(out, func(i, j int) bool { return out[i].ProductoID < out[j].ProductoID })
	return out
}

func toOrdenResponse(o *entity.OrdenCompra) *dto.OrdenCompraResponse {
	out := &dto.OrdenCompraResponse{
		ID:        o.ID,
		Numero:    o.Numero,
		Proveedor: o.Proveedor,
		BodegaID:  o.BodegaID,
		Fecha:     o.Fecha,
		Total:     o.Total,
		Estado:    o.Estado,
		CreatedBy: o.CreatedBy,
		UpdatedAt: o.UpdatedAt,
		UpdatedBy: o.UpdatedBy,
	}
	if o.FechaEsperada != nil {
		s := o.FechaEsperada.Format(fechaLayout)
		out.FechaEsperada = &s
	}
	for _, d := range o.Detalles {
		out.Items = append(out.Items, dto.OrdenCompraDetalleResponse{
			ProductoID:    d.ProductoID,
			Cantidad:      d.Cantidad,
			CostoUnitario: d.CostoUnitario,
			Subtotal:      d.Subtotal,
		})
	}
	return out
}
