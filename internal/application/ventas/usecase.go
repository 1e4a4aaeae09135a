package ventas

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
	"github.com/jhoicas/ProfitManager-api/internal/domain/repository"
)

var cien = decimal.NewFromInt(100)

// VentaUseCase registra ventas y descuenta el inventario en una sola transacción.
type VentaUseCase struct {
	txRunner     repository.TxRunner
	repo         repository.VentaRepository
	clienteRepo  repository.ClienteRepository
	productoRepo repository.ProductoRepository
	bodegaRepo   repository.BodegaRepository
	now          func() time.Time
	newFolio     func() string
}

// NewVentaUseCase construye el caso de uso.
func NewVentaUseCase(
	txRunner repository.TxRunner,
	repo repository.VentaRepository,
	clienteRepo repository.ClienteRepository,
	productoRepo repository.ProductoRepository,
	bodegaRepo repository.BodegaRepository,
) *VentaUseCase {
	return &VentaUseCase{
		txRunner:     txRunner,
		repo:         repo,
		clienteRepo:  clienteRepo,
		productoRepo: productoRepo,
		bodegaRepo:   bodegaRepo,
		now:          func() time.Time { return time.Now().UTC() },
		newFolio:     func() string { return "V-" + strings.ToUpper(uuid.New().String()[:8]) },
	}
}

// Create valida cliente, productos y bodegas fuera de la tx (solo lectura) y luego, dentro de
// la tx, descuenta existencias con bloqueo de fila y guarda cabecera y detalles.
// Si una línea no tiene stock suficiente devuelve domain.ErrInsufficientStock y nada se persiste.
func (uc *VentaUseCase) Create(ctx context.Context, in dto.CreateVentaRequest, actorID *int64) (*dto.VentaResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}

	pct := decimal.Zero
	if in.ClienteID != nil {
		cliente, err := uc.clienteRepo.GetByID(ctx, *in.ClienteID)
		if err != nil {
			return nil, err
		}
		if cliente == nil {
			return nil, domain.ErrNotFound
		}
		if !cliente.IsActive {
			return nil, domain.ErrEstadoInvalido
		}
		if cliente.DescuentoPorcentaje != nil {
			pct = clampPorcentaje(*cliente.DescuentoPorcentaje)
		}
	}

	detalles := make([]entity.VentaDetalle, 0, len(in.Items))
	subtotal := decimal.Zero
	bodegasOK := make(map[int64]bool)
	for _, item := range in.Items {
		if !item.Cantidad.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
		producto, err := uc.productoRepo.GetByID(ctx, item.ProductoID)
		if err != nil {
			return nil, err
		}
		if producto == nil {
			return nil, domain.ErrNotFound
		}
		if !producto.IsActive {
			return nil, domain.ErrEstadoInvalido
		}
		if !bodegasOK[item.BodegaID] {
			bodega, err := uc.bodegaRepo.GetByID(ctx, item.BodegaID)
			if err != nil {
				return nil, err
			}
			if bodega == nil {
				return nil, domain.ErrNotFound
			}
			if !bodega.IsActive {
				return nil, domain.ErrEstadoInvalido
			}
			bodegasOK[item.BodegaID] = true
		}
		precio := producto.PrecioVenta
		if item.PrecioUnitario != nil {
			if item.PrecioUnitario.IsNegative() {
				return nil, domain.ErrInvalidInput
			}
			precio = *item.PrecioUnitario
		}
		linea := item.Cantidad.Mul(precio).Round(2)
		subtotal = subtotal.Add(linea)
		detalles = append(detalles, entity.VentaDetalle{
			ProductoID:     item.ProductoID,
			BodegaID:       item.BodegaID,
			Cantidad:       item.Cantidad,
			PrecioUnitario: precio,
			Subtotal:       linea,
		})
	}
	descuento := subtotal.Mul(pct).Div(cien).Round(2)

	now := uc.now()
	venta := &entity.Venta{
		Folio:     uc.newFolio(),
		ClienteID: in.ClienteID,
		Fecha:     now,
		Subtotal:  subtotal,
		Descuento: descuento,
		Total:     subtotal.Sub(descuento),
		Estado:    entity.VentaCompletada,
		CreatedAt: now,
		CreatedBy: actorID,
		Detalles:  detalles,
	}

	err := uc.txRunner.Run(ctx, func(repos repository.TxRepos) error {
		for _, d := range ordenBloqueo(detalles) {
			inv, err := repos.Inventario.GetForUpdate(ctx, d.ProductoID, d.BodegaID)
			if err != nil {
				return err
			}
			if inv.Cantidad.LessThan(d.Cantidad) {
				return domain.ErrInsufficientStock
			}
			inv.Cantidad = inv.Cantidad.Sub(d.Cantidad)
			inv.UpdatedAt = &now
			inv.UpdatedBy = actorID
			if err := repos.Inventario.Upsert(ctx, inv); err != nil {
				return err
			}
		}
		return repos.Ventas.Create(ctx, venta)
	})
	if err != nil {
		return nil, err
	}
	return toVentaResponse(venta), nil
}

// GetByID obtiene una venta con sus líneas; (nil, nil) si no existe.
func (uc *VentaUseCase) GetByID(ctx context.Context, id int64) (*dto.VentaResponse, error) {
	v, err := uc.repo.GetByID(ctx, id)
	if err != nil || v == nil {
		return nil, err
	}
	return toVentaResponse(v), nil
}

// List lista ventas (sin líneas) de la más reciente a la más antigua.
func (uc *VentaUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.VentaListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.VentaResponse, 0, len(list))
	for _, v := range list {
		items = append(items, *toVentaResponse(v))
	}
	return &dto.VentaListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Anular marca la venta como anulada y devuelve las cantidades al inventario.
// Solo aplica a ventas completadas (domain.ErrEstadoInvalido si no); (nil, nil) si no existe.
func (uc *VentaUseCase) Anular(ctx context.Context, id int64, actorID *int64) (*dto.VentaResponse, error) {
	now := uc.now()
	found := true
	err := uc.txRunner.Run(ctx, func(repos repository.TxRepos) error {
		// el cambio condicional va primero: bloquea la venta y descarta una segunda anulación
		ok, err := repos.Ventas.CambiarEstado(ctx, id, entity.VentaCompletada, entity.VentaAnulada, actorID, now)
		if err != nil {
			return err
		}
		venta, err := repos.Ventas.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if venta == nil {
			found = false
			return nil
		}
		if !ok {
			return domain.ErrEstadoInvalido
		}
		for _, d := range ordenBloqueo(venta.Detalles) {
			inv, err := repos.Inventario.GetForUpdate(ctx, d.ProductoID, d.BodegaID)
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

// ordenBloqueo devuelve las líneas ordenadas por (producto, bodega) para bloquear filas
// siempre en el mismo orden entre transacciones concurrentes.
func ordenBloqueo(detalles []entity.VentaDetalle) []entity.VentaDetalle {
	out := make([]entity.VentaDetalle, len(detalles))
	copy(out, detalles)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].ProductoID != out[j].ProductoID {
			return out[i].ProductoID < out[j].ProductoID
		}
		return out[i].BodegaID < out[j].BodegaID
	})
	return out
}

func clampPorcentaje(p decimal.Decimal) decimal.Decimal {
	if p.IsNegative() {
		return decimal.Zero
	}
	if p.GreaterThan(cien) {
		return cien
	}
	return p
}

func toVentaResponse(v *entity.Venta) *dto.VentaResponse {
	out := &dto.VentaResponse{
		ID:        v.ID,
		Folio:     v.Folio,
		ClienteID: v.ClienteID,
		Fecha:     v.Fecha,
		Subtotal:  v.Subtotal,
		Descuento: v.Descuento,
		Total:     v.Total,
		Estado:    v.Estado,
		CreatedBy: v.CreatedBy,
		UpdatedAt: v.UpdatedAt,
		UpdatedBy: v.UpdatedBy,
	}
	for _, d := range v.Detalles {
		out.Items = append(out.Items, dto.VentaDetalleResponse{
			ProductoID:     d.ProductoID,
			BodegaID:       d.BodegaID,
			Cantidad:       d.Cantidad,
			PrecioUnitario: d.PrecioUnitario,
			Subtotal:       d.Subtotal,
		})
	}
	return out
}
