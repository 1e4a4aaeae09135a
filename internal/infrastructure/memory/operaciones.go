package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ProfitManager-api/internal/domain"
	"github.com/jhoicas/ProfitManager-api/internal/domain/entity"
	"github.com/jhoicas/ProfitManager-api/internal/domain/repository"
)

var (
	_ repository.InventarioRepository  = (*InventarioRepo)(nil)
	_ repository.VencimientoRepository = (*VencimientoRepo)(nil)
	_ repository.VentaRepository       = (*VentaRepo)(nil)
	_ repository.OrdenCompraRepository = (*OrdenCompraRepo)(nil)
	_ repository.UserRepository        = (*UserRepo)(nil)
)

// InventarioRepo existencias en memoria. GetForUpdate no bloquea: TxRunner ya serializa.
type InventarioRepo struct{ view }

func (r *InventarioRepo) Get(_ context.Context, productoID, bodegaID int64) (*entity.Inventario, error) {
	defer r.lock()()
	inv, ok := r.s.data.inventario[invKey{productoID, bodegaID}]
	if !ok {
		return &entity.Inventario{ProductoID: productoID, BodegaID: bodegaID, Cantidad: decimal.Zero}, nil
	}
	return &inv, nil
}

func (r *InventarioRepo) GetForUpdate(ctx context.Context, productoID, bodegaID int64) (*entity.Inventario, error) {
	return r.Get(ctx, productoID, bodegaID)
}

func (r *InventarioRepo) Upsert(_ context.Context, inv *entity.Inventario) error {
	defer r.lock()()
	if _, ok := r.s.data.productos[inv.ProductoID]; !ok {
		return domain.ErrNotFound
	}
	if _, ok := r.s.data.bodegas[inv.BodegaID]; !ok {
		return domain.ErrNotFound
	}
	r.s.data.inventario[invKey{inv.ProductoID, inv.BodegaID}] = *inv
	return nil
}

func (r *InventarioRepo) ListByBodega(_ context.Context, bodegaID int64) ([]*entity.Inventario, error) {
	defer r.lock()()
	var list []*entity.Inventario
	for k, inv := range r.s.data.inventario {
		if k.bodegaID == bodegaID {
			inv := inv
			list = append(list, &inv)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ProductoID < list[j].ProductoID })
	return list, nil
}

func (r *InventarioRepo) StockTotal(_ context.Context, productoID int64) (decimal.Decimal, error) {
	defer r.lock()()
	return r.stockTotal(productoID), nil
}

func (r *InventarioRepo) stockTotal(productoID int64) decimal.Decimal {
	total := decimal.Zero
	for k, inv := range r.s.data.inventario {
		if k.productoID == productoID {
			total = total.Add(inv.Cantidad)
		}
	}
	return total
}

func (r *InventarioRepo) BajoStockMinimo(_ context.Context) ([]*entity.ProductoBajoMinimo, error) {
	defer r.lock()()
	var list []*entity.ProductoBajoMinimo
	for _, p := range r.s.data.productos {
		if !p.IsActive || !p.StockMinimo.IsPositive() {
			continue
		}
		total := r.stockTotal(p.ID)
		if total.LessThan(p.StockMinimo) {
			list = append(list, &entity.ProductoBajoMinimo{
				ProductoID: p.ID, Codigo: p.Codigo, Nombre: p.Nombre,
				StockMinimo: p.StockMinimo, StockTotal: total,
			})
		}
	}
	sort.Slice(list, func(i, j int) bool {
		return byNombre(list[i].Nombre, list[i].ProductoID, list[j].Nombre, list[j].ProductoID)
	})
	return list, nil
}

// VencimientoRepo lotes en memoria.
type VencimientoRepo struct{ view }

func (r *VencimientoRepo) Add(_ context.Context, v *entity.Vencimiento) (*entity.Vencimiento, error) {
	defer r.lock()()
	for _, cur := range r.s.data.vencimientos {
		if cur.ProductoID == v.ProductoID && cur.BodegaID == v.BodegaID && cur.Lote == v.Lote {
			return nil, domain.ErrDuplicate
		}
	}
	row := *v
	row.ID = r.s.nextID()
	r.s.data.vencimientos[row.ID] = row
	return &row, nil
}

func (r *VencimientoRepo) GetByID(_ context.Context, id int64) (*entity.Vencimiento, error) {
	defer r.lock()()
	v, ok := r.s.data.vencimientos[id]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (r *VencimientoRepo) GetAll(_ context.Context) ([]*entity.Vencimiento, error) {
	return r.filter(func(entity.Vencimiento) bool { return true }), nil
}

func (r *VencimientoRepo) ListActivosEntre(_ context.Context, desde, hasta time.Time) ([]*entity.Vencimiento, error) {
	return r.filter(func(v entity.Vencimiento) bool {
		return v.IsActive && !v.FechaVencimiento.Before(desde) && !v.FechaVencimiento.After(hasta)
	}), nil
}

func (r *VencimientoRepo) ListActivosAntesDe(_ context.Context, fecha time.Time) ([]*entity.Vencimiento, error) {
	return r.filter(func(v entity.Vencimiento) bool {
		return v.IsActive && v.FechaVencimiento.Before(fecha)
	}), nil
}

func (r *VencimientoRepo) SetActive(_ context.Context, id int64, isActive bool, updatedBy *int64, when time.Time) (bool, error) {
	defer r.lock()()
	v, ok := r.s.data.vencimientos[id]
	if !ok {
		return false, nil
	}
	v.IsActive = isActive
	v.UpdatedBy = updatedBy
	v.UpdatedAt = &when
	r.s.data.vencimientos[id] = v
	return true, nil
}

func (r *VencimientoRepo) filter(keep func(entity.Vencimiento) bool) []*entity.Vencimiento {
	defer r.lock()()
	var list []*entity.Vencimiento
	for _, v := range r.s.data.vencimientos {
		if keep(v) {
			v := v
			list = append(list, &v)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].FechaVencimiento.Equal(list[j].FechaVencimiento) {
			return list[i].FechaVencimiento.Before(list[j].FechaVencimiento)
		}
		return list[i].ID < list[j].ID
	})
	return list
}

// VentaRepo ventas en memoria.
type VentaRepo struct{ view }

func (r *VentaRepo) Create(_ context.Context, v *entity.Venta) error {
	defer r.lock()()
	for _, cur := range r.s.data.ventas {
		if cur.Folio == v.Folio {
			return domain.ErrDuplicate
		}
	}
	v.ID = r.s.nextID()
	for i := range v.Detalles {
		v.Detalles[i].ID = r.s.nextID()
		v.Detalles[i].VentaID = v.ID
	}
	row := *v
	row.Detalles = append([]entity.VentaDetalle(nil), v.Detalles...)
	r.s.data.ventas[v.ID] = row
	return nil
}

func (r *VentaRepo) GetByID(_ context.Context, id int64) (*entity.Venta, error) {
	defer r.lock()()
	v, ok := r.s.data.ventas[id]
	if !ok {
		return nil, nil
	}
	v.Detalles = append([]entity.VentaDetalle(nil), v.Detalles...)
	return &v, nil
}

func (r *VentaRepo) List(_ context.Context, limit, offset int) ([]*entity.Venta, error) {
	defer r.lock()()
	list := make([]*entity.Venta, 0, len(r.s.data.ventas))
	for _, v := range r.s.data.ventas {
		v := v
		v.Detalles = nil
		list = append(list, &v)
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].Fecha.Equal(list[j].Fecha) {
			return list[i].Fecha.After(list[j].Fecha)
		}
		return list[i].ID > list[j].ID
	})
	return page(list, limit, offset), nil
}

func (r *VentaRepo) CambiarEstado(_ context.Context, id int64, desde, hacia string, updatedBy *int64, when time.Time) (bool, error) {
	defer r.lock()()
	v, ok := r.s.data.ventas[id]
	if !ok || v.Estado != desde {
		return false, nil
	}
	v.Estado = hacia
	v.UpdatedBy = updatedBy
	v.UpdatedAt = &when
	r.s.data.ventas[id] = v
	return true, nil
}

// OrdenCompraRepo órdenes de compra en memoria.
type OrdenCompraRepo struct{ view }

func (r *OrdenCompraRepo) Create(_ context.Context, o *entity.OrdenCompra) error {
	defer r.lock()()
	for _, cur := range r.s.data.ordenes {
		if cur.Numero == o.Numero {
			return domain.ErrDuplicate
		}
	}
	o.ID = r.s.nextID()
	for i := range o.Detalles {
		o.Detalles[i].ID = r.s.nextID()
		o.Detalles[i].OrdenID = o.ID
	}
	row := *o
	row.Detalles = append([]entity.OrdenCompraDetalle(nil), o.Detalles...)
	r.s.data.ordenes[o.ID] = row
	return nil
}

func (r *OrdenCompraRepo) GetByID(_ context.Context, id int64) (*entity.OrdenCompra, error) {
	defer r.lock()()
	o, ok := r.s.data.ordenes[id]
	if !ok {
		return nil, nil
	}
	o.Detalles = append([]entity.OrdenCompraDetalle(nil), o.Detalles...)
	return &o, nil
}

func (r *OrdenCompraRepo) List(_ context.Context, limit, offset int) ([]*entity.OrdenCompra, error) {
	defer r.lock()()
	list := make([]*entity.OrdenCompra, 0, len(r.s.data.ordenes))
	for _, o := range r.s.data.ordenes {
		o := o
		o.Detalles = nil
		list = append(list, &o)
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].Fecha.Equal(list[j].Fecha) {
			return list[i].Fecha.After(list[j].Fecha)
		}
		return list[i].ID > list[j].ID
	})
	return page(list, limit, offset), nil
}

func (r *OrdenCompraRepo) CambiarEstado(_ context.Context, id int64, desde, hacia string, updatedBy *int64, when time.Time) (bool, error) {
	defer r.lock()()
	o, ok := r.s.data.ordenes[id]
	if !ok || o.Estado != desde {
		return false, nil
	}
	o.Estado = hacia
	o.UpdatedBy = updatedBy
	o.UpdatedAt = &when
	r.s.data.ordenes[id] = o
	return true, nil
}

// UserRepo usuarios en memoria.
type UserRepo struct{ view }

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	defer r.lock()()
	for _, cur := range r.s.data.usuarios {
		if cur.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	u.ID = r.s.nextID()
	r.s.data.usuarios[u.ID] = *u
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	defer r.lock()()
	u, ok := r.s.data.usuarios[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	defer r.lock()()
	for _, u := range r.s.data.usuarios {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

// SetUserActive cambia el estado de un usuario (no hay endpoint; útil para pruebas de login).
func (r *UserRepo) SetUserActive(id int64, isActive bool) {
	defer r.lock()()
	if u, ok := r.s.data.usuarios[id]; ok {
		u.IsActive = isActive
		r.s.data.usuarios[id] = u
	}
}

func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return []T{}
	}
	end := offset + limit
	if end > len(list) {
		end = len(list)
	}
	return list[offset:end]
}
