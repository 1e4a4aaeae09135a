package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ProfitManager-api/internal/domain"
	"github.com/jhoicas/ProfitManager-api/internal/domain/entity"
	"github.com/jhoicas/ProfitManager-api/internal/domain/repository"
)

var (
	_ repository.ClienteRepository  = (*ClienteRepo)(nil)
	_ repository.BodegaRepository   = (*BodegaRepo)(nil)
	_ repository.ProductoRepository = (*ProductoRepo)(nil)
)

// ClienteRepo clientes en memoria.
type ClienteRepo struct{ view }

func (r *ClienteRepo) ExistsCode(_ context.Context, code string) (bool, error) {
	return r.ExistsCodeForOther(context.Background(), 0, code)
}

func (r *ClienteRepo) ExistsCodeForOther(_ context.Context, id int64, code string) (bool, error) {
	defer r.lock()()
	return r.codeTaken(id, &code), nil
}

func (r *ClienteRepo) codeTaken(id int64, code *string) bool {
	if code == nil {
		return false
	}
	for _, c := range r.s.data.clientes {
		if c.ID != id && c.CodigoCliente != nil && *c.CodigoCliente == *code {
			return true
		}
	}
	return false
}

func (r *ClienteRepo) Add(_ context.Context, c *entity.Cliente) (*entity.Cliente, error) {
	defer r.lock()()
	if r.codeTaken(0, c.CodigoCliente) {
		return nil, domain.ErrCodigoClienteEnUso
	}
	row := *c
	row.ID = r.s.nextID()
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	r.s.data.clientes[row.ID] = row
	return &row, nil
}

func (r *ClienteRepo) GetByID(_ context.Context, id int64) (*entity.Cliente, error) {
	defer r.lock()()
	c, ok := r.s.data.clientes[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *ClienteRepo) GetAll(_ context.Context) ([]*entity.Cliente, error) {
	defer r.lock()()
	list := make([]*entity.Cliente, 0, len(r.s.data.clientes))
	for _, c := range r.s.data.clientes {
		c := c
		list = append(list, &c)
	}
	sort.Slice(list, func(i, j int) bool { return byNombre(list[i].Nombre, list[i].ID, list[j].Nombre, list[j].ID) })
	return list, nil
}

func (r *ClienteRepo) SetActive(_ context.Context, id int64, isActive bool, updatedBy *int64, when time.Time) (bool, error) {
	defer r.lock()()
	c, ok := r.s.data.clientes[id]
	if !ok {
		return false, nil
	}
	c.IsActive = isActive
	c.UpdatedBy = updatedBy
	c.UpdatedAt = &when
	r.s.data.clientes[id] = c
	return true, nil
}

func (r *ClienteRepo) Update(_ context.Context, id int64, f entity.ClienteCambios, updatedBy *int64, when time.Time) (bool, error) {
	defer r.lock()()
	c, ok := r.s.data.clientes[id]
	if !ok {
		return false, nil
	}
	if r.codeTaken(id, f.CodigoCliente) {
		return false, domain.ErrCodigoClienteEnUso
	}
	c.CodigoCliente = f.CodigoCliente
	c.Nombre = f.Nombre
	c.TipoPersona = f.TipoPersona
	c.Identificacion = f.Identificacion
	c.Correo = f.Correo
	c.Telefono = f.Telefono
	c.Direccion = f.Direccion
	c.IsActive = f.IsActive
	c.DescuentoPorcentaje = f.DescuentoPorcentaje
	c.DescuentoDescripcion = f.DescuentoDescripcion
	c.UpdatedBy = updatedBy
	c.UpdatedAt = &when
	r.s.data.clientes[id] = c
	return true, nil
}

// BodegaRepo bodegas en memoria.
type BodegaRepo struct{ view }

func (r *BodegaRepo) ExistsCode(_ context.Context, code string) (bool, error) {
	defer r.lock()()
	return r.codeTaken(0, code), nil
}

func (r *BodegaRepo) codeTaken(id int64, code string) bool {
	for _, b := range r.s.data.bodegas {
		if b.ID != id && b.Codigo == code {
			return true
		}
	}
	return false
}

func (r *BodegaRepo) Add(_ context.Context, b *entity.Bodega) (*entity.Bodega, error) {
	defer r.lock()()
	if r.codeTaken(0, b.Codigo) {
		return nil, domain.ErrDuplicate
	}
	row := *b
	row.ID = r.s.nextID()
	r.s.data.bodegas[row.ID] = row
	return &row, nil
}

func (r *BodegaRepo) GetByID(_ context.Context, id int64) (*entity.Bodega, error) {
	defer r.lock()()
	b, ok := r.s.data.bodegas[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (r *BodegaRepo) GetAll(_ context.Context) ([]*entity.Bodega, error) {
	defer r.lock()()
	list := make([]*entity.Bodega, 0, len(r.s.data.bodegas))
	for _, b := range r.s.data.bodegas {
		b := b
		list = append(list, &b)
	}
	sort.Slice(list, func(i, j int) bool { return byNombre(list[i].Nombre, list[i].ID, list[j].Nombre, list[j].ID) })
	return list, nil
}

func (r *BodegaRepo) SetActive(_ context.Context, id int64, isActive bool, updatedBy *int64, when time.Time) (bool, error) {
	defer r.lock()()
	b, ok := r.s.data.bodegas[id]
	if !ok {
		return false, nil
	}
	b.IsActive = isActive
	b.UpdatedBy = updatedBy
	b.UpdatedAt = &when
	r.s.data.bodegas[id] = b
	return true, nil
}

func (r *BodegaRepo) Update(_ context.Context, b *entity.Bodega) (bool, error) {
	defer r.lock()()
	cur, ok := r.s.data.bodegas[b.ID]
	if !ok {
		return false, nil
	}
	if r.codeTaken(b.ID, b.Codigo) {
		return false, domain.ErrDuplicate
	}
	cur.Codigo = b.Codigo
	cur.Nombre = b.Nombre
	cur.Ubicacion = b.Ubicacion
	cur.IsActive = b.IsActive
	cur.UpdatedBy = b.UpdatedBy
	cur.UpdatedAt = b.UpdatedAt
	r.s.data.bodegas[b.ID] = cur
	return true, nil
}

// ProductoRepo productos en memoria.
type ProductoRepo struct{ view }

func (r *ProductoRepo) ExistsCodeForOther(_ context.Context, id int64, code string) (bool, error) {
	defer r.lock()()
	return r.codeTaken(id, code), nil
}

func (r *ProductoRepo) codeTaken(id int64, code string) bool {
	for _, p := range r.s.data.productos {
		if p.ID != id && p.Codigo == code {
			return true
		}
	}
	return false
}

func (r *ProductoRepo) Add(_ context.Context, p *entity.Producto) (*entity.Producto, error) {
	defer r.lock()()
	if r.codeTaken(0, p.Codigo) {
		return nil, domain.ErrDuplicate
	}
	row := *p
	row.ID = r.s.nextID()
	r.s.data.productos[row.ID] = row
	return &row, nil
}

func (r *ProductoRepo) GetByID(_ context.Context, id int64) (*entity.Producto, error) {
	defer r.lock()()
	p, ok := r.s.data.productos[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *ProductoRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Producto, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductoRepo) GetAll(_ context.Context, soloActivos bool) ([]*entity.Producto, error) {
	defer r.lock()()
	list := make([]*entity.Producto, 0, len(r.s.data.productos))
	for _, p := range r.s.data.productos {
		if soloActivos && !p.IsActive {
			continue
		}
		p := p
		list = append(list, &p)
	}
	sort.Slice(list, func(i, j int) bool { return byNombre(list[i].Nombre, list[i].ID, list[j].Nombre, list[j].ID) })
	return list, nil
}

func (r *ProductoRepo) SetActive(_ context.Context, id int64, isActive bool, updatedBy *int64, when time.Time) (bool, error) {
	defer r.lock()()
	p, ok := r.s.data.productos[id]
	if !ok {
		return false, nil
	}
	p.IsActive = isActive
	p.UpdatedBy = updatedBy
	p.UpdatedAt = &when
	r.s.data.productos[id] = p
	return true, nil
}

func (r *ProductoRepo) Update(_ context.Context, p *entity.Producto) (bool, error) {
	defer r.lock()()
	cur, ok := r.s.data.productos[p.ID]
	if !ok {
		return false, nil
	}
	if r.codeTaken(p.ID, p.Codigo) {
		return false, domain.ErrDuplicate
	}
	costo := cur.Costo
	created, createdBy := cur.CreatedAt, cur.CreatedBy
	cur = *p
	cur.Costo = costo
	cur.CreatedAt, cur.CreatedBy = created, createdBy
	r.s.data.productos[p.ID] = cur
	return true, nil
}

func (r *ProductoRepo) UpdateCosto(_ context.Context, id int64, costo decimal.Decimal, updatedBy *int64, when time.Time) error {
	defer r.lock()()
	p, ok := r.s.data.productos[id]
	if !ok {
		return nil
	}
	p.Costo = costo
	p.UpdatedBy = updatedBy
	p.UpdatedAt = &when
	r.s.data.productos[id] = p
	return nil
}

func byNombre(a string, aID int64, b string, bID int64) bool {
	if c := strings.Compare(a, b); c != 0 {
		return c < 0
	}
	return aID < bID
}
