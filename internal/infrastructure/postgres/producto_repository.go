package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ProfitManager-api/internal/domain"
	"github.com/jhoicas/ProfitManager-api/internal/domain/entity"
	"github.com/jhoicas/ProfitManager-api/internal/domain/repository"
)

var _ repository.ProductoRepository = (*ProductoRepo)(nil)

const productoColumns = `id, codigo, nombre, descripcion, unidad_medida, precio_venta, costo, stock_minimo,
	maneja_vencimiento, is_active, created_at, created_by, updated_at, updated_by`

// ProductoRepo implementación del puerto ProductoRepository sobre PostgreSQL (usable con pool o tx).
type ProductoRepo struct {
	q Querier
}

// NewProductoRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductoRepository(q Querier) *ProductoRepo {
	return &ProductoRepo{q: q}
}

// ExistsCodeForOther indica si otro producto (id distinto) tiene ese código.
func (r *ProductoRepo) ExistsCodeForOther(ctx context.Context, id int64, code string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM productos WHERE codigo = $1 AND id <> $2)`, code, id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists codigo producto: %w", err)
	}
	return exists, nil
}

// Add persiste un nuevo producto.
func (r *ProductoRepo) Add(ctx context.Context, p *entity.Producto) (*entity.Producto, error) {
	query := `
		INSERT INTO productos (codigo, nombre, descripcion, unidad_medida, precio_venta, costo, stock_minimo,
			maneja_vencimiento, is_active, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + productoColumns
	saved, err := scanProducto(r.q.QueryRow(ctx, query,
		p.Codigo, p.Nombre, p.Descripcion, p.UnidadMedida, p.PrecioVenta, p.Costo, p.StockMinimo,
		p.ManejaVencimiento, p.IsActive, p.CreatedAt, p.CreatedBy,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicate
		}
		return nil, fmt.Errorf("insert producto: %w", err)
	}
	return saved, nil
}

// GetByID obtiene un producto por ID.
func (r *ProductoRepo) GetByID(ctx context.Context, id int64) (*entity.Producto, error) {
	return r.getOne(ctx, `SELECT `+productoColumns+` FROM productos WHERE id = $1`, id)
}

// GetForUpdate lee el producto bloqueando su fila hasta el fin de la tx.
func (r *ProductoRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Producto, error) {
	return r.getOne(ctx, `SELECT `+productoColumns+` FROM productos WHERE id = $1 FOR UPDATE`, id)
}

func (r *ProductoRepo) getOne(ctx context.Context, query string, id int64) (*entity.Producto, error) {
	p, err := scanProducto(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get producto: %w", err)
	}
	return p, nil
}

// GetAll lista productos por nombre.
func (r *ProductoRepo) GetAll(ctx context.Context, soloActivos bool) ([]*entity.Producto, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+productoColumns+` FROM productos WHERE ($1 = false OR is_active) ORDER BY nombre, id`, soloActivos)
	if err != nil {
		return nil, fmt.Errorf("list productos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Producto
	for rows.Next() {
		p, err := scanProducto(rows)
		if err != nil {
			return nil, fmt.Errorf("scan producto: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// SetActive cambia is_active; false si no existe.
func (r *ProductoRepo) SetActive(ctx context.Context, id int64, isActive bool, updatedBy *int64, when time.Time) (bool, error) {
	cmd, err := r.q.Exec(ctx,
		`UPDATE productos SET is_active = $2, updated_by = $3, updated_at = $4 WHERE id = $1`,
		id, isActive, updatedBy, when,
	)
	if err != nil {
		return false, fmt.Errorf("set active producto: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// Update actualiza un producto existente. No modifica costo.
func (r *ProductoRepo) Update(ctx context.Context, p *entity.Producto) (bool, error) {
	query := `
		UPDATE productos SET codigo = $2, nombre = $3, descripcion = $4, unidad_medida = $5, precio_venta = $6,
			stock_minimo = $7, maneja_vencimiento = $8, is_active = $9, updated_by = $10, updated_at = $11
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		p.ID, p.Codigo, p.Nombre, p.Descripcion, p.UnidadMedida, p.PrecioVenta,
		p.StockMinimo, p.ManejaVencimiento, p.IsActive, p.UpdatedBy, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return false, domain.ErrDuplicate
		}
		return false, fmt.Errorf("update producto: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// UpdateCosto actualiza solo el costo promedio (usado al recibir compras).
func (r *ProductoRepo) UpdateCosto(ctx context.Context, id int64, costo decimal.Decimal, updatedBy *int64, when time.Time) error {
	_, err := r.q.Exec(ctx,
		`UPDATE productos SET costo = $2, updated_by = $3, updated_at = $4 WHERE id = $1`,
		id, costo, updatedBy, when,
	)
	if err != nil {
		return fmt.Errorf("update costo producto: %w", err)
	}
	return nil
}

func scanProducto(row rowScanner) (*entity.Producto, error) {
	var p entity.Producto
	if err := row.Scan(&p.ID, &p.Codigo, &p.Nombre, &p.Descripcion, &p.UnidadMedida, &p.PrecioVenta,
		&p.Costo, &p.StockMinimo, &p.ManejaVencimiento, &p.IsActive,
		&p.CreatedAt, &p.CreatedBy, &p.UpdatedAt, &p.UpdatedBy); err != nil {
		return nil, err
	}
	return &p, nil
}
