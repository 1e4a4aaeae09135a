package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/ProfitManager-api/internal/domain"
	"github.com/jhoicas/ProfitManager-api/internal/domain/entity"
	"github.com/jhoicas/ProfitManager-api/internal/domain/repository"
)

var _ repository.VentaRepository = (*VentaRepo)(nil)

const ventaColumns = `id, folio, cliente_id, fecha, subtotal, descuento, total, estado,
	created_at, created_by, updated_at, updated_by`

// VentaRepo implementación de VentaRepository (usable con pool o tx).
type VentaRepo struct {
	q Querier
}

// NewVentaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewVentaRepository(q Querier) *VentaRepo {
	return &VentaRepo{q: q}
}

// Create inserta cabecera y detalles. Debe ejecutarse dentro de una tx para que sea atómico.
func (r *VentaRepo) Create(ctx context.Context, v *entity.Venta) error {
	query := `
		INSERT INTO ventas (folio, cliente_id, fecha, subtotal, descuento, total, estado, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		v.Folio, v.ClienteID, v.Fecha, v.Subtotal, v.Descuento, v.Total, v.Estado, v.CreatedAt, v.CreatedBy,
	).Scan(&v.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert venta: %w", err)
	}
	for i := range v.Detalles {
		d := &v.Detalles[i]
		d.VentaID = v.ID
		err := r.q.QueryRow(ctx, `
			INSERT INTO venta_detalles (venta_id, producto_id, bodega_id, cantidad, precio_unitario, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id`,
			d.VentaID, d.ProductoID, d.BodegaID, d.Cantidad, d.PrecioUnitario, d.Subtotal,
		).Scan(&d.ID)
		if err != nil {
			return fmt.Errorf("insert venta detalle: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la venta con sus detalles; (nil, nil) si no existe.
func (r *VentaRepo) GetByID(ctx context.Context, id int64) (*entity.Venta, error) {
	v, err := scanVenta(r.q.QueryRow(ctx, `SELECT `+ventaColumns+` FROM ventas WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get venta: %w", err)
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, venta_id, producto_id, bodega_id, cantidad, precio_unitario, subtotal
		FROM venta_detalles WHERE venta_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("list venta detalles: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var d entity.VentaDetalle
		if err := rows.Scan(&d.ID, &d.VentaID, &d.ProductoID, &d.BodegaID, &d.Cantidad, &d.PrecioUnitario, &d.Subtotal); err != nil {
			return nil, fmt.Errorf("scan venta detalle: %w", err)
		}
		v.Detalles = append(v.Detalles, d)
	}
	return v, rows.Err()
}

// List lista cabeceras de venta, más recientes primero.
func (r *VentaRepo) List(ctx context.Context, limit, offset int) ([]*entity.Venta, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+ventaColumns+` FROM ventas ORDER BY fecha DESC, id DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list ventas: %w", err)
	}
	defer rows.Close()
	var list []*entity.Venta
	for rows.Next() {
		v, err := scanVenta(rows)
		if err != nil {
			return nil, fmt.Errorf("scan venta: %w", err)
		}
		list = append(list, v)
	}
	return list, rows.Err()
}

// CambiarEstado aplica la transición solo si el estado actual es desde.
func (r *VentaRepo) CambiarEstado(ctx context.Context, id int64, desde, hacia string, updatedBy *int64, when time.Time) (bool, error) {
	cmd, err := r.q.Exec(ctx,
		`UPDATE ventas SET estado = $3, updated_by = $4, updated_at = $5 WHERE id = $1 AND estado = $2`,
		id, desde, hacia, updatedBy, when,
	)
	if err != nil {
		return false, fmt.Errorf("cambiar estado venta: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

func scanVenta(row rowScanner) (*entity.Venta, error) {
	var v entity.Venta
	if err := row.Scan(&v.ID, &v.Folio, &v.ClienteID, &v.Fecha, &v.Subtotal, &v.Descuento, &v.Total,
		&v.Estado, &v.CreatedAt, &v.CreatedBy, &v.UpdatedAt, &v.UpdatedBy); err != nil {
		return nil, err
	}
	return &v, nil
}
