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

var _ repository.OrdenCompraRepository = (*OrdenCompraRepo)(nil)

const ordenCompraColumns = `id, numero, proveedor, bodega_id, fecha, fecha_esperada, total, estado,
	created_at, created_by, updated_at, updated_by`

// OrdenCompraRepo implementación de OrdenCompraRepository (usable con pool o tx).
type OrdenCompraRepo struct {
	q Querier
}

// NewOrdenCompraRepository construye el adaptador.
func NewOrdenCompraRepository(q Querier) *OrdenCompraRepo {
	return &OrdenCompraRepo{q: q}
}

// Create inserta cabecera y detalles.
func (r *OrdenCompraRepo) Create(ctx context.Context, o *entity.OrdenCompra) error {
	query := `
		INSERT INTO ordenes_compra (numero, proveedor, bodega_id, fecha, fecha_esperada, total, estado, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		o.Numero, o.Proveedor, o.BodegaID, o.Fecha, o.FechaEsperada, o.Total, o.Estado, o.CreatedAt, o.CreatedBy,
	).Scan(&o.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert orden compra: %w", err)
	}
	for i := range o.Detalles {
		d := &o.Detalles[i]
		d.OrdenID = o.ID
		err := r.q.QueryRow(ctx, `
			INSERT INTO orden_compra_detalles (orden_id, producto_id, cantidad, costo_unitario, subtotal)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id`,
			d.OrdenID, d.ProductoID, d.Cantidad, d.CostoUnitario, d.Subtotal,
		).Scan(&d.ID)
		if err != nil {
			return fmt.Errorf("insert orden compra detalle: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la orden con sus detalles; (nil, nil) si no existe.
func (r *OrdenCompraRepo) GetByID(ctx context.Context, id int64) (*entity.OrdenCompra, error) {
	o, err := scanOrdenCompra(r.q.QueryRow(ctx, `SELECT `+ordenCompraColumns+` FROM ordenes_compra WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get orden compra: %w", err)
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, orden_id, producto_id, cantidad, costo_unitario, subtotal
		FROM orden_compra_detalles WHERE orden_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("list orden compra detalles: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var d entity.OrdenCompraDetalle
		if err := rows.Scan(&d.ID, &d.OrdenID, &d.ProductoID, &d.Cantidad, &d.CostoUnitario, &d.Subtotal); err != nil {
			return nil, fmt.Errorf("scan orden compra detalle: %w", err)
		}
		o.Detalles = append(o.Detalles, d)
	}
	return o, rows.Err()
}

// List lista cabeceras, más recientes primero.
func (r *OrdenCompraRepo) List(ctx context.Context, limit, offset int) ([]*entity.OrdenCompra, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+ordenCompraColumns+` FROM ordenes_compra ORDER BY fecha DESC, id DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list ordenes compra: %w", err)
	}
	defer rows.Close()
	var list []*entity.OrdenCompra
	for rows.Next() {
		o, err := scanOrdenCompra(rows)
		if err != nil {
			return nil, fmt.Errorf("scan orden compra: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

// CambiarEstado aplica la transición solo si el estado actual es desde.
func (r *OrdenCompraRepo) CambiarEstado(ctx context.Context, id int64, desde, hacia string, updatedBy *int64, when time.Time) (bool, error) {
	cmd, err := r.q.Exec(ctx,
		`UPDATE ordenes_compra SET estado = $3, updated_by = $4, updated_at = $5 WHERE id = $1 AND estado = $2`,
		id, desde, hacia, updatedBy, when,
	)
	if err != nil {
		return false, fmt.Errorf("cambiar estado orden compra: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

func scanOrdenCompra(row rowScanner) (*entity.OrdenCompra, error) {
	var o entity.OrdenCompra
	if err := row.Scan(&o.ID, &o.Numero, &o.Proveedor, &o.BodegaID, &o.Fecha, &o.FechaEsperada, &o.Total,
		&o.Estado, &o.CreatedAt, &o.CreatedBy, &o.UpdatedAt, &o.UpdatedBy); err != nil {
		return nil, err
	}
	return &o, nil
}
