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

var _ repository.VencimientoRepository = (*VencimientoRepo)(nil)

const vencimientoColumns = `id, producto_id, bodega_id, lote, fecha_vencimiento, cantidad, is_active,
	created_at, created_by, updated_at, updated_by`

// VencimientoRepo implementación de VencimientoRepository.
type VencimientoRepo struct {
	q Querier
}

// NewVencimientoRepository construye el adaptador.
func NewVencimientoRepository(q Querier) *VencimientoRepo {
	return &VencimientoRepo{q: q}
}

// Add persiste un lote.
func (r *VencimientoRepo) Add(ctx context.Context, v *entity.Vencimiento) (*entity.Vencimiento, error) {
	query := `
		INSERT INTO vencimientos (producto_id, bodega_id, lote, fecha_vencimiento, cantidad, is_active, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + vencimientoColumns
	saved, err := scanVencimiento(r.q.QueryRow(ctx, query,
		v.ProductoID, v.BodegaID, v.Lote, v.FechaVencimiento, v.Cantidad, v.IsActive, v.CreatedAt, v.CreatedBy,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("insert vencimiento: %w", err)
	}
	return saved, nil
}

// GetByID obtiene un lote por ID.
func (r *VencimientoRepo) GetByID(ctx context.Context, id int64) (*entity.Vencimiento, error) {
	v, err := scanVencimiento(r.q.QueryRow(ctx, `SELECT `+vencimientoColumns+` FROM vencimientos WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vencimiento: %w", err)
	}
	return v, nil
}

// GetAll lista todos los lotes por fecha de vencimiento.
func (r *VencimientoRepo) GetAll(ctx context.Context) ([]*entity.Vencimiento, error) {
	return r.list(ctx, `SELECT `+vencimientoColumns+` FROM vencimientos ORDER BY fecha_vencimiento, id`)
}

// ListActivosEntre lotes activos con fecha en [desde, hasta].
func (r *VencimientoRepo) ListActivosEntre(ctx context.Context, desde, hasta time.Time) ([]*entity.Vencimiento, error) {
	return r.list(ctx, `SELECT `+vencimientoColumns+` FROM vencimientos
		WHERE is_active AND fecha_vencimiento BETWEEN $1 AND $2
		ORDER BY fecha_vencimiento, id`, desde, hasta)
}

// ListActivosAntesDe lotes activos ya vencidos respecto a fecha.
func (r *VencimientoRepo) ListActivosAntesDe(ctx context.Context, fecha time.Time) ([]*entity.Vencimiento, error) {
	return r.list(ctx, `SELECT `+vencimientoColumns+` FROM vencimientos
		WHERE is_active AND fecha_vencimiento < $1
		ORDER BY fecha_vencimiento, id`, fecha)
}

// SetActive cambia is_active; false si no existe.
func (r *VencimientoRepo) SetActive(ctx context.Context, id int64, isActive bool, updatedBy *int64, when time.Time) (bool, error) {
	cmd, err := r.q.Exec(ctx,
		`UPDATE vencimientos SET is_active = $2, updated_by = $3, updated_at = $4 WHERE id = $1`,
		id, isActive, updatedBy, when,
	)
	if err != nil {
		return false, fmt.Errorf("set active vencimiento: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *VencimientoRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Vencimiento, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list vencimientos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Vencimiento
	for rows.Next() {
		v, err := scanVencimiento(rows)
		if err != nil {
			return nil, fmt.Errorf("scan vencimiento: %w", err)
		}
		list = append(list, v)
	}
	return list, rows.Err()
}

func scanVencimiento(row rowScanner) (*entity.Vencimiento, error) {
	var v entity.Vencimiento
	if err := row.Scan(&v.ID, &v.ProductoID, &v.BodegaID, &v.Lote, &v.FechaVencimiento, &v.Cantidad,
		&v.IsActive, &v.CreatedAt, &v.CreatedBy, &v.UpdatedAt, &v.UpdatedBy); err != nil {
		return nil, err
	}
	return &v, nil
}
