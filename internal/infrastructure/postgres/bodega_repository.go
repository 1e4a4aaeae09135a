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

var _ repository.BodegaRepository = (*BodegaRepo)(nil)

const bodegaColumns = `id, codigo, nombre, ubicacion, is_active, created_at, created_by, updated_at, updated_by`

// BodegaRepo implementación del puerto BodegaRepository sobre PostgreSQL.
type BodegaRepo struct {
	q Querier
}

// NewBodegaRepository construye el adaptador de persistencia para bodegas.
func NewBodegaRepository(q Querier) *BodegaRepo {
	return &BodegaRepo{q: q}
}

// ExistsCode indica si alguna bodega tiene ese código.
func (r *BodegaRepo) ExistsCode(ctx context.Context, code string) (bool, error) {
	var exists bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM bodegas WHERE codigo = $1)`, code).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists codigo bodega: %w", err)
	}
	return exists, nil
}

// Add persiste una nueva bodega.
func (r *BodegaRepo) Add(ctx context.Context, b *entity.Bodega) (*entity.Bodega, error) {
	query := `
		INSERT INTO bodegas (codigo, nombre, ubicacion, is_active, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + bodegaColumns
	saved, err := scanBodega(r.q.QueryRow(ctx, query, b.Codigo, b.Nombre, b.Ubicacion, b.IsActive, b.CreatedAt, b.CreatedBy))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicate
		}
		return nil, fmt.Errorf("insert bodega: %w", err)
	}
	return saved, nil
}

// GetByID obtiene una bodega por ID.
func (r *BodegaRepo) GetByID(ctx context.Context, id int64) (*entity.Bodega, error) {
	b, err := scanBodega(r.q.QueryRow(ctx, `SELECT `+bodegaColumns+` FROM bodegas WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bodega: %w", err)
	}
	return b, nil
}

// GetAll lista las bodegas por nombre.
func (r *BodegaRepo) GetAll(ctx context.Context) ([]*entity.Bodega, error) {
	rows, err := r.q.Query(ctx, `SELECT `+bodegaColumns+` FROM bodegas ORDER BY nombre, id`)
	if err != nil {
		return nil, fmt.Errorf("list bodegas: %w", err)
	}
	defer rows.Close()
	var list []*entity.Bodega
	for rows.Next() {
		b, err := scanBodega(rows)
		if err != nil {
			return nil, fmt.Errorf("scan bodega: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

// SetActive cambia is_active; false si no existe.
func (r *BodegaRepo) SetActive(ctx context.Context, id int64, isActive bool, updatedBy *int64, when time.Time) (bool, error) {
	cmd, err := r.q.Exec(ctx,
		`UPDATE bodegas SET is_active = $2, updated_by = $3, updated_at = $4 WHERE id = $1`,
		id, isActive, updatedBy, when,
	)
	if err != nil {
		return false, fmt.Errorf("set active bodega: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// Update actualiza una bodega existente; false si no existe.
func (r *BodegaRepo) Update(ctx context.Context, b *entity.Bodega) (bool, error) {
	cmd, err := r.q.Exec(ctx, `
		UPDATE bodegas SET codigo = $2, nombre = $3, ubicacion = $4, is_active = $5, updated_by = $6, updated_at = $7
		WHERE id = $1`,
		b.ID, b.Codigo, b.Nombre, b.Ubicacion, b.IsActive, b.UpdatedBy, b.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return false, domain.ErrDuplicate
		}
		return false, fmt.Errorf("update bodega: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

func scanBodega(row rowScanner) (*entity.Bodega, error) {
	var b entity.Bodega
	if err := row.Scan(&b.ID, &b.Codigo, &b.Nombre, &b.Ubicacion, &b.IsActive,
		&b.CreatedAt, &b.CreatedBy, &b.UpdatedAt, &b.UpdatedBy); err != nil {
		return nil, err
	}
	return &b, nil
}
