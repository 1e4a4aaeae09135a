package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ProfitManager-api/internal/domain/entity"
	"github.com/jhoicas/ProfitManager-api/internal/domain/repository"
)

var _ repository.InventarioRepository = (*InventarioRepo)(nil)

// InventarioRepo implementación de InventarioRepository (usable con pool o tx).
type InventarioRepo struct {
	q Querier
}

// NewInventarioRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventarioRepository(q Querier) *InventarioRepo {
	return &InventarioRepo{q: q}
}

// Get obtiene la existencia; si no hay fila devuelve cantidad cero.
func (r *InventarioRepo) Get(ctx context.Context, productoID, bodegaID int64) (*entity.Inventario, error) {
	return r.get(ctx, `
		SELECT producto_id, bodega_id, cantidad, updated_at, updated_by
		FROM inventario WHERE producto_id = $1 AND bodega_id = $2`, productoID, bodegaID)
}

// GetForUpdate igual que Get pero bloqueando la fila hasta el fin de la transacción.
func (r *InventarioRepo) GetForUpdate(ctx context.Context, productoID, bodegaID int64) (*entity.Inventario, error) {
	return r.get(ctx, `
		SELECT producto_id, bodega_id, cantidad, updated_at, updated_by
		FROM inventario WHERE producto_id = $1 AND bodega_id = $2
		FOR UPDATE`, productoID, bodegaID)
}

func (r *InventarioRepo) get(ctx context.Context, query string, productoID, bodegaID int64) (*entity.Inventario, error) {
	inv, err := scanInventario(r.q.QueryRow(ctx, query, productoID, bodegaID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Inventario{ProductoID: productoID, BodegaID: bodegaID, Cantidad: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get inventario: %w", err)
	}
	return inv, nil
}

// Upsert inserta o actualiza la existencia del par producto+bodega.
func (r *InventarioRepo) Upsert(ctx context.Context, inv *entity.Inventario) error {
	query := `
		INSERT INTO inventario (producto_id, bodega_id, cantidad, updated_at, updated_by)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (producto_id, bodega_id) DO UPDATE
		SET cantidad = EXCLUDED.cantidad, updated_at = EXCLUDED.updated_at, updated_by = EXCLUDED.updated_by`
	_, err := r.q.Exec(ctx, query, inv.ProductoID, inv.BodegaID, inv.Cantidad, inv.UpdatedAt, inv.UpdatedBy)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("upsert inventario: producto o bodega inexistente: %w", err)
		}
		return fmt.Errorf("upsert inventario: %w", err)
	}
	return nil
}

// ListByBodega lista las existencias de una bodega.
func (r *InventarioRepo) ListByBodega(ctx context.Context, bodegaID int64) ([]*entity.Inventario, error) {
	rows, err := r.q.Query(ctx, `
		SELECT producto_id, bodega_id, cantidad, updated_at, updated_by
		FROM inventario WHERE bodega_id = $1 ORDER BY producto_id`, bodegaID)
	if err != nil {
		return nil, fmt.Errorf("list inventario: %w", err)
	}
	defer rows.Close()
	var list []*entity.Inventario
	for rows.Next() {
		inv, err := scanInventario(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventario: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

// StockTotal suma la existencia de un producto en todas las bodegas.
func (r *InventarioRepo) StockTotal(ctx context.Context, productoID int64) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(cantidad), 0) FROM inventario WHERE producto_id = $1`, productoID,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("stock total: %w", err)
	}
	return total, nil
}

// BajoStockMinimo lista productos activos cuya existencia total es menor al stock mínimo.
func (r *InventarioRepo) BajoStockMinimo(ctx context.Context) ([]*entity.ProductoBajoMinimo, error) {
	query := `
		SELECT p.id, p.codigo, p.nombre, p.stock_minimo, COALESCE(SUM(i.cantidad), 0) AS total
		FROM productos p
		LEFT JOIN inventario i ON i.producto_id = p.id
		WHERE p.is_active AND p.stock_minimo > 0
		GROUP BY p.id, p.codigo, p.nombre, p.stock_minimo
		HAVING COALESCE(SUM(i.cantidad), 0) < p.stock_minimo
		ORDER BY p.nombre, p.id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("bajo stock minimo: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductoBajoMinimo
	for rows.Next() {
		var b entity.ProductoBajoMinimo
		if err := rows.Scan(&b.ProductoID, &b.Codigo, &b.Nombre, &b.StockMinimo, &b.StockTotal); err != nil {
			return nil, fmt.Errorf("scan bajo minimo: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

func scanInventario(row rowScanner) (*entity.Inventario, error) {
	var inv entity.Inventario
	if err := row.Scan(&inv.ProductoID, &inv.BodegaID, &inv.Cantidad, &inv.UpdatedAt, &inv.UpdatedBy); err != nil {
		return nil, err
	}
	return &inv, nil
}
