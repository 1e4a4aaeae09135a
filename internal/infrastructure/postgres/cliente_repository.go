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

var _ repository.ClienteRepository = (*ClienteRepo)(nil)

const clienteColumns = `id, codigo_cliente, nombre, tipo_persona, identificacion, correo, telefono, direccion,
	is_active, descuento_porcentaje, descuento_descripcion, created_at, created_by, updated_at, updated_by`

// ClienteRepo implementación de ClienteRepository sobre PostgreSQL (usable con pool o tx).
type ClienteRepo struct {
	q Querier
}

// NewClienteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClienteRepository(q Querier) *ClienteRepo {
	return &ClienteRepo{q: q}
}

// ExistsCode indica si algún cliente (activo o no) tiene exactamente ese código.
func (r *ClienteRepo) ExistsCode(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM clientes WHERE codigo_cliente = $1)`, code,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists codigo cliente: %w", err)
	}
	return exists, nil
}

// ExistsCodeForOther indica si un cliente distinto de id tiene ese código.
func (r *ClienteRepo) ExistsCodeForOther(ctx context.Context, id int64, code string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM clientes WHERE codigo_cliente = $1 AND id <> $2)`, code, id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists codigo cliente for other: %w", err)
	}
	return exists, nil
}

// Add inserta el cliente y devuelve la fila con ID y created_at asignados por la base.
func (r *ClienteRepo) Add(ctx context.Context, c *entity.Cliente) (*entity.Cliente, error) {
	query := `
		INSERT INTO clientes (codigo_cliente, nombre, tipo_persona, identificacion, correo, telefono, direccion,
			is_active, descuento_porcentaje, descuento_descripcion, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, COALESCE($11, now()), $12)
		RETURNING ` + clienteColumns
	var createdAt *time.Time
	if !c.CreatedAt.IsZero() {
		createdAt = &c.CreatedAt
	}
	saved, err := scanCliente(r.q.QueryRow(ctx, query,
		c.CodigoCliente, c.Nombre, c.TipoPersona, c.Identificacion, c.Correo, c.Telefono, c.Direccion,
		c.IsActive, c.DescuentoPorcentaje, c.DescuentoDescripcion, createdAt, c.CreatedBy,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrCodigoClienteEnUso
		}
		return nil, fmt.Errorf("insert cliente: %w", err)
	}
	return saved, nil
}

// GetByID obtiene un cliente por ID; (nil, nil) si no existe.
func (r *ClienteRepo) GetByID(ctx context.Context, id int64) (*entity.Cliente, error) {
	c, err := scanCliente(r.q.QueryRow(ctx, `SELECT `+clienteColumns+` FROM clientes WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cliente: %w", err)
	}
	return c, nil
}

// GetAll lista todos los clientes ordenados por nombre.
func (r *ClienteRepo) GetAll(ctx context.Context) ([]*entity.Cliente, error) {
	rows, err := r.q.Query(ctx, `SELECT `+clienteColumns+` FROM clientes ORDER BY nombre, id`)
	if err != nil {
		return nil, fmt.Errorf("list clientes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Cliente
	for rows.Next() {
		c, err := scanCliente(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cliente: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// SetActive cambia is_active y sella auditoría; false si el cliente no existe.
func (r *ClienteRepo) SetActive(ctx context.Context, id int64, isActive bool, updatedBy *int64, when time.Time) (bool, error) {
	cmd, err := r.q.Exec(ctx,
		`UPDATE clientes SET is_active = $2, updated_by = $3, updated_at = $4 WHERE id = $1`,
		id, isActive, updatedBy, when,
	)
	if err != nil {
		return false, fmt.Errorf("set active cliente: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// Update sobrescribe todos los campos mutables; false si el cliente no existe.
func (r *ClienteRepo) Update(ctx context.Context, id int64, f entity.ClienteCambios, updatedBy *int64, when time.Time) (bool, error) {
	query := `
		UPDATE clientes SET codigo_cliente = $2, nombre = $3, tipo_persona = $4, identificacion = $5,
			correo = $6, telefono = $7, direccion = $8, is_active = $9, descuento_porcentaje = $10,
			descuento_descripcion = $11, updated_by = $12, updated_at = $13
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		id, f.CodigoCliente, f.Nombre, f.TipoPersona, f.Identificacion, f.Correo, f.Telefono, f.Direccion,
		f.IsActive, f.DescuentoPorcentaje, f.DescuentoDescripcion, updatedBy, when,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return false, domain.ErrCodigoClienteEnUso
		}
		return false, fmt.Errorf("update cliente: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

func scanCliente(row rowScanner) (*entity.Cliente, error) {
	var c entity.Cliente
	err := row.Scan(
		&c.ID, &c.CodigoCliente, &c.Nombre, &c.TipoPersona, &c.Identificacion, &c.Correo, &c.Telefono,
		&c.Direccion, &c.IsActive, &c.DescuentoPorcentaje, &c.DescuentoDescripcion,
		&c.CreatedAt, &c.CreatedBy, &c.UpdatedAt, &c.UpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
