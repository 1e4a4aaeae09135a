package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ProfitManager-api/internal/application/dto"
	"github.com/jhoicas/ProfitManager-api/internal/domain"
	"github.com/jhoicas/ProfitManager-api/internal/domain/entity"
	"github.com/jhoicas/ProfitManager-api/internal/domain/repository"
	"github.com/jhoicas/ProfitManager-api/pkg/textutil"
)

// ClienteUseCase casos de uso del ciclo de vida de clientes.
// Los clientes nunca se eliminan: desactivar es el equivalente a borrar.
type ClienteUseCase struct {
	repo repository.ClienteRepository
	now  func() time.Time
}

// NewClienteUseCase construye el caso de uso.
func NewClienteUseCase(repo repository.ClienteRepository) *ClienteUseCase {
	return &ClienteUseCase{repo: repo, now: utcNow}
}

// Create crea un cliente. El nombre se recorta (la validación de no vacío es del llamador);
// los opcionales en blanco quedan en NULL y tipo_persona vacío pasa a "Natural".
func (uc *ClienteUseCase) Create(ctx context.Context, in dto.CreateClienteRequest, actorID *int64) (*dto.ClienteResponse, error) {
	isActive := true
	if in.IsActive != nil {
		isActive = *in.IsActive
	}
	cliente := &entity.Cliente{
		CodigoCliente:  textutil.BlankToNil(in.CodigoCliente),
		Nombre:         textutil.Clean(in.Nombre),
		TipoPersona:    textutil.OrDefault(in.TipoPersona, entity.TipoPersonaNatural),
		Identificacion: textutil.BlankToNil(in.Identificacion),
		Correo:         textutil.BlankToNil(in.Correo),
		Telefono:       textutil.BlankToNil(in.Telefono),
		Direccion:      textutil.BlankToNil(in.Direccion),
		IsActive:       isActive,
		CreatedAt:      uc.now(),
		CreatedBy:      actorID,
	}
	saved, err := uc.repo.Add(ctx, cliente)
	if err != nil {
		return nil, err
	}
	return toClienteResponse(saved), nil
}

// CodeExists indica si algún cliente, activo o no, tiene ese código.
func (uc *ClienteUseCase) CodeExists(ctx context.Context, code string) (bool, error) {
	return uc.repo.ExistsCode(ctx, textutil.Clean(code))
}

// List devuelve todos los clientes.
func (uc *ClienteUseCase) List(ctx context.Context) ([]*dto.ClienteResponse, error) {
	list, err := uc.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ClienteResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toClienteResponse(c))
	}
	return out, nil
}

// GetByID obtiene un cliente; (nil, nil) si no existe.
func (uc *ClienteUseCase) GetByID(ctx context.Context, id int64) (*dto.ClienteResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil || c == nil {
		return nil, err
	}
	return toClienteResponse(c), nil
}

// SetActive activa o desactiva un cliente; (nil, nil) si no existe.
// La relectura posterior no es atómica con la escritura: gana la última escritura.
func (uc *ClienteUseCase) SetActive(ctx context.Context, id int64, isActive bool, actorID *int64) (*dto.ClienteResponse, error) {
	ok, err := uc.repo.SetActive(ctx, id, isActive, actorID, uc.now())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return uc.GetByID(ctx, id)
}

// Update reemplaza los campos mutables de un cliente; (nil, nil) si no existe.
// Un código no vacío que ya use otro cliente devuelve domain.ErrCodigoClienteEnUso
// antes de escribir. La verificación y la escritura no son atómicas; la restricción
// UNIQUE de la tabla es la que decide en caso de carrera.
// El descuento debe estar entre 0 y 100 y se guarda con 2 decimales; fuera de rango es
// domain.ErrInvalidInput.
func (uc *ClienteUseCase) Update(ctx context.Context, id int64, in dto.UpdateClienteRequest, actorID *int64) (*dto.ClienteResponse, error) {
	descuento, err := descuentoPorcentaje(in.DescuentoPorcentaje)
	if err != nil {
		return nil, err
	}
	codigo := textutil.BlankToNil(in.CodigoCliente)
	if codigo != nil {
		taken, err := uc.repo.ExistsCodeForOther(ctx, id, *codigo)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, domain.ErrCodigoClienteEnUso
		}
	}
	cambios := entity.ClienteCambios{
		CodigoCliente:        codigo,
		Nombre:               textutil.Clean(in.Nombre),
		TipoPersona:          textutil.OrDefault(in.TipoPersona, entity.TipoPersonaNatural),
		Identificacion:       textutil.BlankToNil(in.Identificacion),
		Correo:               textutil.BlankToNil(in.Correo),
		Telefono:             textutil.BlankToNil(in.Telefono),
		Direccion:            textutil.BlankToNil(in.Direccion),
		IsActive:             in.IsActive,
		DescuentoPorcentaje:  descuento,
		DescuentoDescripcion: in.DescuentoDescripcion,
	}
	ok, err := uc.repo.Update(ctx, id, cambios, actorID, uc.now())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return uc.GetByID(ctx, id)
}

var cienPorCiento = decimal.NewFromInt(100)

// descuentoPorcentaje valida el rango de la columna NUMERIC(5,2).
func descuentoPorcentaje(p *decimal.Decimal) (*decimal.Decimal, error) {
	if p == nil {
		return nil, nil
	}
	r := p.Round(2)
	if r.IsNegative() || r.GreaterThan(cienPorCiento) {
		return nil, domain.ErrInvalidInput
	}
	return &r, nil
}

func toClienteResponse(c *entity.Cliente) *dto.ClienteResponse {
	if c == nil {
		return nil
	}
	return &dto.ClienteResponse{
		ID:                   c.ID,
		CodigoCliente:        c.CodigoCliente,
		Nombre:               c.Nombre,
		TipoPersona:          c.TipoPersona,
		Identificacion:       c.Identificacion,
		Correo:               c.Correo,
		Telefono:             c.Telefono,
		Direccion:            c.Direccion,
		IsActive:             c.IsActive,
		DescuentoPorcentaje:  c.DescuentoPorcentaje,
		DescuentoDescripcion: c.DescuentoDescripcion,
		CreatedAt:            c.CreatedAt,
		CreatedBy:            c.CreatedBy,
		UpdatedAt:            c.UpdatedAt,
		UpdatedBy:            c.UpdatedBy,
	}
}

func utcNow() time.Time {
	return time.Now().UTC()
}
