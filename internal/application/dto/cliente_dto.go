package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateClienteRequest entrada para crear un cliente. Solo nombre es obligatorio.
type CreateClienteRequest struct {
	Nombre         string  `json:"nombre" validate:"required,min=1,max=200"`
	CodigoCliente  *string `json:"codigo_cliente"`
	TipoPersona    *string `json:"tipo_persona"`
	Identificacion *string `json:"identificacion"`
	Correo         *string `json:"correo"`
	Telefono       *string `json:"telefono"`
	Direccion      *string `json:"direccion"`
	IsActive       *bool   `json:"is_active"`
}

// UpdateClienteRequest entrada para actualizar un cliente. Reemplaza todos los campos mutables:
// un campo opcional ausente o en blanco queda en NULL.
type UpdateClienteRequest struct {
	Nombre               string           `json:"nombre" validate:"required,min=1,max=200"`
	CodigoCliente        *string          `json:"codigo_cliente"`
	TipoPersona          *string          `json:"tipo_persona"`
	Identificacion       *string          `json:"identificacion"`
	Correo               *string          `json:"correo"`
	Telefono             *string          `json:"telefono"`
	Direccion            *string          `json:"direccion"`
	IsActive             bool             `json:"is_active"`
	DescuentoPorcentaje  *decimal.Decimal `json:"descuento_porcentaje"`
	DescuentoDescripcion *string          `json:"descuento_descripcion"`
}

// ClienteResponse salida de un cliente.
type ClienteResponse struct {
	ID                   int64            `json:"id"`
	CodigoCliente        *string          `json:"codigo_cliente"`
	Nombre               string           `json:"nombre"`
	TipoPersona          string           `json:"tipo_persona"`
	Identificacion       *string          `json:"identificacion"`
	Correo               *string          `json:"correo"`
	Telefono             *string          `json:"telefono"`
	Direccion            *string          `json:"direccion"`
	IsActive             bool             `json:"is_active"`
	DescuentoPorcentaje  *decimal.Decimal `json:"descuento_porcentaje"`
	DescuentoDescripcion *string          `json:"descuento_descripcion"`
	CreatedAt            time.Time        `json:"created_at"`
	CreatedBy            *int64           `json:"created_by"`
	UpdatedAt            *time.Time       `json:"updated_at"`
	UpdatedBy            *int64           `json:"updated_by"`
}

// CodigoExisteResponse salida de la validación previa de código.
type CodigoExisteResponse struct {
	Codigo string `json:"codigo"`
	Existe bool   `json:"existe"`
}
