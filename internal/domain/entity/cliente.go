package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TipoPersonaNatural es el valor por defecto de TipoPersona.
const TipoPersonaNatural = "Natural"

// Cliente refleja una fila de la tabla clientes.
// Los campos opcionales son punteros: nil equivale a NULL, nunca a cadena vacía.
type Cliente struct {
	ID                   int64
	CodigoCliente        *string // único cuando no es NULL
	Nombre               string
	TipoPersona          string
	Identificacion       *string
	Correo               *string
	Telefono             *string
	Direccion            *string
	IsActive             bool
	DescuentoPorcentaje  *decimal.Decimal
	DescuentoDescripcion *string
	CreatedAt            time.Time
	CreatedBy            *int64
	UpdatedAt            *time.Time
	UpdatedBy            *int64
}

// ClienteCambios agrupa los campos mutables que Update sobrescribe completos.
type ClienteCambios struct {
	CodigoCliente        *string
	Nombre               string
	TipoPersona          string
	Identificacion       *string
	Correo               *string
	Telefono             *string
	Direccion            *string
	IsActive             bool
	DescuentoPorcentaje  *decimal.Decimal
	DescuentoDescripcion *string
}
