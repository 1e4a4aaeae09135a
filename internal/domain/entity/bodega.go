package entity

import "time"

// Bodega representa una bodega o sucursal donde se almacena inventario.
type Bodega struct {
	ID        int64
	Codigo    string
	Nombre    string
	Ubicacion *string
	IsActive  bool
	CreatedAt time.Time
	CreatedBy *int64
	UpdatedAt *time.Time
	UpdatedBy *int64
}
