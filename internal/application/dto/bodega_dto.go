package dto

import "time"

// CreateBodegaRequest entrada para crear una bodega.
type CreateBodegaRequest struct {
	Codigo    string  `json:"codigo" validate:"required,min=1,max=50"`
	Nombre    string  `json:"nombre" validate:"required,min=1,max=200"`
	Ubicacion *string `json:"ubicacion"`
}

// UpdateBodegaRequest entrada para actualizar una bodega (reemplazo completo).
type UpdateBodegaRequest struct {
	Codigo    string  `json:"codigo" validate:"required,min=1,max=50"`
	Nombre    string  `json:"nombre" validate:"required,min=1,max=200"`
	Ubicacion *string `json:"ubicacion"`
	IsActive  bool    `json:"is_active"`
}

// BodegaResponse salida de una bodega.
type BodegaResponse struct {
	ID        int64      `json:"id"`
	Codigo    string     `json:"codigo"`
	Nombre    string     `json:"nombre"`
	Ubicacion *string    `json:"ubicacion"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	CreatedBy *int64     `json:"created_by"`
	UpdatedAt *time.Time `json:"updated_at"`
	UpdatedBy *int64     `json:"updated_by"`
}
