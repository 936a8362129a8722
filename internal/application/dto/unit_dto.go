package dto

import "time"

// CreateUnitRequest registro explícito de una unidad canónica.
type CreateUnitRequest struct {
	Label  string `json:"label" validate:"required,min=1,max=50"`
	System string `json:"system" validate:"required,oneof=us metric"`
}

// UnitResponse salida de una unidad.
type UnitResponse struct {
	ID        string    `json:"id"`
	Label     string    `json:"label"`
	System    string    `json:"system"`
	CreatedAt time.Time `json:"created_at"`
}

// UnitListResponse listado de unidades del usuario.
type UnitListResponse struct {
	Items []UnitResponse `json:"items"`
}
