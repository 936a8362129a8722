package dto

import "time"

// CreateCategoryRequest entrada para crear una categoría. ParentID vacío
// crea una raíz nueva (no canónica) para el usuario.
type CreateCategoryRequest struct {
	Label    string `json:"label" validate:"required,min=1,max=100"`
	ParentID string `json:"parent_id,omitempty"`
}

// UpdateCategoryRequest actualización parcial: renombrar y/o re-parentar.
type UpdateCategoryRequest struct {
	Label    *string `json:"label,omitempty"`
	ParentID *string `json:"parent_id,omitempty"`
}

// CategoryResponse salida de una categoría con hijos directos y recetas
// vinculadas (solo ids).
type CategoryResponse struct {
	ID        string    `json:"id"`
	Label     string    `json:"label"`
	ParentID  string    `json:"parent_id,omitempty"`
	Protected bool      `json:"protected"`
	ChildIDs  []string  `json:"child_ids"`
	RecipeIDs []string  `json:"recipe_ids"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CategoryNodeResponse nodo con su subárbol completamente expandido.
type CategoryNodeResponse struct {
	ID        string                  `json:"id"`
	Label     string                  `json:"label"`
	Protected bool                    `json:"protected"`
	Children  []*CategoryNodeResponse `json:"children"`
}
