package dto

import "time"

// CreateRecipeRequest entrada para crear una receta completa. Las cuatro
// listas de clasificación crean las categorías hermanas que falten bajo la
// raíz canónica correspondiente y vinculan todas a la receta.
type CreateRecipeRequest struct {
	Title        string              `json:"title" validate:"required"`
	URL          string              `json:"url,omitempty"`
	SourceName   string              `json:"source_name,omitempty"`
	ImageURL     string              `json:"image_url,omitempty"`
	Servings     int                 `json:"servings,omitempty"`
	Notes        string              `json:"notes,omitempty"`
	Instructions []string            `json:"instructions,omitempty"`
	Ingredients  []IngredientPayload `json:"ingredients,omitempty"`
	Cuisines     []string            `json:"cuisines,omitempty"`
	Diets        []string            `json:"diets,omitempty"`
	Courses      []string            `json:"courses,omitempty"`
	Occasions    []string            `json:"occasions,omitempty"`
}

// UpdateRecipeRequest actualización parcial. Instructions no vacío
// reemplaza la colección completa; cada entrada de Ingredients se enruta
// por el sincronizador de medidas. Un payload totalmente vacío es inválido.
type UpdateRecipeRequest struct {
	Title        *string                   `json:"title,omitempty"`
	URL          *string                   `json:"url,omitempty"`
	SourceName   *string                   `json:"source_name,omitempty"`
	ImageURL     *string                   `json:"image_url,omitempty"`
	Servings     *int                      `json:"servings,omitempty"`
	Notes        *string                   `json:"notes,omitempty"`
	Instructions []string                  `json:"instructions,omitempty"`
	Ingredients  []UpdateIngredientRequest `json:"ingredients,omitempty"`
}

// IsEmpty indica si no hay ningún campo que aplicar.
func (r UpdateRecipeRequest) IsEmpty() bool {
	return r.Title == nil && r.URL == nil && r.SourceName == nil && r.ImageURL == nil &&
		r.Servings == nil && r.Notes == nil && len(r.Instructions) == 0 && len(r.Ingredients) == 0
}

// InstructionResponse salida de un paso.
type InstructionResponse struct {
	ID      string `json:"id"`
	Ordinal int    `json:"ordinal"`
	Step    string `json:"step"`
}

// RecipeResponse receta completa con colecciones hijas anidadas.
type RecipeResponse struct {
	ID           string                `json:"id"`
	UserID       string                `json:"user_id"`
	Title        string                `json:"title"`
	URL          string                `json:"url,omitempty"`
	SourceName   string                `json:"source_name,omitempty"`
	ImageURL     string                `json:"image_url,omitempty"`
	Servings     int                   `json:"servings,omitempty"`
	Notes        string                `json:"notes,omitempty"`
	IsFavorite   bool                  `json:"is_favorite"`
	Instructions []InstructionResponse `json:"instructions"`
	Ingredients  []IngredientResponse  `json:"ingredients"`
	CategoryIDs  []string              `json:"category_ids,omitempty"`
	CreatedAt    time.Time             `json:"created_at"`
	EditedAt     time.Time             `json:"edited_at"`
}

// RecipeSummary fila de listado/búsqueda (sin colecciones hijas).
type RecipeSummary struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	SourceName string    `json:"source_name,omitempty"`
	ImageURL   string    `json:"image_url,omitempty"`
	Servings   int       `json:"servings,omitempty"`
	IsFavorite bool      `json:"is_favorite"`
	CreatedAt  time.Time `json:"created_at"`
	EditedAt   time.Time `json:"edited_at"`
}

// RecipeListResponse salida de búsqueda.
type RecipeListResponse struct {
	Items []RecipeSummary `json:"items"`
}

// SearchRecipesRequest parámetros de búsqueda (query string).
type SearchRecipesRequest struct {
	Query     string `query:"query"`
	OrderBy   string `query:"order_by"`
	Ascending bool   `query:"asc"`
}

// ImportRecipeRequest entrada para importar una receta desde una URL vía
// el servicio de extracción.
type ImportRecipeRequest struct {
	URL string `json:"url" validate:"required,url"`
}

// ExtractedRecipe respuesta del servicio de extracción: la misma forma
// que espera la creación de recetas, sin listas de clasificación.
type ExtractedRecipe struct {
	Title        string              `json:"title"`
	Servings     int                 `json:"servings"`
	SourceName   string              `json:"source_name"`
	ImageURL     string              `json:"image_url"`
	Instructions []string            `json:"instructions"`
	Ingredients  []IngredientPayload `json:"ingredients"`
}
