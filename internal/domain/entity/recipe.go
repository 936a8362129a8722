package entity

import "time"

// Recipe es el agregado raíz: posee sus ingredientes, instrucciones y
// vínculos a categorías. Borrar la receta borra en cascada los tres
// (FK ON DELETE CASCADE en el esquema).
type Recipe struct {
	ID         string
	UserID     string
	Title      string
	URL        string // fuente original si fue importada
	SourceName string
	ImageURL   string
	Servings   int
	Notes      string
	IsFavorite bool
	CreatedAt  time.Time
	EditedAt   time.Time
}

// RecipeCategoryLink vínculo N:M entre receta y categoría. Par único;
// nunca se actualiza, solo se crea y se borra en cascada.
type RecipeCategoryLink struct {
	RecipeID   string
	CategoryID string
}
