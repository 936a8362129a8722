package repository

import "github.com/jhoicas/recetario-api/internal/domain/entity"

// Columnas permitidas para ordenar búsquedas de recetas (allow-list).
const (
	OrderByTitle    = "title"
	OrderByCreated  = "created_at"
	OrderByEdited   = "edited_at"
	OrderByServings = "servings"
)

// SearchFilter parámetros de búsqueda de recetas de un usuario.
// Term vacío = todas las recetas del usuario.
type SearchFilter struct {
	Term      string
	OrderBy   string // una de las constantes OrderBy*; vacío = OrderByCreated
	Ascending bool
}

// RecipeRepository define el puerto de persistencia para Recipe (DIP).
type RecipeRepository interface {
	Create(recipe *entity.Recipe) error
	GetByOwnerAndID(userID, id string) (*entity.Recipe, error)
	Update(recipe *entity.Recipe) error
	// ToggleFavorite niega is_favorite en un solo UPDATE acotado a la fila
	// (negación atómica en sitio, sin select previo). Devuelve nil si la
	// receta no existe para ese usuario.
	ToggleFavorite(userID, id string) (*entity.Recipe, error)
	// Delete borra la receta; la cascada de FK elimina ingredientes,
	// medidas, instrucciones y vínculos. Devuelve false si no existía.
	Delete(userID, id string) (bool, error)
	// Search busca por coincidencia parcial case-insensitive sobre título,
	// fuente, etiquetas de categorías vinculadas y etiquetas de
	// ingredientes, con unión y deduplicación.
	Search(userID string, filter SearchFilter) ([]*entity.Recipe, error)
}
