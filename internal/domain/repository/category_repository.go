package repository

import "github.com/jhoicas/recetario-api/internal/domain/entity"

// CategoryRepository define el puerto de persistencia para Category (DIP).
// parentID vacío significa nivel raíz en todas las operaciones.
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	// GetSibling busca una categoría por (usuario, padre, label); nil si no hay.
	GetSibling(userID, parentID, label string) (*entity.Category, error)
	ListByParent(userID, parentID string) ([]*entity.Category, error)
	ListRoots(userID string) ([]*entity.Category, error)
	// ListByOwner devuelve todas las categorías del usuario (para armar el
	// índice padre->hijos del recorrido de subárbol).
	ListByOwner(userID string) ([]*entity.Category, error)
	Update(category *entity.Category) error
	// Delete borra el nodo; la cascada de FK elimina descendientes y
	// vínculos a recetas. Devuelve false si no existía.
	Delete(id string) (bool, error)
	// LinkRecipe inserta el vínculo receta-categoría. domain.ErrDuplicate
	// si el par ya existe.
	LinkRecipe(categoryID, recipeID string) error
	ListRecipeIDs(categoryID string) ([]string, error)
	ListCategoryIDsByRecipe(recipeID string) ([]string, error)
}
