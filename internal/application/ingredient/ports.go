package ingredient

import (
	"context"

	"github.com/jhoicas/recetario-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que una edición de medida y su
// conversión al otro sistema se apliquen todo-o-nada: si la conversión
// externa falla, la edición primaria también se revierte.
type TxRunner interface {
	RunIngredient(ctx context.Context, fn func(
		ingredientRepo repository.IngredientRepository,
		recipeRepo repository.RecipeRepository,
	) error) error
}
