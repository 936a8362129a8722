package recipe

import (
	"context"

	"github.com/jhoicas/recetario-api/internal/application/dto"
	"github.com/jhoicas/recetario-api/internal/domain/entity"
	"github.com/jhoicas/recetario-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con todos
// los repositorios del agregado atados a esa tx. La creación y la
// actualización de recetas escriben varias tablas (receta + hijas +
// vínculos) y deben ser todo-o-nada.
type TxRunner interface {
	RunRecipe(ctx context.Context, fn func(
		recipeRepo repository.RecipeRepository,
		ingredientRepo repository.IngredientRepository,
		instructionRepo repository.InstructionRepository,
		categoryRepo repository.CategoryRepository,
		unitRepo repository.UnitRepository,
	) error) error
}

// MeasureSync es el sincronizador de medidas compuesto dentro de la tx de
// actualización de receta (una llamada por entrada de ingredientes).
type MeasureSync interface {
	UpdateInTx(
		ctx context.Context,
		ingredientRepo repository.IngredientRepository,
		recipeRepo repository.RecipeRepository,
		userID, ingredientID string,
		in dto.UpdateIngredientRequest,
	) (*entity.Ingredient, error)
}

// PDFGenerator genera la ficha imprimible de una receta.
type PDFGenerator interface {
	GenerateRecipePDF(
		ctx context.Context,
		recipe *entity.Recipe,
		ingredients []*entity.Ingredient,
		instructions []*entity.Instruction,
	) ([]byte, error)
}
