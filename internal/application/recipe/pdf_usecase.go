package recipe

import (
	"context"

	"github.com/jhoicas/recetario-api/internal/domain"
	"github.com/jhoicas/recetario-api/internal/domain/repository"
)

// PDFUseCase genera la ficha PDF de una receta.
type PDFUseCase struct {
	recipeRepo      repository.RecipeRepository
	ingredientRepo  repository.IngredientRepository
	instructionRepo repository.InstructionRepository
	generator       PDFGenerator
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(
	recipeRepo repository.RecipeRepository,
	ingredientRepo repository.IngredientRepository,
	instructionRepo repository.InstructionRepository,
	generator PDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		recipeRepo:      recipeRepo,
		ingredientRepo:  ingredientRepo,
		instructionRepo: instructionRepo,
		generator:       generator,
	}
}

// Generate carga la receta completa y devuelve los bytes del PDF.
func (uc *PDFUseCase) Generate(ctx context.Context, userID, id string) ([]byte, error) {
	recipe, err := uc.recipeRepo.GetByOwnerAndID(userID, id)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, domain.ErrNotFound
	}
	ingredients, err := uc.ingredientRepo.ListByParent(id)
	if err != nil {
		return nil, err
	}
	instructions, err := uc.instructionRepo.ListByParent(id)
	if err != nil {
		return nil, err
	}
	return uc.generator.GenerateRecipePDF(ctx, recipe, ingredients, instructions)
}
