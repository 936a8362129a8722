// Package recipe es la raíz de composición del agregado Receta: ensambla
// la fila escalar con sus colecciones hijas ordenadas (ingredientes e
// instrucciones, vía el secuenciador de ordinales), el sincronizador de
// medidas y los vínculos a categorías.
package recipe

import (
	"context"
	"strings"

	apping "github.com/jhoicas/recetario-api/internal/application/ingredient"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/recetario-api/internal/application/dto"
	"github.com/jhoicas/recetario-api/internal/domain"
	"github.com/jhoicas/recetario-api/internal/domain/entity"
	"github.com/jhoicas/recetario-api/internal/domain/ordinal"
	"github.com/jhoicas/recetario-api/internal/domain/repository"
)

// UseCase operaciones del agregado Receta.
type UseCase struct {
	txRunner        TxRunner
	recipeRepo      repository.RecipeRepository
	ingredientRepo  repository.IngredientRepository
	instructionRepo repository.InstructionRepository
	categoryRepo    repository.CategoryRepository
	measureSync     MeasureSync
}

// NewUseCase construye el caso de uso. Los repos recibidos van atados al
// pool (lecturas); las escrituras multi-tabla usan txRunner.
func NewUseCase(
	txRunner TxRunner,
	recipeRepo repository.RecipeRepository,
	ingredientRepo repository.IngredientRepository,
	instructionRepo repository.InstructionRepository,
	categoryRepo repository.CategoryRepository,
	measureSync MeasureSync,
) *UseCase {
	return &UseCase{
		txRunner:        txRunner,
		recipeRepo:      recipeRepo,
		ingredientRepo:  ingredientRepo,
		instructionRepo: instructionRepo,
		categoryRepo:    categoryRepo,
		measureSync:     measureSync,
	}
}

// Get carga la receta con instrucciones e ingredientes en orden de ordinal
// y los ids de categorías vinculadas. ErrNotFound si no existe o es ajena.
func (uc *UseCase) Get(ctx context.Context, userID, id string) (*dto.RecipeResponse, error) {
	recipe, err := uc.recipeRepo.GetByOwnerAndID(userID, id)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, domain.ErrNotFound
	}
	return uc.assemble(recipe, uc.ingredientRepo, uc.instructionRepo, uc.categoryRepo)
}

// Update aplica una actualización parcial dentro de una transacción:
// escalares directo, Instructions no vacío reemplaza la colección completa
// y cada entrada de Ingredients pasa por el sincronizador de medidas.
// Siempre toca edited_at, incluso si solo cambian escalares.
func (uc *UseCase) Update(ctx context.Context, userID, id string, in dto.UpdateRecipeRequest) (*dto.RecipeResponse, error) {
	if in.IsEmpty() {
		return nil, domain.ErrInvalidInput
	}
	var out *dto.RecipeResponse
	err := uc.txRunner.RunRecipe(ctx, func(
		recipeRepo repository.RecipeRepository,
		ingredientRepo repository.IngredientRepository,
		instructionRepo repository.InstructionRepository,
		categoryRepo repository.CategoryRepository,
		_ repository.UnitRepository,
	) error {
		recipe, err := recipeRepo.GetByOwnerAndID(userID, id)
		if err != nil {
			return err
		}
		if recipe == nil {
			return domain.ErrNotFound
		}

		applyScalars(recipe, in)

		if len(in.Instructions) > 0 {
			seq := ordinal.NewSequencer[*entity.Instruction](instructionRepo)
			if _, err := seq.ReplaceAll(recipe.ID, instructionItems(recipe.ID, in.Instructions)); err != nil {
				return err
			}
		}
		for _, entry := range in.Ingredients {
			if entry.ID == "" {
				return domain.ErrInvalidInput
			}
			if _, err := uc.measureSync.UpdateInTx(ctx, ingredientRepo, recipeRepo, userID, entry.ID, entry); err != nil {
				return err
			}
		}

		recipe.EditedAt = nowFunc()
		if err := recipeRepo.Update(recipe); err != nil {
			return err
		}
		out, err = uc.assemble(recipe, ingredientRepo, instructionRepo, categoryRepo)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Remove borra la receta; la cascada de almacenamiento elimina
// ingredientes, medidas, instrucciones y vínculos a categorías.
func (uc *UseCase) Remove(ctx context.Context, userID, id string) error {
	ok, err := uc.recipeRepo.Delete(userID, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

// ToggleFavorite niega el flag favorito con un solo UPDATE atómico acotado
// a la fila (sin select previo: dos toggles concurrentes no se pierden).
func (uc *UseCase) ToggleFavorite(ctx context.Context, userID, id string) (*dto.RecipeSummary, error) {
	recipe, err := uc.recipeRepo.ToggleFavorite(userID, id)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, domain.ErrNotFound
	}
	summary := toSummary(recipe)
	return &summary, nil
}

// Search busca recetas del usuario. Query vacío devuelve todas; el término
// se normaliza a NFC (clientes que mandan Unicode descompuesto) y matchea
// parcial case-insensitive sobre título, fuente, etiquetas de categorías e
// ingredientes. OrderBy se restringe a la allow-list del repositorio.
func (uc *UseCase) Search(ctx context.Context, userID string, in dto.SearchRecipesRequest) (*dto.RecipeListResponse, error) {
	filter := repository.SearchFilter{
		Term:      norm.NFC.String(strings.TrimSpace(in.Query)),
		OrderBy:   normalizeOrderBy(in.OrderBy),
		Ascending: in.Ascending,
	}
	list, err := uc.recipeRepo.Search(userID, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.RecipeSummary, 0, len(list))
	for _, r := range list {
		items = append(items, toSummary(r))
	}
	return &dto.RecipeListResponse{Items: items}, nil
}

// normalizeOrderBy acepta solo columnas de la allow-list; lo demás cae al
// orden por fecha de creación.
func normalizeOrderBy(orderBy string) string {
	switch orderBy {
	case repository.OrderByTitle, repository.OrderByCreated, repository.OrderByEdited, repository.OrderByServings:
		return orderBy
	default:
		return repository.OrderByCreated
	}
}

func applyScalars(recipe *entity.Recipe, in dto.UpdateRecipeRequest) {
	if in.Title != nil {
		recipe.Title = *in.Title
	}
	if in.URL != nil {
		recipe.URL = *in.URL
	}
	if in.SourceName != nil {
		recipe.SourceName = *in.SourceName
	}
	if in.ImageURL != nil {
		recipe.ImageURL = *in.ImageURL
	}
	if in.Servings != nil {
		recipe.Servings = *in.Servings
	}
	if in.Notes != nil {
		recipe.Notes = *in.Notes
	}
}

func instructionItems(recipeID string, steps []string) []*entity.Instruction {
	items := make([]*entity.Instruction, 0, len(steps))
	for _, s := range steps {
		items = append(items, &entity.Instruction{RecipeID: recipeID, Step: s})
	}
	return items
}

// assemble arma la respuesta anidada leyendo las colecciones hijas con los
// repos recibidos (pueden ir atados al pool o a una tx).
func (uc *UseCase) assemble(
	recipe *entity.Recipe,
	ingredientRepo repository.IngredientRepository,
	instructionRepo repository.InstructionRepository,
	categoryRepo repository.CategoryRepository,
) (*dto.RecipeResponse, error) {
	instructions, err := instructionRepo.ListByParent(recipe.ID)
	if err != nil {
		return nil, err
	}
	ingredients, err := ingredientRepo.ListByParent(recipe.ID)
	if err != nil {
		return nil, err
	}
	categoryIDs, err := categoryRepo.ListCategoryIDsByRecipe(recipe.ID)
	if err != nil {
		return nil, err
	}
	return toRecipeResponse(recipe, ingredients, instructions, categoryIDs), nil
}

func toRecipeResponse(
	recipe *entity.Recipe,
	ingredients []*entity.Ingredient,
	instructions []*entity.Instruction,
	categoryIDs []string,
) *dto.RecipeResponse {
	ins := make([]dto.InstructionResponse, 0, len(instructions))
	for _, i := range instructions {
		ins = append(ins, dto.InstructionResponse{ID: i.ID, Ordinal: i.Ordinal, Step: i.Step})
	}
	ings := make([]dto.IngredientResponse, 0, len(ingredients))
	for _, i := range ingredients {
		ings = append(ings, *apping.ToIngredientResponse(i))
	}
	return &dto.RecipeResponse{
		ID:           recipe.ID,
		UserID:       recipe.UserID,
		Title:        recipe.Title,
		URL:          recipe.URL,
		SourceName:   recipe.SourceName,
		ImageURL:     recipe.ImageURL,
		Servings:     recipe.Servings,
		Notes:        recipe.Notes,
		IsFavorite:   recipe.IsFavorite,
		Instructions: ins,
		Ingredients:  ings,
		CategoryIDs:  categoryIDs,
		CreatedAt:    recipe.CreatedAt,
		EditedAt:     recipe.EditedAt,
	}
}

func toSummary(r *entity.Recipe) dto.RecipeSummary {
	return dto.RecipeSummary{
		ID:         r.ID,
		Title:      r.Title,
		SourceName: r.SourceName,
		ImageURL:   r.ImageURL,
		Servings:   r.Servings,
		IsFavorite: r.IsFavorite,
		CreatedAt:  r.CreatedAt,
		EditedAt:   r.EditedAt,
	}
}
