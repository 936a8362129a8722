package recipe

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/recetario-api/internal/application/dto"
	"github.com/jhoicas/recetario-api/internal/application/usecase"
	"github.com/jhoicas/recetario-api/internal/domain"
	"github.com/jhoicas/recetario-api/internal/domain/entity"
	"github.com/jhoicas/recetario-api/internal/domain/ordinal"
	"github.com/jhoicas/recetario-api/internal/domain/repository"
)

var nowFunc = time.Now

// Create crea la receta completa en una sola transacción: fila escalar,
// unidades canónicas derivadas del payload, instrucciones e ingredientes
// vía el secuenciador de ordinales, y por cada lista de clasificación
// (cuisines, diets, courses, occasions) las categorías hermanas que falten
// bajo la raíz canónica correspondiente, vinculando todas a la receta.
func (uc *UseCase) Create(ctx context.Context, userID string, in dto.CreateRecipeRequest) (*dto.RecipeResponse, error) {
	if in.Title == "" {
		return nil, domain.ErrInvalidInput
	}
	for _, ing := range in.Ingredients {
		if err := validateIngredientPayload(ing); err != nil {
			return nil, err
		}
	}

	now := nowFunc()
	recipe := &entity.Recipe{
		ID:         uuid.New().String(),
		UserID:     userID,
		Title:      in.Title,
		URL:        in.URL,
		SourceName: in.SourceName,
		ImageURL:   in.ImageURL,
		Servings:   in.Servings,
		Notes:      in.Notes,
		CreatedAt:  now,
		EditedAt:   now,
	}

	var out *dto.RecipeResponse
	err := uc.txRunner.RunRecipe(ctx, func(
		recipeRepo repository.RecipeRepository,
		ingredientRepo repository.IngredientRepository,
		instructionRepo repository.InstructionRepository,
		categoryRepo repository.CategoryRepository,
		unitRepo repository.UnitRepository,
	) error {
		if err := recipeRepo.Create(recipe); err != nil {
			return err
		}
		if err := ensureUnits(unitRepo, userID, in.Ingredients, now); err != nil {
			return err
		}

		instrSeq := ordinal.NewSequencer[*entity.Instruction](instructionRepo)
		instructions, err := instrSeq.Append(recipe.ID, instructionItems(recipe.ID, in.Instructions))
		if err != nil {
			return err
		}

		ingSeq := ordinal.NewSequencer[*entity.Ingredient](ingredientRepo)
		ingredients, err := ingSeq.Append(recipe.ID, ingredientItems(recipe.ID, in.Ingredients))
		if err != nil {
			return err
		}

		categoryIDs, err := linkClassifications(categoryRepo, userID, recipe.ID, in, now)
		if err != nil {
			return err
		}

		out = toRecipeResponse(recipe, ingredients, instructions, categoryIDs)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// validateIngredientPayload exige label y exactamente una medida por
// sistema (us y metric).
func validateIngredientPayload(in dto.IngredientPayload) error {
	if in.Label == "" || len(in.Measures) != 2 {
		return domain.ErrInvalidInput
	}
	seen := make(map[string]bool, 2)
	for _, m := range in.Measures {
		if m.UnitSystem != entity.SystemUS && m.UnitSystem != entity.SystemMetric {
			return domain.ErrInvalidInput
		}
		if m.Unit == "" || seen[m.UnitSystem] {
			return domain.ErrInvalidInput
		}
		seen[m.UnitSystem] = true
	}
	return nil
}

// ensureUnits deriva una unidad canónica por cada par (unit, system)
// distinto del payload de ingredientes.
func ensureUnits(unitRepo repository.UnitRepository, userID string, ingredients []dto.IngredientPayload, now time.Time) error {
	type key struct{ label, system string }
	seen := make(map[key]bool)
	for _, ing := range ingredients {
		for _, m := range ing.Measures {
			k := key{label: m.Unit, system: m.UnitSystem}
			if seen[k] {
				continue
			}
			seen[k] = true
			if _, err := unitRepo.GetOrCreate(&entity.Unit{
				ID:        uuid.New().String(),
				UserID:    userID,
				Label:     m.Unit,
				System:    m.UnitSystem,
				CreatedAt: now,
			}); err != nil {
				return err
			}
		}
	}
	return nil
}

func ingredientItems(recipeID string, payload []dto.IngredientPayload) []*entity.Ingredient {
	items := make([]*entity.Ingredient, 0, len(payload))
	for _, p := range payload {
		measures := make([]entity.Measure, 0, len(p.Measures))
		for _, m := range p.Measures {
			measures = append(measures, entity.Measure{
				UnitSystem: m.UnitSystem,
				Amount:     m.Amount,
				Unit:       m.Unit,
			})
		}
		items = append(items, &entity.Ingredient{
			RecipeID: recipeID,
			Label:    p.Label,
			BaseFood: p.BaseFood,
			Measures: measures,
		})
	}
	return items
}

// linkClassifications resuelve las cuatro raíces canónicas y, por cada
// lista del payload, crea bajo la raíz correspondiente las categorías que
// falten y vincula todas (preexistentes + nuevas) a la receta.
func linkClassifications(
	categoryRepo repository.CategoryRepository,
	userID, recipeID string,
	in dto.CreateRecipeRequest,
	now time.Time,
) ([]string, error) {
	defaults, err := usecase.DefaultCategoryIDs(categoryRepo, userID)
	if err != nil {
		return nil, err
	}
	lists := [][]string{in.Cuisines, in.Diets, in.Courses, in.Occasions}

	var linked []string
	for i, labels := range lists {
		rootID := defaults[i]
		seen := make(map[string]bool, len(labels))
		for _, label := range labels {
			if label == "" || seen[label] {
				continue
			}
			seen[label] = true
			category, err := categoryRepo.GetSibling(userID, rootID, label)
			if err != nil {
				return nil, err
			}
			if category == nil {
				category = &entity.Category{
					ID:        uuid.New().String(),
					UserID:    userID,
					ParentID:  rootID,
					Label:     label,
					CreatedAt: now,
					UpdatedAt: now,
				}
				if err := categoryRepo.Create(category); err != nil {
					return nil, err
				}
			}
			if err := categoryRepo.LinkRecipe(category.ID, recipeID); err != nil {
				return nil, err
			}
			linked = append(linked, category.ID)
		}
	}
	return linked, nil
}
