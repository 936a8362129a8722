// Package ingredient implementa el sincronizador de medidas: mantiene
// consistentes las dos representaciones de unidad (us y metric) de un
// ingrediente cuando se edita una de ellas, vía el servicio externo de
// conversión indexado por el nombre canónico del alimento.
package ingredient

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/recetario-api/internal/application/dto"
	"github.com/jhoicas/recetario-api/internal/application/ports"
	"github.com/jhoicas/recetario-api/internal/domain"
	"github.com/jhoicas/recetario-api/internal/domain/entity"
	"github.com/jhoicas/recetario-api/internal/domain/repository"
)

// UpdateUseCase actualiza un ingrediente y sincroniza su medida opuesta.
type UpdateUseCase struct {
	txRunner  TxRunner
	converter ports.UnitConverter
}

// NewUpdateUseCase construye el caso de uso.
func NewUpdateUseCase(txRunner TxRunner, converter ports.UnitConverter) *UpdateUseCase {
	return &UpdateUseCase{txRunner: txRunner, converter: converter}
}

// Update aplica una edición (campos escalares y/o una medida) en una
// transacción propia y devuelve el ingrediente con ambas medidas resueltas.
func (uc *UpdateUseCase) Update(ctx context.Context, userID, ingredientID string, in dto.UpdateIngredientRequest) (*dto.IngredientResponse, error) {
	var out *dto.IngredientResponse
	err := uc.txRunner.RunIngredient(ctx, func(
		ingredientRepo repository.IngredientRepository,
		recipeRepo repository.RecipeRepository,
	) error {
		ing, err := uc.UpdateInTx(ctx, ingredientRepo, recipeRepo, userID, ingredientID, in)
		if err != nil {
			return err
		}
		out = ToIngredientResponse(ing)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateBatch aplica varias ediciones en una sola transacción (payload de
// lote resuelto en el borde HTTP). Cada entrada debe traer id.
func (uc *UpdateUseCase) UpdateBatch(ctx context.Context, userID string, in []dto.UpdateIngredientRequest) ([]dto.IngredientResponse, error) {
	for _, entry := range in {
		if entry.ID == "" {
			return nil, domain.ErrInvalidInput
		}
	}
	var out []dto.IngredientResponse
	err := uc.txRunner.RunIngredient(ctx, func(
		ingredientRepo repository.IngredientRepository,
		recipeRepo repository.RecipeRepository,
	) error {
		out = make([]dto.IngredientResponse, 0, len(in))
		for _, entry := range in {
			ing, err := uc.UpdateInTx(ctx, ingredientRepo, recipeRepo, userID, entry.ID, entry)
			if err != nil {
				return err
			}
			out = append(out, *ToIngredientResponse(ing))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateInTx es la variante para componer dentro de una transacción ajena
// (la actualización de receta la invoca por cada entrada de ingredientes).
//
// Reglas:
//   - campos escalares (label, base_food, ordinal) se aplican directo;
//   - Measure presente exige unit_system (ErrInvalidInput) y la fila de esa
//     medida debe existir (ErrNotFound);
//   - con base_food, la medida del otro sistema se recalcula vía conversión
//     externa sobreescribiendo solo su amount; el unit queda intacto;
//   - sin base_food, la otra medida no se toca;
//   - si la conversión falla se devuelve ErrUpstream y el rollback de la tx
//     deja la medida editada también sin cambios (sin corrupción parcial).
func (uc *UpdateUseCase) UpdateInTx(
	ctx context.Context,
	ingredientRepo repository.IngredientRepository,
	recipeRepo repository.RecipeRepository,
	userID, ingredientID string,
	in dto.UpdateIngredientRequest,
) (*entity.Ingredient, error) {
	if in.IsEmpty() {
		return nil, domain.ErrInvalidInput
	}
	ing, err := ingredientRepo.GetByID(ingredientID)
	if err != nil {
		return nil, err
	}
	if ing == nil {
		return nil, domain.ErrNotFound
	}
	recipe, err := recipeRepo.GetByOwnerAndID(userID, ing.RecipeID)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, domain.ErrNotFound
	}

	if in.Label != nil || in.BaseFood != nil || in.Ordinal != nil {
		if in.Label != nil {
			ing.Label = *in.Label
		}
		if in.BaseFood != nil {
			ing.BaseFood = *in.BaseFood
		}
		if in.Ordinal != nil {
			ing.Ordinal = *in.Ordinal
		}
		if err := ingredientRepo.UpdateScalar(ing); err != nil {
			return nil, err
		}
	}

	if in.Measure != nil {
		if err := uc.applyMeasure(ctx, ingredientRepo, ing, *in.Measure); err != nil {
			return nil, err
		}
	}

	// Releer para devolver ambas medidas ya resueltas.
	return ingredientRepo.GetByID(ingredientID)
}

func (uc *UpdateUseCase) applyMeasure(
	ctx context.Context,
	ingredientRepo repository.IngredientRepository,
	ing *entity.Ingredient,
	edit dto.MeasureEdit,
) error {
	if edit.UnitSystem == "" {
		return domain.ErrInvalidInput
	}
	if edit.UnitSystem != entity.SystemUS && edit.UnitSystem != entity.SystemMetric {
		return domain.ErrInvalidInput
	}
	target := ing.MeasureFor(edit.UnitSystem)
	if target == nil {
		return domain.ErrNotFound
	}
	if edit.Amount != nil {
		target.Amount = *edit.Amount
	}
	if edit.Unit != nil {
		target.Unit = *edit.Unit
	}
	ok, err := ingredientRepo.UpdateMeasure(target)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}

	// Sin alimento base no hay clave de conversión: la otra medida se
	// edita por separado, sistema por sistema.
	if ing.BaseFood == "" {
		return nil
	}
	other := ing.MeasureFor(entity.OtherSystem(edit.UnitSystem))
	if other == nil {
		return nil
	}
	converted, err := uc.converter.Convert(ctx, ing.BaseFood, target.Amount, target.Unit, other.Unit)
	if err != nil {
		log.Warn().
			Err(err).
			Str("ingredient_id", ing.ID).
			Str("base_food", ing.BaseFood).
			Str("from_unit", target.Unit).
			Str("to_unit", other.Unit).
			Msg("conversión de unidades fallida")
		return fmt.Errorf("%w: convertir %s de %s a %s: %v",
			domain.ErrUpstream, ing.BaseFood, target.Unit, other.Unit, err)
	}
	other.Amount = converted
	ok, err = ingredientRepo.UpdateMeasure(other)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

// ToIngredientResponse arma el DTO de salida con ambas medidas.
func ToIngredientResponse(ing *entity.Ingredient) *dto.IngredientResponse {
	if ing == nil {
		return nil
	}
	measures := make([]dto.MeasureResponse, 0, len(ing.Measures))
	for _, m := range ing.Measures {
		measures = append(measures, dto.MeasureResponse{
			UnitSystem: m.UnitSystem,
			Amount:     m.Amount,
			Unit:       m.Unit,
		})
	}
	return &dto.IngredientResponse{
		ID:       ing.ID,
		RecipeID: ing.RecipeID,
		Label:    ing.Label,
		BaseFood: ing.BaseFood,
		Ordinal:  ing.Ordinal,
		Measures: measures,
	}
}
