package repository

import (
	"github.com/jhoicas/recetario-api/internal/domain/entity"
	"github.com/jhoicas/recetario-api/internal/domain/ordinal"
)

// IngredientRepository define el puerto de persistencia para Ingredient.
// Embebe ordinal.Collection: Insert/ReplaceAt persisten también las dos
// medidas del ingrediente, y ListByParent las devuelve ya resueltas.
type IngredientRepository interface {
	ordinal.Collection[*entity.Ingredient]
	GetByID(id string) (*entity.Ingredient, error)
	// UpdateScalar actualiza label, base_food y ordinal (no las medidas).
	UpdateScalar(ing *entity.Ingredient) error
	// UpdateMeasure sobreescribe amount y unit de la medida
	// (ingredient_id, unit_system). Devuelve false si la fila no existe.
	UpdateMeasure(m *entity.Measure) (bool, error)
}

// InstructionRepository define el puerto de persistencia para Instruction.
type InstructionRepository interface {
	ordinal.Collection[*entity.Instruction]
}
