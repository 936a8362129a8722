package dto

import "github.com/shopspring/decimal"

// MeasurePayload una de las dos medidas de un ingrediente al crear.
type MeasurePayload struct {
	UnitSystem string          `json:"unit_system" validate:"required,oneof=us metric"`
	Amount     decimal.Decimal `json:"amount"`
	Unit       string          `json:"unit" validate:"required"`
}

// IngredientPayload ingrediente completo al crear una receta. BaseFood
// vacío deshabilita la conversión automática entre sistemas.
type IngredientPayload struct {
	Label    string           `json:"label" validate:"required"`
	BaseFood string           `json:"base_food,omitempty"`
	Measures []MeasurePayload `json:"measures" validate:"required,len=2"`
}

// MeasureEdit edición de una medida concreta. UnitSystem es obligatorio:
// nombra la fila a editar; la del otro sistema se recalcula vía conversión
// si el ingrediente tiene base_food.
type MeasureEdit struct {
	UnitSystem string           `json:"unit_system"`
	Amount     *decimal.Decimal `json:"amount,omitempty"`
	Unit       *string          `json:"unit,omitempty"`
}

// UpdateIngredientRequest edición parcial de un ingrediente. Es la rama
// "single" de la unión objeto-o-arreglo que resuelve el handler; el lote
// es []UpdateIngredientRequest y entonces ID es obligatorio por entrada.
// Dentro del single, Measure presente = edición de medida; ausente =
// edición de campos escalares.
type UpdateIngredientRequest struct {
	ID       string       `json:"id,omitempty"`
	Label    *string      `json:"label,omitempty"`
	BaseFood *string      `json:"base_food,omitempty"`
	Ordinal  *int         `json:"ordinal,omitempty"`
	Measure  *MeasureEdit `json:"measure,omitempty"`
}

// IsEmpty indica si la edición no trae ningún campo.
func (r UpdateIngredientRequest) IsEmpty() bool {
	return r.Label == nil && r.BaseFood == nil && r.Ordinal == nil && r.Measure == nil
}

// MeasureResponse salida de una medida.
type MeasureResponse struct {
	UnitSystem string          `json:"unit_system"`
	Amount     decimal.Decimal `json:"amount"`
	Unit       string          `json:"unit"`
}

// IngredientResponse salida de un ingrediente con ambas medidas resueltas.
type IngredientResponse struct {
	ID       string            `json:"id"`
	RecipeID string            `json:"recipe_id"`
	Label    string            `json:"label"`
	BaseFood string            `json:"base_food,omitempty"`
	Ordinal  int               `json:"ordinal"`
	Measures []MeasureResponse `json:"measures"`
}
