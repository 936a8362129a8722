package entity

import "github.com/shopspring/decimal"

// Sistemas de unidades válidos para Measure.
const (
	SystemUS     = "us"
	SystemMetric = "metric"
)

// OtherSystem devuelve el sistema opuesto (us <-> metric).
func OtherSystem(system string) string {
	if system == SystemUS {
		return SystemMetric
	}
	return SystemUS
}

// Ingredient es una fila hija ordenada de Recipe. Ordinal es denso 1..N
// dentro de la receta. BaseFood es el nombre canónico del alimento usado
// como clave en el servicio de conversión; vacío = sin conversión automática.
type Ingredient struct {
	ID       string
	RecipeID string
	Label    string
	BaseFood string
	Ordinal  int
	Measures []Measure // exactamente una por sistema (us y metric)
}

// MeasureFor devuelve la medida del sistema indicado, o nil si no existe.
func (i *Ingredient) MeasureFor(system string) *Measure {
	for idx := range i.Measures {
		if i.Measures[idx].UnitSystem == system {
			return &i.Measures[idx]
		}
	}
	return nil
}

// Measure es una de las dos representaciones de cantidad de un ingrediente.
// Única por (IngredientID, UnitSystem).
type Measure struct {
	IngredientID string
	UnitSystem   string // us | metric
	Amount       decimal.Decimal
	Unit         string // ej. "lb", "cup", "g", "ml"
}
