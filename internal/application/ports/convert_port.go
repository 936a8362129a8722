package ports

import (
	"context"

	"github.com/shopspring/decimal"
)

// UnitConverter define el puerto de salida hacia el servicio externo de
// conversión de unidades. La conversión entre sistemas (ej. cups -> g)
// depende de la densidad del alimento, así que se consulta por el nombre
// canónico (baseFood); no puede calcularse solo con metadatos de unidad.
// Cualquier adaptador (HTTP, mock) debe implementar esta interfaz (DIP).
type UnitConverter interface {
	// Convert devuelve la cantidad equivalente de amount fromUnit en
	// toUnit para el alimento baseFood. El contexto debe llevar timeout
	// para evitar bloqueos en la llamada externa.
	Convert(ctx context.Context, baseFood string, amount decimal.Decimal, fromUnit, toUnit string) (decimal.Decimal, error)
}
