package ports

import (
	"context"

	"github.com/jhoicas/recetario-api/internal/application/dto"
)

// RecipeExtractor define el puerto de salida hacia el servicio externo de
// extracción de recetas: dada una URL pública devuelve título, porciones,
// fuente, imagen, pasos ordenados e ingredientes con ambas medidas.
type RecipeExtractor interface {
	Extract(ctx context.Context, url string) (*dto.ExtractedRecipe, error)
}
