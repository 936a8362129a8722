package recipe

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/recetario-api/internal/application/dto"
	"github.com/jhoicas/recetario-api/internal/application/ports"
	"github.com/jhoicas/recetario-api/internal/domain"
)

// ImportUseCase importa una receta desde una URL: el servicio externo de
// extracción devuelve la forma que espera Create y se persiste tal cual.
type ImportUseCase struct {
	extractor ports.RecipeExtractor
	recipes   *UseCase
}

// NewImportUseCase construye el caso de uso.
func NewImportUseCase(extractor ports.RecipeExtractor, recipes *UseCase) *ImportUseCase {
	return &ImportUseCase{extractor: extractor, recipes: recipes}
}

// Import extrae y crea. Un fallo del extractor se reporta como ErrUpstream
// sin tocar estado; no hay reintentos automáticos.
func (uc *ImportUseCase) Import(ctx context.Context, userID string, in dto.ImportRecipeRequest) (*dto.RecipeResponse, error) {
	if in.URL == "" {
		return nil, domain.ErrInvalidInput
	}
	extracted, err := uc.extractor.Extract(ctx, in.URL)
	if err != nil {
		log.Warn().Err(err).Str("url", in.URL).Msg("extracción de receta fallida")
		return nil, fmt.Errorf("%w: extraer receta de %s: %v", domain.ErrUpstream, in.URL, err)
	}
	return uc.recipes.Create(ctx, userID, dto.CreateRecipeRequest{
		Title:        extracted.Title,
		URL:          in.URL,
		SourceName:   extracted.SourceName,
		ImageURL:     extracted.ImageURL,
		Servings:     extracted.Servings,
		Instructions: extracted.Instructions,
		Ingredients:  extracted.Ingredients,
	})
}
