package http

import (
	"bytes"
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/recetario-api/internal/application/dto"
	"github.com/jhoicas/recetario-api/internal/application/ingredient"
)

// IngredientHandler maneja la edición de ingredientes con sincronización
// de medidas (protegido).
type IngredientHandler struct {
	uc *ingredient.UpdateUseCase
}

// NewIngredientHandler construye el handler.
func NewIngredientHandler(uc *ingredient.UpdateUseCase) *IngredientHandler {
	return &IngredientHandler{uc: uc}
}

// Update godoc
// @Summary      Actualizar ingrediente(s)
// @Description  Acepta un objeto (edita el ingrediente del path) o un array de objetos con id (edición por lote en una transacción). Editar una medida recalcula la del otro sistema vía el servicio de conversión cuando el ingrediente tiene base_food.
// @Tags         ingredients
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id            path  string  true  "ID de la receta"
// @Param        ingredientId  path  string  true  "ID del ingrediente (ignorado con body array)"
// @Param        body          body  dto.UpdateIngredientRequest  true  "Edición (objeto o array)"
// @Success      200  {object}  dto.IngredientResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/recipes/{id}/ingredients/{ingredientId} [put]
func (h *IngredientHandler) Update(c *fiber.Ctx) error {
	body := bytes.TrimSpace(c.Body())
	if len(body) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo vacío"})
	}

	// La forma del payload (objeto o array) se resuelve una sola vez aquí;
	// los casos de uso reciben siempre la forma ya decidida.
	if body[0] == '[' {
		var batch []dto.UpdateIngredientRequest
		if err := json.Unmarshal(body, &batch); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "array inválido"})
		}
		out, err := h.uc.UpdateBatch(c.UserContext(), GetUserID(c), batch)
		if err != nil {
			return domainError(c, err)
		}
		return c.JSON(out)
	}

	var in dto.UpdateIngredientRequest
	if err := json.Unmarshal(body, &in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.UserContext(), GetUserID(c), c.Params("ingredientId"), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}
