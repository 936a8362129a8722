package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/recetario-api/internal/application/dto"
	"github.com/jhoicas/recetario-api/internal/application/recipe"
)

// RecipeHandler maneja las peticiones HTTP del agregado Receta (protegido).
type RecipeHandler struct {
	uc       *recipe.UseCase
	importUC *recipe.ImportUseCase
	pdfUC    *recipe.PDFUseCase
}

// NewRecipeHandler construye el handler.
func NewRecipeHandler(uc *recipe.UseCase, importUC *recipe.ImportUseCase, pdfUC *recipe.PDFUseCase) *RecipeHandler {
	return &RecipeHandler{uc: uc, importUC: importUC, pdfUC: pdfUC}
}

// Create godoc
// @Summary      Crear receta
// @Description  Crea la receta completa con ingredientes, instrucciones y clasificaciones en una sola transacción.
// @Tags         recipes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRecipeRequest  true  "Datos de la receta"
// @Success      201   {object}  dto.RecipeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/recipes [post]
func (h *RecipeHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRecipeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "title es requerido"})
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get godoc
// @Summary      Obtener receta por ID
// @Tags         recipes
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la receta"
// @Success      200  {object}  dto.RecipeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/recipes/{id} [get]
func (h *RecipeHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetUserID(c), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Buscar recetas
// @Description  Coincidencia parcial case-insensitive sobre título, fuente, categorías e ingredientes. Sin query devuelve todas.
// @Tags         recipes
// @Security     Bearer
// @Produce      json
// @Param        query     query  string  false  "Término de búsqueda"
// @Param        order_by  query  string  false  "title | created_at | edited_at | servings"
// @Param        asc       query  bool    false  "Orden ascendente"
// @Success      200  {object}  dto.RecipeListResponse
// @Router       /api/recipes [get]
func (h *RecipeHandler) List(c *fiber.Ctx) error {
	var in dto.SearchRecipesRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query string inválida"})
	}
	out, err := h.uc.Search(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar receta
// @Description  Actualización parcial transaccional; Instructions no vacío reemplaza la colección completa y cada entrada de Ingredients sincroniza sus dos medidas.
// @Tags         recipes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la receta"
// @Param        body  body  dto.UpdateRecipeRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.RecipeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/recipes/{id} [put]
func (h *RecipeHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateRecipeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.UserContext(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar receta
// @Description  Borra la receta y en cascada sus ingredientes, medidas, instrucciones y vínculos a categorías.
// @Tags         recipes
// @Security     Bearer
// @Param        id  path  string  true  "ID de la receta"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/recipes/{id} [delete]
func (h *RecipeHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Remove(c.UserContext(), GetUserID(c), c.Params("id")); err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ToggleFavorite godoc
// @Summary      Alternar favorito
// @Description  Niega is_favorite de forma atómica; dos toggles concurrentes quedan serializados.
// @Tags         recipes
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la receta"
// @Success      200  {object}  dto.RecipeSummary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/recipes/{id}/favorite [post]
func (h *RecipeHandler) ToggleFavorite(c *fiber.Ctx) error {
	out, err := h.uc.ToggleFavorite(c.UserContext(), GetUserID(c), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// Import godoc
// @Summary      Importar receta desde URL
// @Description  Extrae la receta de la página vía el servicio externo y la crea como una receta propia.
// @Tags         recipes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ImportRecipeRequest  true  "URL pública de la receta"
// @Success      201   {object}  dto.RecipeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/recipes/import [post]
func (h *RecipeHandler) Import(c *fiber.Ctx) error {
	var in dto.ImportRecipeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.URL == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "url es requerida"})
	}
	out, err := h.importUC.Import(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// PDF godoc
// @Summary      Ficha PDF de la receta
// @Tags         recipes
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la receta"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/recipes/{id}/pdf [get]
func (h *RecipeHandler) PDF(c *fiber.Ctx) error {
	data, err := h.pdfUC.Generate(c.UserContext(), GetUserID(c), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `inline; filename="receta.pdf"`)
	return c.Send(data)
}
